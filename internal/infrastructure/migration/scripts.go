package migration

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed scripts
var scripts embed.FS

// gooseDialects maps config drivers to goose dialect names.
var gooseDialects = map[string]string{
	"":         "mysql",
	"mysql":    "mysql",
	"postgres": "postgres",
	"sqlite":   "sqlite3",
}

// Scripts returns the embedded migration directory for driver.
func Scripts(driver string) (fs.FS, string, error) {
	dialect, ok := gooseDialects[driver]
	if !ok {
		return nil, "", fmt.Errorf("no migration scripts for driver %q", driver)
	}
	dir := driver
	if dir == "" {
		dir = "mysql"
	}
	sub, err := fs.Sub(scripts, "scripts/"+dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open migration scripts: %w", err)
	}
	return sub, dialect, nil
}
