package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  path: ":memory:"
ticket:
  numbering:
    scheme: projectScoped
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "projectScoped", cfg.Ticket.Numbering.Scheme)
	assert.Equal(t, "database", cfg.Ticket.Numbering.Backend)
	assert.Equal(t, "TICK", cfg.Ticket.Numbering.GlobalPrefix)
	assert.Equal(t, 12, cfg.Auth.Password.BcryptCost)
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: sqlite\n")
	t.Setenv("TRACKR_SERVER_PORT", "7070")
	t.Setenv("TRACKR_TICKET_NUMBERING_GLOBAL_PREFIX", "BUG")

	cfg, err := Load(path, "test")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "BUG", cfg.Ticket.Numbering.GlobalPrefix)
	assert.Equal(t, "test", cfg.Server.Mode)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"driver", "database:\n  driver: oracle\n"},
		{"scheme", "database:\n  driver: sqlite\nticket:\n  numbering:\n    scheme: random\n"},
		{"redis backend without redis", "database:\n  driver: sqlite\nticket:\n  numbering:\n    backend: redis\n"},
		{"default secret in release", "server:\n  mode: release\ndatabase:\n  driver: sqlite\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), "")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "")
	assert.Error(t, err)
}
