// Package mappers converts between domain aggregates and gorm models.
package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

func toJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// fromJSON leaves out untouched when data is empty.
func fromJSON(data datatypes.JSON, out any, column string) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", column, err)
	}
	return nil
}
