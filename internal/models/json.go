package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is an opaque JSON object column. Used for organization branding,
// registration payment info, notification payloads and player profile meta.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan unmarshals a JSON column into the map.
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("JSONMap: expected []byte or string, got %T", src)
	}
}
