package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// JSONStringList encodes a string slice into a JSON column value.
func JSONStringList(values []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// StringList decodes a JSON column value back into a string slice. A null or
// empty column yields a nil slice.
func StringList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}
