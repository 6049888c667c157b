// Package output serializes inspection results.
package output

import (
	"encoding/json"

	"gitlab.com/tozd/go/errors"
)

// ToJSON serializes v, indenting with two spaces when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, errors.Errorf("encoding JSON: %w", err)
	}
	return data, nil
}
