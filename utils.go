package sendlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

func JsonPrint(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// DecodeOneOrMany reads many as a JSON array, falling back to single, which may itself be
// an object or an array. It returns an empty slice when neither is present.
func DecodeOneOrMany[T any](single, many json.RawMessage) ([]T, error) {
	raw := many
	if isNull(raw) {
		raw = single
	}
	if isNull(raw) {
		return []T{}, nil
	}

	raw = bytes.TrimSpace(raw)
	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	return []T{item}, nil
}
