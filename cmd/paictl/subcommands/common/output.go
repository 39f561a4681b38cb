package common

import (
	"encoding/json"
	"fmt"
	"io"
)

// Dump writes v into w as indented JSON.
func Dump(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to dump result: %w", err)
	}
	return nil
}
