package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a request field that accepts any JSON scalar and keeps it as
// text. Falsy scalars (false, 0, null) decode to the empty string, so a
// required Text rejects them; true and non-zero numbers keep their literal
// form ("true", "101"). Objects and arrays are rejected.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case bool:
		if x {
			*t = "true"
		} else {
			*t = ""
		}
	case json.Number:
		if f, err := x.Float64(); err == nil && f == 0 {
			*t = ""
		} else {
			*t = Text(x.String())
		}
	default:
		return fmt.Errorf("expected a string, number or boolean, got %s", bytes.TrimSpace(data))
	}
	return nil
}
