package upstream

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text is a JSON scalar read as a string.  The upstream APIs are not
// consistent about ids, sizes, and counters: the same field arrives as
// 71, "71", or null depending on the endpoint.  Numbers keep their literal
// form, booleans become "true"/"false", null becomes "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*t = Text(b)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Int returns the numeric value, or 0 when t is not an integer.
func (t Text) Int() int {
	n, err := strconv.Atoi(string(t))
	if err != nil {
		if f, ferr := strconv.ParseFloat(string(t), 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return n
}

// Object is a JSON object read leniently.  The portal serialises an empty
// object as [] and occasionally sends null or a bare string; anything that
// is not an object decodes to an empty map instead of failing the payload.
type Object map[string]any

func (o *Object) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		*o = Object{}
		return nil
	}
	m := make(map[string]any)
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*o = m
	return nil
}
