package transport

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/reviewmarket/api/internal/apperror"
)

// Fields is a flat, transport-agnostic view of a request's inputs.
type Fields map[string]any

// Normalize merges a decoded JSON object over query parameters. JSON wins on
// key collisions. A body that is not a JSON object is ignored, so callers
// still see the query parameters.
func Normalize(body []byte, query url.Values) Fields {
	f := Fields{}
	for k, vs := range query {
		if len(vs) > 0 {
			f[k] = vs[0]
		}
	}
	if len(body) > 0 {
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err == nil {
			for k, v := range decoded {
				f[k] = v
			}
		}
	}
	return f
}

// Has reports whether the field is present and non-empty.
func (f Fields) Has(name string) bool {
	v, ok := f[name]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

func (f Fields) String(name string) string {
	switch v := f[name].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// Float returns the field as a float64. String values are parsed, since
// form-encoded and query inputs arrive as text.
func (f Fields) Float(name string) (float64, bool) {
	switch v := f[name].(type) {
	case float64:
		return v, true
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Require returns ErrValidation when any named field is absent or empty.
// It never reports which field failed.
func (f Fields) Require(names ...string) error {
	for _, name := range names {
		if !f.Has(name) {
			return apperror.ErrValidation
		}
	}
	return nil
}
