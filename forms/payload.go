package forms

import (
	"bytes"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/render"
)

// Payload maps submitted field names to their raw values.
type Payload map[string]any

// ParsePayload decodes a request body according to its declared content type.
// It never fails: unknown content types and malformed bodies produce an empty
// payload, which validation then reports as missing data.
func ParsePayload(contentType string, body []byte) Payload {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		return parseForm(body)
	case strings.Contains(contentType, "application/json"):
		return parseJSON(body)
	}
	return Payload{}
}

func parseForm(body []byte) Payload {
	// ParseQuery keeps every pair it managed to decode alongside the error
	values, _ := url.ParseQuery(string(body))

	p := make(Payload, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			p[k] = vs[len(vs)-1]
		}
	}
	return p
}

func parseJSON(body []byte) Payload {
	if len(bytes.TrimSpace(body)) == 0 {
		return Payload{}
	}

	var doc map[string]any
	if err := render.DecodeJSON(bytes.NewReader(body), &doc); err != nil || doc == nil {
		return Payload{}
	}

	p := make(Payload, len(doc))
	for k, v := range doc {
		switch v := v.(type) {
		case bool:
			p[k] = strconv.FormatBool(v)
		case float64:
			p[k] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			p[k] = v
		}
	}
	return p
}
