// Package validate implements request input validation for every
// entity. Each validator consumes the raw JSON body as a field map so
// that absent, null and present values stay distinguishable, applies a
// fixed per-entity check order, and returns either a typed input or a
// Rejection carrying the HTTP status and machine-readable code.
package validate

import (
    "encoding/json"
    "io"
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"
)

// Rejection is a structured validation failure. Handlers serialize it
// as {"error": Message, "code": Code} with the given HTTP status.
type Rejection struct {
    Status  int
    Code    string
    Message string
}

// Error implements the error interface.
func (r *Rejection) Error() string { return r.Message }

func reject(code, msg string) *Rejection {
    return &Rejection{Status: http.StatusBadRequest, Code: code, Message: msg}
}

// Body is a decoded JSON object keyed by field name. Values keep their
// raw encoding so null can be told apart from a missing key.
type Body map[string]json.RawMessage

// ParseBody decodes a JSON object from r. A malformed or non-object
// body is rejected as INVALID_BODY.
func ParseBody(r io.Reader) (Body, *Rejection) {
    var b Body
    dec := json.NewDecoder(r)
    if err := dec.Decode(&b); err != nil {
        return nil, reject("INVALID_BODY", "request body must be a JSON object")
    }
    return b, nil
}

// isNull reports whether the raw value is JSON null.
func isNull(raw json.RawMessage) bool {
    return strings.TrimSpace(string(raw)) == "null"
}

// asString extracts a JSON string. Non-string values are not coerced.
func asString(raw json.RawMessage) (string, bool) {
    var s string
    if err := json.Unmarshal(raw, &s); err != nil {
        return "", false
    }
    return s, true
}

// asNumber coerces a JSON number or numeric string into a float64.
// Coercion fails only when the result is not a number. Null is not a
// number (json.Unmarshal would silently leave the zero value).
func asNumber(raw json.RawMessage) (float64, bool) {
    if isNull(raw) {
        return 0, false
    }
    var f float64
    if err := json.Unmarshal(raw, &f); err == nil {
        return f, true
    }
    s, ok := asString(raw)
    if !ok {
        return 0, false
    }
    f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
    if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
        return 0, false
    }
    return f, true
}

// asID coerces a JSON number or numeric string into a non-negative
// integer identifier. Fractions are truncated.
func asID(raw json.RawMessage) (uint64, bool) {
    f, ok := asNumber(raw)
    if !ok || f < 0 {
        return 0, false
    }
    return uint64(math.Trunc(f)), true
}

// requiredString fetches a trimmed string field. The field counts as
// missing when the key is absent, null, not a string, or empty after
// trimming.
func (b Body) requiredString(key string) (string, bool) {
    raw, ok := b[key]
    if !ok || isNull(raw) {
        return "", false
    }
    s, ok := asString(raw)
    if !ok {
        return "", false
    }
    s = strings.TrimSpace(s)
    if s == "" {
        return "", false
    }
    return s, true
}

// optionalString fetches a trimmed optional string field. The second
// return is false when the key is absent. An explicit null or a value
// that trims to empty yields a nil pointer, clearing the field.
func (b Body) optionalString(key string) (*string, bool) {
    raw, ok := b[key]
    if !ok {
        return nil, false
    }
    if isNull(raw) {
        return nil, true
    }
    s, ok := asString(raw)
    if !ok {
        // Non-string optional free text is stringified like the rest
        // of the field, mirroring loose clients.
        s = strings.Trim(string(raw), `"`)
    }
    s = strings.TrimSpace(s)
    if s == "" {
        return nil, true
    }
    return &s, true
}

// presentID reports a field that is set to something other than null
// or zero. Zero identifiers count as missing.
func (b Body) presentID(key string) bool {
    raw, ok := b[key]
    if !ok || isNull(raw) {
        return false
    }
    if id, ok := asID(raw); ok && id == 0 {
        return false
    }
    return true
}

const dateLayout = "2006-01-02"

// validDate reports whether s is a well-formed calendar date.
func validDate(s string) bool {
    _, err := time.Parse(dateLayout, s)
    return err == nil
}

// DateBefore reports whether end precedes start. Both arguments must
// already be well-formed dates. Exported so handlers can compare a
// lone updated date against the stored counterpart.
func DateBefore(end, start string) bool {
    e, _ := time.Parse(dateLayout, end)
    s, _ := time.Parse(dateLayout, start)
    return e.Before(s)
}

// latInRange and lonInRange bound optional coordinates.
func latInRange(v float64) bool { return v >= -90 && v <= 90 }
func lonInRange(v float64) bool { return v >= -180 && v <= 180 }
