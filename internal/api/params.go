package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParamError reports a query parameter that is missing or malformed.
type ParamError struct {
	Name   string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s parameter %s", e.Name, e.Reason)
}

// Accepted layouts for timestamp parameters. Layouts without a zone are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// queryValue returns the trimmed parameter and whether it was supplied at all.
func queryValue(r *http.Request, name string) (string, bool) {
	q := r.URL.Query()
	if !q.Has(name) {
		return "", false
	}
	return strings.TrimSpace(q.Get(name)), true
}

// OptionalString returns nil when the parameter is absent.
func OptionalString(r *http.Request, name string) *string {
	v, ok := queryValue(r, name)
	if !ok {
		return nil
	}
	return &v
}

// QueryInt parses an optional integer parameter, falling back to def.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	v, ok := queryValue(r, name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ParamError{Name: name, Reason: "must be an integer"}
	}
	return n, nil
}

// RequiredID parses a mandatory positive integer identifier.
func RequiredID(r *http.Request, name string) (int64, error) {
	v, ok := queryValue(r, name)
	if !ok || v == "" {
		return 0, &ParamError{Name: name, Reason: "must be given"}
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ParamError{Name: name, Reason: "must be a positive integer"}
	}
	return id, nil
}

// QueryBool parses an optional boolean parameter, falling back to def.
func QueryBool(r *http.Request, name string, def bool) (bool, error) {
	v, ok := queryValue(r, name)
	if !ok || v == "" {
		return def, nil
	}
	switch strings.ToLower(v) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	}
	return false, &ParamError{Name: name, Reason: "must be a boolean"}
}

// QueryTime parses an optional ISO 8601 timestamp parameter.
func QueryTime(r *http.Request, name string) (*time.Time, error) {
	v, ok := queryValue(r, name)
	if !ok || v == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(v)
	if err != nil {
		return nil, &ParamError{Name: name, Reason: "must be an ISO 8601 datetime"}
	}
	return &t, nil
}

// RequiredTime parses a mandatory ISO 8601 timestamp parameter.
func RequiredTime(r *http.Request, name string) (time.Time, error) {
	t, err := QueryTime(r, name)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, &ParamError{Name: name, Reason: "must be given"}
	}
	return *t, nil
}

// ParseTimestamp accepts RFC 3339 and zone-less ISO 8601 forms.
func ParseTimestamp(v string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", v)
}
