package api

import (
	"net/url"
	"strconv"
	"strings"
)

// intParam reads a non-negative integer query parameter. Absent means 0.
func intParam(q url.Values, key string) (int, bool) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// floatParam reads an optional float query parameter.
func floatParam(q url.Values, key string) (*float64, bool) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}

// orderParam reads order=asc|desc. Absent means the sort field's default.
func orderParam(q url.Values) (*bool, bool) {
	switch strings.ToLower(strings.TrimSpace(q.Get("order"))) {
	case "":
		return nil, true
	case "asc":
		asc := true
		return &asc, true
	case "desc":
		asc := false
		return &asc, true
	default:
		return nil, false
	}
}
