// Package specs provides tolerant readers over a component's raw
// specification mapping.
//
// Every reader is total: absent keys, nil maps and values of the wrong
// shape degrade to the zero value of the requested kind, never a panic.
package specs

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Keys under which derived attributes are stored next to the raw specs.
const (
	KeyPurpose          = "purpose"
	KeyPerformanceScore = "performance_score"
)

// maxLeadingInt caps LeadingInt so absurd digit runs cannot overflow.
const maxLeadingInt = math.MaxInt32

// Specs is an open mapping from specification-field name to value. Values
// are whatever the decoder produced: numbers, strings, bools or nil.
type Specs map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (s Specs) Clone() Specs {
	out := make(Specs, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Has reports whether key is present with a non-nil value.
func (s Specs) Has(key string) bool {
	v, ok := s[key]
	return ok && v != nil
}

// Number reads key as a float64. Numeric strings are parsed after trimming,
// bools map to 1/0, everything else (including NaN and Inf) is 0.
func (s Specs) Number(key string) float64 {
	return toNumber(s[key])
}

// NonNegative reads key like Number but floors the result at 0.
func (s Specs) NonNegative(key string) float64 {
	return math.Max(0, s.Number(key))
}

// LeadingInt reads key with parseInt semantics: leading whitespace is
// skipped, an optional sign is honored and the leading decimal digit run is
// converted. "450W" is 450; a value without leading digits is 0.
func (s Specs) LeadingInt(key string) int {
	return leadingInt(s.Text(key))
}

// Text reads key as a string. Numbers are formatted without trailing zeros;
// absent keys yield "".
func (s Specs) Text(key string) string {
	return toText(s[key])
}

// Lower is Text folded to lower case.
func (s Specs) Lower(key string) string {
	return strings.ToLower(s.Text(key))
}

// Upper is Text folded to upper case.
func (s Specs) Upper(key string) string {
	return strings.ToUpper(s.Text(key))
}

// Flag reads key as a boolean. Only bool true and the strings "true" and
// "1" (any case, surrounding space ignored) are true.
func (s Specs) Flag(key string) bool {
	if b, ok := s[key].(bool); ok {
		return b
	}
	switch strings.TrimSpace(s.Lower(key)) {
	case "true", "1":
		return true
	default:
		return false
	}
}

// ContainsAny reports whether the lower-cased text of key contains any of
// the needles, compared case-insensitively. Empty needles never match.
func (s Specs) ContainsAny(key string, needles []string) bool {
	return containsAny(s.Lower(key), needles)
}

// OneOf reports whether the trimmed text of key equals one of the options,
// compared case-insensitively.
func (s Specs) OneOf(key string, options []string) bool {
	v := strings.TrimSpace(s.Text(key))
	for _, o := range options {
		if strings.EqualFold(v, o) {
			return true
		}
	}
	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if n == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case json.Number:
		return parseNumber(n.String())
	case string:
		return parseNumber(n)
	default:
		return 0
	}
}

func parseNumber(raw string) float64 {
	t := strings.TrimSpace(raw)
	if t == "" {
		return 0
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func leadingInt(raw string) int {
	t := strings.TrimLeftFunc(raw, unicode.IsSpace)
	neg := false
	if t != "" && (t[0] == '+' || t[0] == '-') {
		neg = t[0] == '-'
		t = t[1:]
	}
	n := 0
	for i := 0; i < len(t); i++ {
		c := t[i]
		if c < '0' || c > '9' {
			break
		}
		if n < maxLeadingInt {
			n = n*10 + int(c-'0')
			if n > maxLeadingInt {
				n = maxLeadingInt
			}
		}
	}
	if neg {
		return -n
	}
	return n
}
