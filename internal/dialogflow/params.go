package dialogflow

import (
	"fmt"
	"strconv"
	"strings"
)

// structuredKeys is the lookup order for structured parameter values such as
// sys.location objects: the most specific field wins.
var structuredKeys = []string{"business-name", "city", "admin-area", "name", "value"}

// ToScalarString reduces any parameter value the dispatcher may deliver to a
// plain string. It is total: missing, empty, or unexpectedly shaped input
// yields "" rather than an error.
func ToScalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		if len(val) == 0 {
			return ""
		}
		return ToScalarString(val[0])
	case map[string]any:
		for _, key := range structuredKeys {
			if s := ToScalarString(val[key]); s != "" {
				return s
			}
		}
		return fmt.Sprint(val)
	default:
		return fmt.Sprint(val)
	}
}

// NormalizeDate reduces a date value to its date-only portion. ISO timestamps
// ("2024-05-01T10:00:00+02:00") become "2024-05-01"; anything without a 'T'
// separator passes through unchanged, so the function is idempotent.
func NormalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	if idx := strings.IndexByte(raw, 'T'); idx >= 0 {
		return raw[:idx]
	}
	return raw
}

// ExtractHour reduces a time value to an integer hour. It accepts ISO
// timestamps ("...T14:30:00") and clock strings ("14:30"); any input it
// cannot parse yields 0.
func ExtractHour(raw string) int {
	if idx := strings.IndexByte(raw, 'T'); idx >= 0 {
		raw = raw[idx+1:]
	} else if !strings.ContainsRune(raw, ':') {
		return 0
	}
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		raw = raw[:idx]
	}
	hour, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return hour
}
