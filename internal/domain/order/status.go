package order

import (
	"encoding/json"
	"math"
	"strings"
)

// statusLabels is the fixed code table used by the upstream backend.
var statusLabels = map[int]string{
	0:  "Pending Payment",
	1:  "Confirmed",
	2:  "Processing",
	3:  "Shipped",
	4:  "Delivered",
	5:  "Cancelled by User",
	6:  "Refunded",
	7:  "Returned",
	8:  "Payment Expired",
	9:  "Cancelled by Admin",
	10: "Complete",
}

// StatusFallbackLabel is returned for codes outside the table and for empty
// labels.
const StatusFallbackLabel = "Pending"

var statusCodes = func() map[string]int {
	m := make(map[string]int, len(statusLabels))
	for code, label := range statusLabels {
		m[strings.ToLower(label)] = code
	}
	return m
}()

// Status is either a numeric code or a free-text label, depending on what the
// upstream sent. The two representations are never compared directly: Label
// coerces for display, Code coerces for filtering.
type Status struct {
	code    int
	label   string
	hasCode bool
}

func StatusFromCode(code int) Status {
	return Status{code: code, hasCode: true}
}

func StatusFromLabel(label string) Status {
	return Status{label: label}
}

// StatusFromRaw builds a Status from a JSON-decoded value. Integer numbers
// become codes, non-empty strings become labels, anything else falls back to
// the default label. A fractional number is not a code; truncating it would
// let 3.5 pass for Shipped, so it falls through to the default too.
func StatusFromRaw(v interface{}) Status {
	switch t := v.(type) {
	case float64:
		if math.IsInf(t, 0) || t != math.Trunc(t) {
			return Status{}
		}
		return StatusFromCode(int(t))
	case int:
		return StatusFromCode(t)
	case int64:
		return StatusFromCode(int(t))
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return StatusFromCode(int(i))
		}
		if _, err := t.Float64(); err == nil {
			return Status{}
		}
		return StatusFromLabel(t.String())
	case string:
		return StatusFromLabel(t)
	default:
		return Status{}
	}
}

// Label returns the display label: the table value for a known code, the label
// verbatim when the upstream already sent one, and the fallback otherwise.
func (s Status) Label() string {
	if s.hasCode {
		if label, ok := statusLabels[s.code]; ok {
			return label
		}
		return StatusFallbackLabel
	}
	if s.label != "" {
		return s.label
	}
	return StatusFallbackLabel
}

// Code resolves the status to a numeric code for filtering. A label that has
// no case-insensitive match in the table resolves to nothing; callers must
// exclude such records from code-filtered views rather than defaulting to 0.
func (s Status) Code() (int, bool) {
	if s.hasCode {
		return s.code, true
	}
	return EncodeStatusLabel(s.label)
}

// EncodeStatusLabel is the case-insensitive reverse lookup of the code table.
func EncodeStatusLabel(label string) (int, bool) {
	code, ok := statusCodes[strings.ToLower(label)]
	return code, ok
}

// Badge buckets a status into a coarse display category. Purely cosmetic.
func (s Status) Badge() string {
	label := strings.ToLower(s.Label())
	switch {
	case strings.Contains(label, "cancel"):
		return "cancelled"
	case strings.Contains(label, "refund"):
		return "refunded"
	case strings.Contains(label, "return"):
		return "returned"
	case strings.Contains(label, "deliver"):
		return "delivered"
	case strings.Contains(label, "ship"):
		return "shipped"
	case strings.Contains(label, "process"):
		return "processing"
	case strings.Contains(label, "expired"), strings.Contains(label, "fail"):
		return "failed"
	default:
		return "other"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Label())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = StatusFromRaw(v)
	return nil
}

func (s Status) String() string {
	return s.Label()
}
