package commerce

import (
	"encoding/json"
	"fmt"

	"orderdesk/internal/domain/order"
)

// envelope is the upstream response wrapper. Some deployments nest the
// payload one level deeper under responseBody; both spellings of the page
// count are seen in the wild.
type envelope struct {
	Data         json.RawMessage `json:"data"`
	Message      string          `json:"message"`
	TotalPages   int             `json:"totalPages"`
	TotalPagesLC int             `json:"total_pages"`

	ResponseBody *struct {
		Data         json.RawMessage `json:"data"`
		Message      string          `json:"message"`
		TotalPages   int             `json:"totalPages"`
		TotalPagesLC int             `json:"total_pages"`
	} `json:"responseBody"`
}

// payload returns the data payload, trying the direct path before the nested
// one.
func (e envelope) payload() (json.RawMessage, bool) {
	if len(e.Data) > 0 && string(e.Data) != "null" {
		return e.Data, true
	}
	if e.ResponseBody != nil && len(e.ResponseBody.Data) > 0 && string(e.ResponseBody.Data) != "null" {
		return e.ResponseBody.Data, true
	}
	return nil, false
}

func (e envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ResponseBody != nil {
		return e.ResponseBody.Message
	}
	return ""
}

func (e envelope) totalPages() int {
	for _, n := range []int{e.TotalPages, e.TotalPagesLC} {
		if n > 0 {
			return n
		}
	}
	if e.ResponseBody != nil {
		for _, n := range []int{e.ResponseBody.TotalPages, e.ResponseBody.TotalPagesLC} {
			if n > 0 {
				return n
			}
		}
	}
	return 0
}

func parseEnvelope(body []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, fmt.Errorf("%w: %v", order.ErrMalformedResponse, err)
	}
	return env, nil
}

// dataList interprets the payload as an array of raw order objects.
func dataList(env envelope) ([]json.RawMessage, error) {
	payload, ok := env.payload()
	if !ok {
		return nil, fmt.Errorf("%w: missing data payload", order.ErrMalformedResponse)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, fmt.Errorf("%w: data is not an array", order.ErrMalformedResponse)
	}
	return list, nil
}
