package app

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
)

var errMalformedPayload = errors.New("malformed schedule payload")

// schedulePayload est la forme attendue :
// {"_metadata":{"date":...},"result":{"schedules":[{"message":...}]}}
type schedulePayload struct {
	Metadata *struct {
		Date string `json:"date"`
	} `json:"_metadata"`
	Result *struct {
		Schedules *[]struct {
			Message string `json:"message"`
		} `json:"schedules"`
	} `json:"result"`
}

func decodeSchedulePayload(b []byte) (createdAt string, entries []domain.ScheduleEntry, err error) {
	var p schedulePayload
	if err := json.Unmarshal(b, &p); err != nil {
		return "", nil, &CodedError{Code: CodeMalformedPayload, Message: "decode schedule payload", Err: err}
	}
	if p.Metadata == nil || strings.TrimSpace(p.Metadata.Date) == "" || p.Result == nil || p.Result.Schedules == nil {
		return "", nil, &CodedError{Code: CodeMalformedPayload, Err: errMalformedPayload}
	}
	entries = make([]domain.ScheduleEntry, 0, len(*p.Result.Schedules))
	for _, s := range *p.Result.Schedules {
		entries = append(entries, domain.ScheduleEntry{Message: s.Message})
	}
	return p.Metadata.Date, entries, nil
}
