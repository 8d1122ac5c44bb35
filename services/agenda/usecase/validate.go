package usecase

import (
	"fmt"
	"time"

	"agendakids/domain"

	"github.com/asaskevich/govalidator"
)

// validateStruct runs govalidator over the request tags and returns every
// failure message, not just the first one.
func validateStruct(req interface{}) []string {
	_, err := govalidator.ValidateStruct(req)
	if err == nil {
		return nil
	}

	var messages []string
	if errs, ok := err.(govalidator.Errors); ok {
		for _, e := range errs.Errors() {
			messages = append(messages, e.Error())
		}
	} else {
		messages = append(messages, err.Error())
	}

	return messages
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseTimestamp accepts RFC3339 as well as the bare local forms clients
// actually send (no seconds, no zone).
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return t, nil
}

func validationError(messages []string) error {
	return &domain.ValidationError{Messages: messages}
}
