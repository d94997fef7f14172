package study

import (
	"database/sql/driver"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EventType tags a schedule entry.
type EventType string

const (
	EventTypeTest     EventType = "test"
	EventTypeHomework EventType = "homework"
	EventTypeReview   EventType = "review"
	EventTypeMockExam EventType = "mock_exam"
	EventTypeOther    EventType = "other"
)

var EventTypes = []EventType{
	EventTypeTest,
	EventTypeHomework,
	EventTypeReview,
	EventTypeMockExam,
	EventTypeOther,
}

// ParseEventType rejects unknown tags instead of mapping them to "other".
func ParseEventType(s string) (EventType, error) {
	for _, t := range EventTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

func (t EventType) String() string {
	return string(t)
}

func (t *EventType) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scan event type from %T", src)
	}
	parsed, err := ParseEventType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t EventType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

func (t *EventType) UnmarshalText(text []byte) error {
	parsed, err := ParseEventType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *EventType) UnmarshalYAML(value *yaml.Node) error {
	return t.UnmarshalText([]byte(value.Value))
}
