package models

import (
	"encoding/json"
	"fmt"
)

// EventType is the closed enumeration for Event.Type. It travels as a bare
// integer code on the wire and in the database, but every boundary crossing
// goes through EventTypeFromCode so unknown codes never leak in.
type EventType int

const (
	Consultation EventType = 1
	Exam         EventType = 2
)

func (t EventType) Valid() bool {
	return t == Consultation || t == Exam
}

// Code returns the integer persisted in the type column.
func (t EventType) Code() int {
	return int(t)
}

func (t EventType) String() string {
	switch t {
	case Consultation:
		return "CONSULTATION"
	case Exam:
		return "EXAM"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// EventTypeFromCode maps a stored integer code back to its enumerant,
// rejecting codes outside the known set.
func EventTypeFromCode(code int) (EventType, error) {
	t := EventType(code)
	if !t.Valid() {
		return 0, fmt.Errorf("unknown event type code: %d", code)
	}
	return t, nil
}

func (t *EventType) UnmarshalJSON(b []byte) error {
	var code int
	if err := json.Unmarshal(b, &code); err != nil {
		return fmt.Errorf("event type must be an integer code: %v", err)
	}

	parsed, err := EventTypeFromCode(code)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
