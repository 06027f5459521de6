package models

import "time"

// Event is an appointment record (consultation or exam) owned by a user.
// Field order must match the column order of the events table; the
// repository scans rows positionally.
type Event struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id" validate:"required,max=36"`
	Name         string    `validate:"required,max=140" json:"name" db:"name"`
	Description  string    `validate:"max=255" json:"description" db:"description"`
	Observation  string    `validate:"max=255" json:"observation" db:"observation"`
	Type         EventType `json:"type" db:"type"`
	Date         time.Time `json:"date" db:"date"`
	DataInsercao time.Time `json:"data_insercao" db:"data_insercao"`
	DoctorName   string    `validate:"max=140" json:"doctor_name" db:"doctor_name"`
	LocationName string    `validate:"max=140" json:"location_name" db:"location_name"`
	LocationID   *int64    `json:"location_id" db:"location_id"`
	DoctorID     *int64    `json:"doctor_id" db:"doctor_id"`
}

func (Event) TableName() string {
	return "events"
}

func (e Event) EmptySlice() interface{} {
	return &[]Event{}
}
