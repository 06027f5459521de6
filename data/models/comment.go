package models

import "time"

// Comment is a free-text annotation attached to an Event. The id is
// store-assigned, so it is marked readOnly and skipped on insert.
type Comment struct {
	ID           int64     `json:"id" db:"id" readOnly:"true"`
	Texto        string    `validate:"required,max=4000" json:"texto" db:"texto"`
	DataInsercao time.Time `json:"data_insercao" db:"data_insercao"`
	EventID      *string   `json:"event_id" db:"event_id"`
	DoctorID     *int64    `json:"doctor_id" db:"doctor_id"`
	LocationID   *int64    `json:"location_id" db:"location_id"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c Comment) EmptySlice() interface{} {
	return &[]Comment{}
}
