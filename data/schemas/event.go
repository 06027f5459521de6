package schemas

import (
	"net/url"
	"time"

	"appointments-api/data/models"
)

// DefaultUserID is the sentinel owner assigned when a request carries no
// user_id. It is a real identifier, not an anonymous marker: events created
// without an owner all belong to it.
const DefaultUserID = "default_user_id"

// EventPayload is the create/update request body. Every field is a pointer
// so that an omitted field is distinguishable from a zero value: creation
// fills the gaps with ApplyDefaults, update touches only the fields the
// client actually sent. A supplied id is ignored; the service always
// generates a fresh one.
type EventPayload struct {
	ID           *string           `json:"id"`
	Name         *string           `json:"name" validate:"omitempty,max=140"`
	Description  *string           `json:"description" validate:"omitempty,max=255"`
	Observation  *string           `json:"observation" validate:"omitempty,max=255"`
	Date         *time.Time        `json:"date"`
	DoctorName   *string           `json:"doctor_name" validate:"omitempty,max=140"`
	LocationName *string           `json:"location_name" validate:"omitempty,max=140"`
	LocationID   *int64            `json:"location_id"`
	DoctorID     *int64            `json:"doctor_id"`
	UserID       *string           `json:"user_id" validate:"omitempty,max=36"`
	Type         *models.EventType `json:"type"`
}

// ApplyDefaults fills every omitted field with its documented default, so a
// creation request with an empty body still yields a fully populated event.
func (p *EventPayload) ApplyDefaults() {
	if p.Name == nil {
		p.Name = strPtr("Consulta Dermatologista")
	}
	if p.Description == nil {
		p.Description = strPtr("A consulta será por ordem de chegada")
	}
	if p.Observation == nil {
		p.Observation = strPtr("Vou precisar de ajuda para ir até a consulta porque o carro está quebrado")
	}
	if p.Date == nil {
		now := time.Now()
		p.Date = &now
	}
	if p.DoctorName == nil {
		p.DoctorName = strPtr("Doutor Matheus")
	}
	if p.LocationName == nil {
		p.LocationName = strPtr("memorial são jose recife 83")
	}
	if p.LocationID == nil {
		p.LocationID = int64Ptr(1)
	}
	if p.DoctorID == nil {
		p.DoctorID = int64Ptr(1)
	}
	if p.UserID == nil {
		p.UserID = strPtr(DefaultUserID)
	}
	if p.Type == nil {
		t := models.Consultation
		p.Type = &t
	}
}

// EventLookup is the compound lookup key for fetch, update and delete.
type EventLookup struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

func EventLookupFromQuery(q url.Values) EventLookup {
	return EventLookup{
		ID:     q.Get("id"),
		UserID: q.Get("user_id"),
	}
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }
