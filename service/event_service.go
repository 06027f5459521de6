package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"appointments-api/data/models"
	"appointments-api/data/repository"
	"appointments-api/data/schemas"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventService is the sole mediator between validated requests and the
// repository. Every method returns the response envelope together with the
// HTTP status code the transport layer should use:
//
//	200 success, 409 duplicate name, 404 not found or not owned,
//	400 missing correlation field or any other persistence failure.
//
// Repository errors never propagate past this layer.
type EventService struct {
	Repo repository.DBRepo
	Log  zerolog.Logger
}

// AddEvent fills the payload's gaps with the documented defaults, generates
// a fresh identifier and persists the event in one transaction.
func (s *EventService) AddEvent(body schemas.EventPayload) (schemas.Envelope, int) {
	body.ApplyDefaults()

	e := models.Event{
		ID:           uuid.NewString(),
		UserID:       *body.UserID,
		Name:         *body.Name,
		Description:  *body.Description,
		Observation:  *body.Observation,
		Type:         *body.Type,
		Date:         *body.Date,
		DataInsercao: time.Now(),
		DoctorName:   *body.DoctorName,
		LocationName: *body.LocationName,
		LocationID:   body.LocationID,
		DoctorID:     body.DoctorID,
	}

	s.Log.Debug().Str("event_id", e.ID).Str("name", e.Name).Msg("adding event")

	if err := s.Repo.CreateEvent(e); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			s.Log.Warn().Err(err).Str("name", e.Name).Msg("integrity error adding event")
			return schemas.ErrorEnvelope(fmt.Sprintf("integrity error adding event: %v", err)), http.StatusConflict
		}
		s.Log.Warn().Err(err).Str("name", e.Name).Msg("could not save new event")
		return schemas.ErrorEnvelope(fmt.Sprintf("could not save new event: %v", err)), http.StatusBadRequest
	}

	return schemas.OkEnvelope("event added successfully", schemas.NewEventView(e, nil)), http.StatusOK
}

// GetEvents lists events, restricted to one owner when userID is non-empty.
// An empty result set is a success with an empty list.
func (s *EventService) GetEvents(userID string) (schemas.Envelope, int) {
	events, err := s.Repo.ListEvents(userID)
	if err != nil {
		s.Log.Warn().Err(err).Str("user_id", userID).Msg("could not list events")
		return schemas.ErrorEnvelope(fmt.Sprintf("could not list events: %v", err)), http.StatusBadRequest
	}

	s.Log.Debug().Int("count", len(events)).Str("user_id", userID).Msg("events collected")

	msg := "events collected successfully"
	if len(events) == 0 {
		msg = "no events found"
	}
	return schemas.OkEnvelope(msg, schemas.NewEventListView(events)), http.StatusOK
}

// GetEvent fetches the detail projection for one event. The lookup schema
// names the key field "id", but the value is matched against the name
// column; that mismatch is the inherited contract (see DESIGN.md) and is
// preserved here on purpose.
func (s *EventService) GetEvent(lookup schemas.EventLookup) (schemas.Envelope, int) {
	s.Log.Debug().Str("lookup", lookup.ID).Msg("fetching event")

	e, err := s.Repo.GetEventByName(lookup.ID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			s.Log.Warn().Str("lookup", lookup.ID).Msg("event not found")
			return schemas.ErrorEnvelope("event not found"), http.StatusNotFound
		}
		s.Log.Warn().Err(err).Str("lookup", lookup.ID).Msg("could not fetch event")
		return schemas.ErrorEnvelope(fmt.Sprintf("could not fetch event: %v", err)), http.StatusBadRequest
	}

	view, err := s.detailView(e)
	if err != nil {
		return schemas.ErrorEnvelope(fmt.Sprintf("could not load comments: %v", err)), http.StatusBadRequest
	}

	return schemas.OkEnvelope("event found", view), http.StatusOK
}

// DeleteEvent removes the event matching both id and user_id. The detail
// projection is captured before the delete and returned as confirmation. A
// missing user_id is a client error distinct from not-found; a wrong owner
// is indistinguishable from a missing record.
func (s *EventService) DeleteEvent(lookup schemas.EventLookup) (schemas.Envelope, int) {
	if lookup.UserID == "" {
		return schemas.ErrorEnvelope("missing user_id in query"), http.StatusBadRequest
	}

	e, err := s.Repo.GetEventByIDAndUser(lookup.ID, lookup.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return schemas.ErrorEnvelope("event not found or not owned by the user"), http.StatusNotFound
		}
		return schemas.ErrorEnvelope(fmt.Sprintf("could not fetch event: %v", err)), http.StatusBadRequest
	}

	view, err := s.detailView(e)
	if err != nil {
		return schemas.ErrorEnvelope(fmt.Sprintf("could not load comments: %v", err)), http.StatusBadRequest
	}

	count, err := s.Repo.DeleteEvent(lookup.ID, lookup.UserID)
	if err != nil {
		s.Log.Warn().Err(err).Str("event_id", lookup.ID).Msg("could not delete event")
		return schemas.ErrorEnvelope(fmt.Sprintf("could not delete event: %v", err)), http.StatusBadRequest
	}
	if count == 0 {
		return schemas.ErrorEnvelope("event not found or not owned by the user"), http.StatusNotFound
	}

	s.Log.Debug().Str("event_id", e.ID).Str("name", e.Name).Msg("event removed")
	return schemas.OkEnvelope("event removed", view), http.StatusOK
}

// UpdateEvent locates the event by id and user_id and applies only the
// fields present in the request body, leaving the rest untouched.
func (s *EventService) UpdateEvent(lookup schemas.EventLookup, body schemas.EventPayload) (schemas.Envelope, int) {
	e, err := s.Repo.GetEventByIDAndUser(lookup.ID, lookup.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			s.Log.Warn().Str("event_id", lookup.ID).Msg("event not found or not owned by the user")
			return schemas.ErrorEnvelope("event not found or not owned by the user"), http.StatusNotFound
		}
		return schemas.ErrorEnvelope(fmt.Sprintf("could not fetch event: %v", err)), http.StatusBadRequest
	}

	applyPatch(&e, body)

	if err := s.Repo.UpdateEvent(e); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateName):
			s.Log.Warn().Err(err).Str("event_id", e.ID).Msg("integrity error updating event")
			return schemas.ErrorEnvelope(fmt.Sprintf("integrity error updating event: %v", err)), http.StatusConflict
		case errors.Is(err, repository.ErrEventNotFound):
			return schemas.ErrorEnvelope("event not found or not owned by the user"), http.StatusNotFound
		default:
			s.Log.Warn().Err(err).Str("event_id", e.ID).Msg("could not update event")
			return schemas.ErrorEnvelope(fmt.Sprintf("could not update event: %v", err)), http.StatusBadRequest
		}
	}

	view, err := s.detailView(e)
	if err != nil {
		return schemas.ErrorEnvelope(fmt.Sprintf("could not load comments: %v", err)), http.StatusBadRequest
	}

	s.Log.Debug().Str("event_id", e.ID).Msg("event updated")
	return schemas.OkEnvelope("event updated successfully", view), http.StatusOK
}

// AddComment appends a comment to an event. The operation is kept off the
// routing table; only internal callers and tests reach it.
func (s *EventService) AddComment(eventID, texto string) (schemas.Envelope, int) {
	if eventID == "" {
		return schemas.ErrorEnvelope("invalid event id"), http.StatusNotFound
	}

	e, err := s.Repo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return schemas.ErrorEnvelope("event not found"), http.StatusNotFound
		}
		return schemas.ErrorEnvelope(fmt.Sprintf("could not fetch event: %v", err)), http.StatusBadRequest
	}

	c := models.Comment{
		Texto:        texto,
		DataInsercao: time.Now(),
		EventID:      &e.ID,
	}
	if _, err := s.Repo.AddComment(c); err != nil {
		s.Log.Warn().Err(err).Str("event_id", eventID).Msg("could not add comment")
		return schemas.ErrorEnvelope(fmt.Sprintf("could not add comment: %v", err)), http.StatusBadRequest
	}

	view, err := s.detailView(e)
	if err != nil {
		return schemas.ErrorEnvelope(fmt.Sprintf("could not load comments: %v", err)), http.StatusBadRequest
	}

	s.Log.Debug().Str("event_id", eventID).Msg("comment added")
	return schemas.OkEnvelope("comment added successfully", view), http.StatusOK
}

func (s *EventService) detailView(e models.Event) (schemas.EventView, error) {
	comments, err := s.Repo.ListComments(e.ID)
	if err != nil {
		s.Log.Warn().Err(err).Str("event_id", e.ID).Msg("could not load comments")
		return schemas.EventView{}, err
	}
	return schemas.NewEventView(e, comments), nil
}

// applyPatch copies only the non-nil payload fields onto the event. A
// supplied id is ignored; identifiers never change after creation.
func applyPatch(e *models.Event, body schemas.EventPayload) {
	if body.Name != nil {
		e.Name = *body.Name
	}
	if body.Description != nil {
		e.Description = *body.Description
	}
	if body.Observation != nil {
		e.Observation = *body.Observation
	}
	if body.Date != nil {
		e.Date = *body.Date
	}
	if body.DoctorName != nil {
		e.DoctorName = *body.DoctorName
	}
	if body.LocationName != nil {
		e.LocationName = *body.LocationName
	}
	if body.LocationID != nil {
		e.LocationID = body.LocationID
	}
	if body.DoctorID != nil {
		e.DoctorID = body.DoctorID
	}
	if body.UserID != nil {
		e.UserID = *body.UserID
	}
	if body.Type != nil {
		e.Type = *body.Type
	}
}
