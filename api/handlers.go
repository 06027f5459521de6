package main

import (
	"fmt"
	"net/http"

	"appointments-api/data/schemas"
)

// addEvent handles POST /appointment.
func (app *application) addEvent(w http.ResponseWriter, r *http.Request) {
	var body schemas.EventPayload
	if err := app.ReadJSON(w, r, &body, true); err != nil {
		app.Logger.Warn().Err(err).Msg("invalid create payload")
		app.WriteEnvelope(w, http.StatusBadRequest, schemas.ErrorEnvelope(fmt.Sprintf("invalid request body: %v", err)))
		return
	}

	env, code := app.Service.AddEvent(body)
	app.WriteEnvelope(w, code, env)
}

// getEvents handles GET /appointments. The user_id query parameter, when
// present, restricts the listing to that owner.
func (app *application) getEvents(w http.ResponseWriter, r *http.Request) {
	env, code := app.Service.GetEvents(r.URL.Query().Get("user_id"))
	app.WriteEnvelope(w, code, env)
}

// getEvent handles GET /appointment.
func (app *application) getEvent(w http.ResponseWriter, r *http.Request) {
	lookup := schemas.EventLookupFromQuery(r.URL.Query())
	env, code := app.Service.GetEvent(lookup)
	app.WriteEnvelope(w, code, env)
}

// updateEvent handles PUT /appointment: lookup key in the query string,
// partial field set in the body.
func (app *application) updateEvent(w http.ResponseWriter, r *http.Request) {
	lookup := schemas.EventLookupFromQuery(r.URL.Query())

	var body schemas.EventPayload
	if err := app.ReadJSON(w, r, &body, true); err != nil {
		app.Logger.Warn().Err(err).Msg("invalid update payload")
		app.WriteEnvelope(w, http.StatusBadRequest, schemas.ErrorEnvelope(fmt.Sprintf("invalid request body: %v", err)))
		return
	}

	env, code := app.Service.UpdateEvent(lookup, body)
	app.WriteEnvelope(w, code, env)
}

// deleteEvent handles DELETE /appointment.
func (app *application) deleteEvent(w http.ResponseWriter, r *http.Request) {
	lookup := schemas.EventLookupFromQuery(r.URL.Query())
	env, code := app.Service.DeleteEvent(lookup)
	app.WriteEnvelope(w, code, env)
}
