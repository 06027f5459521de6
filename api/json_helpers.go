package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"appointments-api/data/schemas"

	"github.com/go-playground/validator"
)

var validate = validator.New()

func marshalAndSend(w http.ResponseWriter, env schemas.Envelope, statusCode int) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// write the json out
	_, err = w.Write(payload)
	if err != nil {
		return err
	}
	return nil
}

// WriteEnvelope serializes the response envelope with the given transport
// status code. Serialization failures are logged, not surfaced; by this
// point the service has already committed or rolled back.
func (app *application) WriteEnvelope(w http.ResponseWriter, statusCode int, env schemas.Envelope) {
	if err := marshalAndSend(w, env, statusCode); err != nil {
		app.Logger.Error().Err(err).Msg("failed to write response")
	}
}

// ReadJSON decodes a request body into data, enforcing a single JSON value,
// no unknown fields and a one megabyte cap. With validationReq it also runs
// the validator over the decoded struct, so malformed payloads are rejected
// before any service or store code runs.
func (app *application) ReadJSON(w http.ResponseWriter, r *http.Request, data interface{}, validationReq bool) error {
	maxBytes := 1024 * 1024 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	// attempt to decode the data
	err := dec.Decode(data)
	if err != nil {
		return err
	}

	// make sure only one JSON value in payload
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	if validationReq {
		err := validate.Struct(data)
		if err != nil {
			return err
		}
	}

	return nil
}
