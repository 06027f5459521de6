package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func (app *application) routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/appointment", app.addEvent).Methods("POST")
	r.HandleFunc("/appointments", app.getEvents).Methods("GET")
	r.HandleFunc("/appointment", app.getEvent).Methods("GET")
	r.HandleFunc("/appointment", app.updateEvent).Methods("PUT")
	r.HandleFunc("/appointment", app.deleteEvent).Methods("DELETE")

	r.Use(app.loggingMiddleware)
	r.Use(app.recoveryMiddleware)

	// The API fronts a browser client on another origin.
	return cors.AllowAll().Handler(r)
}

// loggingMiddleware logs all HTTP requests
func (app *application) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.Logger.Info().
			Str("remote", r.RemoteAddr).
			Str("method", r.Method).
			Stringer("url", r.URL).
			Msg("request")
		next.ServeHTTP(w, r)
	})
}

// recoveryMiddleware recovers from panics and returns a 500 error
func (app *application) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				app.Logger.Error().Interface("panic", err).Msg("recovered from panic")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
