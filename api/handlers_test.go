package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"appointments-api/data/models"
	"appointments-api/data/repository"
	"appointments-api/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// fakeRepo is a map-backed DBRepo for exercising the full routing, decoding
// and envelope path without a database.
type fakeRepo struct {
	events   map[string]models.Event
	order    []string
	comments map[string][]models.Comment
	writes   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events:   make(map[string]models.Event),
		comments: make(map[string][]models.Comment),
	}
}

func (r *fakeRepo) Connection() *sql.DB               { return nil }
func (r *fakeRepo) RunMigrations(dbName string) error { return nil }

func (r *fakeRepo) CreateEvent(e models.Event) error {
	r.writes++
	for _, other := range r.events {
		if other.Name == e.Name {
			return fmt.Errorf("%w: duplicate key value violates unique constraint \"events_name_key\"", repository.ErrDuplicateName)
		}
	}
	r.events[e.ID] = e
	r.order = append(r.order, e.ID)
	return nil
}

func (r *fakeRepo) ListEvents(userID string) ([]models.Event, error) {
	var events []models.Event
	for _, id := range r.order {
		e := r.events[id]
		if userID == "" || e.UserID == userID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (r *fakeRepo) GetEventByName(name string) (models.Event, error) {
	for _, e := range r.events {
		if e.Name == name {
			return e, nil
		}
	}
	return models.Event{}, repository.ErrEventNotFound
}

func (r *fakeRepo) GetEventByID(id string) (models.Event, error) {
	if e, ok := r.events[id]; ok {
		return e, nil
	}
	return models.Event{}, repository.ErrEventNotFound
}

func (r *fakeRepo) GetEventByIDAndUser(id, userID string) (models.Event, error) {
	if e, ok := r.events[id]; ok && e.UserID == userID {
		return e, nil
	}
	return models.Event{}, repository.ErrEventNotFound
}

func (r *fakeRepo) UpdateEvent(e models.Event) error {
	r.writes++
	if _, ok := r.events[e.ID]; !ok {
		return repository.ErrEventNotFound
	}
	r.events[e.ID] = e
	return nil
}

func (r *fakeRepo) DeleteEvent(id, userID string) (int64, error) {
	r.writes++
	e, ok := r.events[id]
	if !ok || e.UserID != userID {
		return 0, nil
	}
	delete(r.events, id)
	return 1, nil
}

func (r *fakeRepo) ListComments(eventID string) ([]models.Comment, error) {
	return r.comments[eventID], nil
}

func (r *fakeRepo) AddComment(c models.Comment) (int64, error) {
	r.writes++
	r.comments[*c.EventID] = append(r.comments[*c.EventID], c)
	return int64(len(r.comments[*c.EventID])), nil
}

func newTestApp(repo repository.DBRepo) *application {
	return &application{
		Repo:    repo,
		Service: &service.EventService{Repo: repo, Log: zerolog.Nop()},
		Logger:  zerolog.Nop(),
	}
}

func doRequest(t *testing.T, app *application, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	w := httptest.NewRecorder()
	app.routes().ServeHTTP(w, req)

	var envelope map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return w, envelope
}

func TestAddEventEndpoint_RoundTrip(t *testing.T) {
	app := newTestApp(newFakeRepo())

	body := `{
		"name": "Consulta Dermatologista",
		"description": "Consulta para avaliação de pele",
		"observation": "Exemplo de observação",
		"date": "2026-04-01T10:00:00Z",
		"doctor_name": "Doutor Matheus",
		"location_name": "memorial são jose recife 83",
		"location_id": 1,
		"doctor_id": 1,
		"user_id": "user-a",
		"type": 1
	}`

	w, envelope := doRequest(t, app, http.MethodPost, "/appointment", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", envelope["status"])

	data := envelope["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Consulta Dermatologista", data["name"])
	assert.Equal(t, "Consulta para avaliação de pele", data["description"])
	assert.Equal(t, "user-a", data["user_id"])
	assert.Equal(t, float64(1), data["type"])
	assert.Equal(t, float64(0), data["total_comentarios"])
	assert.Equal(t, []interface{}{}, data["comentarios"])
}

func TestAddEventEndpoint_Duplicate(t *testing.T) {
	app := newTestApp(newFakeRepo())
	body := `{"name": "Consulta Dermatologista"}`

	w, _ := doRequest(t, app, http.MethodPost, "/appointment", body)
	assert.Equal(t, http.StatusOK, w.Code)

	w, envelope := doRequest(t, app, http.MethodPost, "/appointment", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", envelope["status"])
	assert.Contains(t, envelope["msg"], "events_name_key")
}

func TestAddEventEndpoint_ValidationStopsBeforeStore(t *testing.T) {
	repo := newFakeRepo()
	app := newTestApp(repo)

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong type for enum", body: `{"type":"CONSULTATION"}`},
		{name: "unknown enum code", body: `{"type":9}`},
		{name: "wrong type for name", body: `{"name":42}`},
		{name: "malformed JSON", body: `{"name":`},
		{name: "two JSON values", body: `{"name":"a"}{"name":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, envelope := doRequest(t, app, http.MethodPost, "/appointment", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "error", envelope["status"])
		})
	}

	assert.Zero(t, repo.writes, "invalid payloads must never reach the store")
}

func TestGetEventsEndpoint_Filtering(t *testing.T) {
	app := newTestApp(newFakeRepo())

	for i, userID := range []string{"user-a", "user-a", "user-b"} {
		body := fmt.Sprintf(`{"name":"Consulta %d","user_id":%q}`, i, userID)
		w, _ := doRequest(t, app, http.MethodPost, "/appointment", body)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w, envelope := doRequest(t, app, http.MethodGet, "/appointments?user_id=user-a", "")
	assert.Equal(t, http.StatusOK, w.Code)
	events := envelope["data"].(map[string]interface{})["events"].([]interface{})
	assert.Len(t, events, 2)

	w, envelope = doRequest(t, app, http.MethodGet, "/appointments", "")
	assert.Equal(t, http.StatusOK, w.Code)
	events = envelope["data"].(map[string]interface{})["events"].([]interface{})
	assert.Len(t, events, 3)
}

func TestGetEventEndpoint_NotFound(t *testing.T) {
	app := newTestApp(newFakeRepo())

	w, envelope := doRequest(t, app, http.MethodGet, "/appointment?id=no-such-event&user_id=user-a", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", envelope["status"])
	assert.Equal(t, map[string]interface{}{}, envelope["data"])
}

func TestUpdateEventEndpoint_Partial(t *testing.T) {
	app := newTestApp(newFakeRepo())

	_, created := doRequest(t, app, http.MethodPost, "/appointment",
		`{"name":"Consulta Dermatologista","description":"avaliação de pele","user_id":"user-a"}`)
	id := created["data"].(map[string]interface{})["id"].(string)

	w, envelope := doRequest(t, app, http.MethodPut,
		"/appointment?id="+id+"&user_id=user-a", `{"name":"Consulta remarcada"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "Consulta remarcada", data["name"])
	assert.Equal(t, "avaliação de pele", data["description"])
}

func TestUpdateEventEndpoint_WrongOwner(t *testing.T) {
	app := newTestApp(newFakeRepo())

	_, created := doRequest(t, app, http.MethodPost, "/appointment",
		`{"name":"Consulta Dermatologista","user_id":"user-a"}`)
	id := created["data"].(map[string]interface{})["id"].(string)

	w, envelope := doRequest(t, app, http.MethodPut,
		"/appointment?id="+id+"&user_id=user-b", `{"name":"hijacked"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", envelope["status"])
}

func TestDeleteEventEndpoint(t *testing.T) {
	app := newTestApp(newFakeRepo())

	_, created := doRequest(t, app, http.MethodPost, "/appointment",
		`{"name":"Consulta Dermatologista","user_id":"user-a"}`)
	id := created["data"].(map[string]interface{})["id"].(string)

	t.Run("missing user_id", func(t *testing.T) {
		w, envelope := doRequest(t, app, http.MethodDelete, "/appointment?id="+id, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "missing user_id in query", envelope["msg"])
	})

	t.Run("owner delete returns the deleted record", func(t *testing.T) {
		w, envelope := doRequest(t, app, http.MethodDelete, "/appointment?id="+id+"&user_id=user-a", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", envelope["status"])
		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, "Consulta Dermatologista", data["name"])
	})

	t.Run("delete again is not found", func(t *testing.T) {
		w, envelope := doRequest(t, app, http.MethodDelete, "/appointment?id="+id+"&user_id=user-a", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, map[string]interface{}{}, envelope["data"])
	})
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(newFakeRepo())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	app.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
