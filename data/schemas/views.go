package schemas

import (
	"time"

	"appointments-api/data/models"
)

// EventSummary is the per-event projection used in listings. data_insercao
// is persisted but never projected.
type EventSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Observation  string    `json:"observation"`
	Date         time.Time `json:"date"`
	DoctorName   string    `json:"doctor_name"`
	LocationName string    `json:"location_name"`
	LocationID   *int64    `json:"location_id"`
	DoctorID     *int64    `json:"doctor_id"`
	UserID       string    `json:"user_id"`
	Type         int       `json:"type"`
}

// EventView is the detail projection: the summary fields plus the comment
// count and the comment bodies. Only the texto of each comment is exposed.
type EventView struct {
	EventSummary
	TotalComentarios int           `json:"total_comentarios"`
	Comentarios      []CommentView `json:"comentarios"`
}

type CommentView struct {
	Texto string `json:"texto"`
}

// EventListView wraps the sequence of projections returned by the listing
// endpoint.
type EventListView struct {
	Events []EventSummary `json:"events"`
}

func NewEventSummary(e models.Event) EventSummary {
	return EventSummary{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		Observation:  e.Observation,
		Date:         e.Date,
		DoctorName:   e.DoctorName,
		LocationName: e.LocationName,
		LocationID:   e.LocationID,
		DoctorID:     e.DoctorID,
		UserID:       e.UserID,
		Type:         e.Type.Code(),
	}
}

func NewEventView(e models.Event, comments []models.Comment) EventView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{Texto: c.Texto})
	}

	return EventView{
		EventSummary:     NewEventSummary(e),
		TotalComentarios: len(views),
		Comentarios:      views,
	}
}

func NewEventListView(events []models.Event) EventListView {
	summaries := make([]EventSummary, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, NewEventSummary(e))
	}
	return EventListView{Events: summaries}
}
