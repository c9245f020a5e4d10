package domain

import "time"

type Event struct {
	ID           int       `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description"`
	EventDate    time.Time `db:"event_date" json:"event_date"`
	Location     string    `db:"location" json:"location"`
	MaxAttendees int       `db:"max_attendees" json:"max_attendees"`
	CreatedBy    int       `db:"created_by" json:"created_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// EventWithStats carries the attendee count and the calling user's
// registration state alongside the event itself.
type EventWithStats struct {
	Event
	AttendeeCount int               `json:"attendee_count"`
	MyState       RegistrationState `json:"my_state"`
}

type CreateEventRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  *string   `json:"description"`
	EventDate    time.Time `json:"event_date" validate:"required"`
	Location     string    `json:"location" validate:"required"`
	MaxAttendees int       `json:"max_attendees" validate:"required,min=1"`
}

type UpdateEventRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	EventDate    *time.Time `json:"event_date"`
	Location     *string    `json:"location"`
	MaxAttendees *int       `json:"max_attendees" validate:"omitempty,min=1"`
}
