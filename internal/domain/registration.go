package domain

import (
	"errors"
	"time"
)

var (
	ErrAlreadyRegistered = errors.New("user already registered for event")
	ErrEventFull         = errors.New("event capacity reached")
	ErrAlreadyCheckedIn  = errors.New("registration already checked in")
	ErrWrongEvent        = errors.New("credential belongs to a different event")
	ErrSelfFollow        = errors.New("cannot follow yourself")
)

// RegistrationState is the explicit lifecycle of a user's relation to an
// event: unregistered -> registered -> checked_in. There is no transition
// back out of checked_in.
type RegistrationState string

const (
	StateUnregistered RegistrationState = "unregistered"
	StateRegistered   RegistrationState = "registered"
	StateCheckedIn    RegistrationState = "checked_in"
)

type Registration struct {
	ID          int        `db:"id" json:"id"`
	EventID     int        `db:"event_id" json:"event_id"`
	UserID      int        `db:"user_id" json:"user_id"`
	CheckInCode string     `db:"check_in_code" json:"check_in_code"`
	QRCode      string     `db:"qr_code" json:"qr_code"`
	CheckedIn   bool       `db:"checked_in" json:"checked_in"`
	CheckedInAt *time.Time `db:"checked_in_at" json:"checked_in_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

func (r *Registration) State() RegistrationState {
	if r.CheckedIn {
		return StateCheckedIn
	}
	return StateRegistered
}

// CheckIn performs the registered -> checked_in transition. A second
// check-in is rejected with ErrAlreadyCheckedIn and leaves CheckedInAt
// untouched.
func (r *Registration) CheckIn(now time.Time) error {
	if r.CheckedIn {
		return ErrAlreadyCheckedIn
	}
	r.CheckedIn = true
	r.CheckedInAt = &now
	return nil
}

// Attendee is a registration joined with its owner, as listed to organizers.
type Attendee struct {
	RegistrationID int        `db:"registration_id" json:"registration_id"`
	UserID         int        `db:"user_id" json:"user_id"`
	Username       string     `db:"username" json:"username"`
	FullName       string     `db:"full_name" json:"full_name"`
	CheckedIn      bool       `db:"checked_in" json:"checked_in"`
	CheckedInAt    *time.Time `db:"checked_in_at" json:"checked_in_at"`
}
