package postgres

import (
	"context"
	"errors"
	"time"

	"campushub/internal/domain"
	"campushub/internal/utils"

	"github.com/jackc/pgx/v5"
)

const registrationColumns = "id, event_id, user_id, check_in_code, qr_code, checked_in, checked_in_at, created_at"

func scanRegistration(row pgx.Row, r *domain.Registration) error {
	return row.Scan(
		&r.ID, &r.EventID, &r.UserID, &r.CheckInCode, &r.QRCode,
		&r.CheckedIn, &r.CheckedInAt, &r.CreatedAt,
	)
}

// CreateRegistration inserts a registration only while the event is below
// capacity. The event row is locked for the duration of the transaction, so
// concurrent registrations for the same event serialize and the seat count
// cannot be overtaken between the check and the insert.
func (s *Storage) CreateRegistration(ctx context.Context, eventID, userID int, code, qrCode string) (*domain.Registration, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const lock = `SELECT max_attendees FROM events WHERE id = $1 FOR UPDATE;`
	var maxAttendees int
	if err := tx.QueryRow(ctx, lock, eventID).Scan(&maxAttendees); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	const existing = `SELECT EXISTS (SELECT 1 FROM event_registrations WHERE event_id = $1 AND user_id = $2);`
	var registered bool
	if err := tx.QueryRow(ctx, existing, eventID, userID).Scan(&registered); err != nil {
		return nil, err
	}
	if registered {
		return nil, domain.ErrAlreadyRegistered
	}

	const taken = `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1;`
	var seats int
	if err := tx.QueryRow(ctx, taken, eventID).Scan(&seats); err != nil {
		return nil, err
	}
	if seats >= maxAttendees {
		return nil, domain.ErrEventFull
	}

	const insert = `
        INSERT INTO event_registrations (event_id, user_id, check_in_code, qr_code)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + registrationColumns + `;
    `

	var r domain.Registration
	if err := scanRegistration(tx.QueryRow(ctx, insert, eventID, userID, code, qrCode), &r); err != nil {
		if IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, err
	}

	return &r, tx.Commit(ctx)
}

// DeleteRegistration removes the registration if present. Unregistering when
// not registered is a no-op, not an error.
func (s *Storage) DeleteRegistration(ctx context.Context, eventID, userID int) error {
	const query = `DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2;`
	_, err := s.pool.Exec(ctx, query, eventID, userID)
	return err
}

func (s *Storage) GetRegistration(ctx context.Context, eventID, userID int) (*domain.Registration, error) {
	const query = `SELECT ` + registrationColumns + ` FROM event_registrations WHERE event_id = $1 AND user_id = $2;`

	var r domain.Registration
	err := scanRegistration(s.pool.QueryRow(ctx, query, eventID, userID), &r)

	return &r, err
}

// GetRegistrationByCode looks up a registration by manual check-in code.
// Codes are stored uppercase; callers normalize input first.
func (s *Storage) GetRegistrationByCode(ctx context.Context, code string) (*domain.Registration, error) {
	const query = `SELECT ` + registrationColumns + ` FROM event_registrations WHERE check_in_code = $1;`

	var r domain.Registration
	err := scanRegistration(s.pool.QueryRow(ctx, query, code), &r)

	return &r, err
}

// GetRegistrationByCredential looks up a registration by id + QR credential,
// the compound match used for scanned payloads.
func (s *Storage) GetRegistrationByCredential(ctx context.Context, registrationID int, qrCode string) (*domain.Registration, error) {
	const query = `SELECT ` + registrationColumns + ` FROM event_registrations WHERE id = $1 AND qr_code = $2;`

	var r domain.Registration
	err := scanRegistration(s.pool.QueryRow(ctx, query, registrationID, qrCode), &r)

	return &r, err
}

// CheckInRegistration performs the registered -> checked_in transition as a
// single conditional update. When the row was already checked in it is
// returned unchanged together with domain.ErrAlreadyCheckedIn so callers can
// report the original timestamp.
func (s *Storage) CheckInRegistration(ctx context.Context, registrationID int, now time.Time) (*domain.Registration, error) {
	const query = `
        UPDATE event_registrations
        SET checked_in = TRUE, checked_in_at = $2
        WHERE id = $1 AND checked_in = FALSE
        RETURNING ` + registrationColumns + `;
    `

	var r domain.Registration
	err := scanRegistration(s.pool.QueryRow(ctx, query, registrationID, now), &r)
	if err == nil {
		return &r, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	const existing = `SELECT ` + registrationColumns + ` FROM event_registrations WHERE id = $1;`
	if err := scanRegistration(s.pool.QueryRow(ctx, existing, registrationID), &r); err != nil {
		return nil, err
	}
	if r.CheckedIn {
		return &r, domain.ErrAlreadyCheckedIn
	}
	return nil, pgx.ErrNoRows
}

func (s *Storage) ListRegistrations(ctx context.Context, eventID int) ([]domain.Attendee, error) {
	const query = `
        SELECT r.id, r.user_id, u.username, u.full_name, r.checked_in, r.checked_in_at
        FROM event_registrations r
        JOIN users u ON r.user_id = u.id
        WHERE r.event_id = $1
        ORDER BY r.created_at;
    `

	rows, err := s.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var attendees []domain.Attendee
	for rows.Next() {
		var a domain.Attendee
		err := rows.Scan(
			&a.RegistrationID, &a.UserID, &a.Username, &a.FullName,
			&a.CheckedIn, &a.CheckedInAt,
		)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}

	return attendees, rows.Err()
}
