package postgres

import (
	"context"
	"fmt"

	"campushub/internal/domain"
)

const eventColumns = "id, title, description, event_date, location, max_attendees, created_by, created_at"

func (s *Storage) CreateEvent(ctx context.Context, createdBy int, req *domain.CreateEventRequest) (*domain.Event, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `
        INSERT INTO events (title, description, event_date, location, max_attendees, created_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + eventColumns + `;
    `

	var e domain.Event
	err = tx.QueryRow(ctx, query,
		req.Title, req.Description, req.EventDate, req.Location, req.MaxAttendees, createdBy,
	).Scan(
		&e.ID, &e.Title, &e.Description, &e.EventDate, &e.Location,
		&e.MaxAttendees, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	const points = `UPDATE users SET total_points = total_points + $2 WHERE id = $1;`
	if _, err := tx.Exec(ctx, points, createdBy, domain.PointsPerEvent); err != nil {
		return nil, fmt.Errorf("award event points: %w", err)
	}

	return &e, tx.Commit(ctx)
}

func (s *Storage) GetEventByID(ctx context.Context, id int) (*domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1;`

	var e domain.Event
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.EventDate, &e.Location,
		&e.MaxAttendees, &e.CreatedBy, &e.CreatedAt,
	)

	return &e, err
}

func (s *Storage) ListEvents(ctx context.Context, upcomingOnly bool, order string, limit int) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	if upcomingOnly {
		query += ` WHERE event_date >= now()`
	}
	if order == "asc" {
		query += ` ORDER BY event_date ASC`
	} else {
		query += ` ORDER BY event_date DESC`
	}
	query += ` LIMIT $1;`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.EventDate, &e.Location,
			&e.MaxAttendees, &e.CreatedBy, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (s *Storage) UpdateEvent(ctx context.Context, id int, req *domain.UpdateEventRequest) (*domain.Event, error) {
	const query = `
        UPDATE events
        SET title         = COALESCE($2, title),
            description   = COALESCE($3, description),
            event_date    = COALESCE($4, event_date),
            location      = COALESCE($5, location),
            max_attendees = COALESCE($6, max_attendees)
        WHERE id = $1
        RETURNING ` + eventColumns + `;
    `

	var e domain.Event
	err := s.pool.QueryRow(ctx, query,
		id, req.Title, req.Description, req.EventDate, req.Location, req.MaxAttendees,
	).Scan(
		&e.ID, &e.Title, &e.Description, &e.EventDate, &e.Location,
		&e.MaxAttendees, &e.CreatedBy, &e.CreatedAt,
	)

	return &e, err
}

func (s *Storage) DeleteEvent(ctx context.Context, id int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const points = `
        UPDATE users SET total_points = total_points - $2
        WHERE id = (SELECT created_by FROM events WHERE id = $1);
    `
	if _, err := tx.Exec(ctx, points, id, domain.PointsPerEvent); err != nil {
		return fmt.Errorf("revoke event points: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1;`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetEventWithStats returns the event plus its attendee count and the given
// user's registration state.
func (s *Storage) GetEventWithStats(ctx context.Context, eventID, userID int) (*domain.EventWithStats, error) {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE user_id = $2),
               COUNT(*) FILTER (WHERE user_id = $2 AND checked_in)
        FROM event_registrations
        WHERE event_id = $1;
    `

	var total, mine, mineCheckedIn int
	if err := s.pool.QueryRow(ctx, query, eventID, userID).Scan(&total, &mine, &mineCheckedIn); err != nil {
		return nil, err
	}

	state := domain.StateUnregistered
	switch {
	case mineCheckedIn > 0:
		state = domain.StateCheckedIn
	case mine > 0:
		state = domain.StateRegistered
	}

	return &domain.EventWithStats{
		Event:         *event,
		AttendeeCount: total,
		MyState:       state,
	}, nil
}
