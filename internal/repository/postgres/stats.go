package postgres

import (
	"context"

	"campushub/internal/domain"
)

func (s *Storage) CountAppsByUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM student_apps WHERE created_by = $1;`, userID).Scan(&count)
	return count, err
}

func (s *Storage) CountEventsByUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE created_by = $1;`, userID).Scan(&count)
	return count, err
}

func (s *Storage) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM events),
            (SELECT COUNT(*) FROM student_apps),
            (SELECT COUNT(*) FROM event_registrations),
            (SELECT COUNT(*) FROM event_registrations WHERE checked_in),
            (SELECT COUNT(*) FROM app_reports);
    `

	var st domain.AdminStats
	err := s.pool.QueryRow(ctx, query).Scan(
		&st.Users, &st.Events, &st.Apps, &st.Registrations, &st.CheckIns, &st.Reports,
	)

	return &st, err
}
