package postgres

import (
	"context"
	"fmt"

	"campushub/internal/domain"

	"github.com/jackc/pgx/v5"
)

const appColumns = "id, title, description, tags, created_by, created_at"

func scanApp(row pgx.Row, a *domain.StudentApp) error {
	return row.Scan(&a.ID, &a.Title, &a.Description, &a.Tags, &a.CreatedBy, &a.CreatedAt)
}

func (s *Storage) CreateApp(ctx context.Context, createdBy int, req *domain.CreateAppRequest) (*domain.StudentApp, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	const query = `
        INSERT INTO student_apps (title, description, tags, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + appColumns + `;
    `

	var app domain.StudentApp
	if err := scanApp(tx.QueryRow(ctx, query, req.Title, req.Description, tags, createdBy), &app); err != nil {
		return nil, err
	}

	const points = `UPDATE users SET total_points = total_points + $2 WHERE id = $1;`
	if _, err := tx.Exec(ctx, points, createdBy, domain.PointsPerApp); err != nil {
		return nil, fmt.Errorf("award app points: %w", err)
	}

	return &app, tx.Commit(ctx)
}

func (s *Storage) GetAppByID(ctx context.Context, id int) (*domain.StudentApp, error) {
	const query = `SELECT ` + appColumns + ` FROM student_apps WHERE id = $1;`

	var app domain.StudentApp
	err := scanApp(s.pool.QueryRow(ctx, query, id), &app)

	return &app, err
}

func (s *Storage) ListApps(ctx context.Context, tag string, limit int) ([]domain.StudentApp, error) {
	query := `SELECT ` + appColumns + ` FROM student_apps`
	args := []any{limit}
	if tag != "" {
		query += ` WHERE $2 = ANY(tags)`
		args = append(args, tag)
	}
	query += ` ORDER BY created_at DESC LIMIT $1;`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var apps []domain.StudentApp
	for rows.Next() {
		var app domain.StudentApp
		if err := scanApp(rows, &app); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

func (s *Storage) UpdateApp(ctx context.Context, id int, req *domain.UpdateAppRequest) (*domain.StudentApp, error) {
	const query = `
        UPDATE student_apps
        SET title       = COALESCE($2, title),
            description = COALESCE($3, description),
            tags        = COALESCE($4, tags)
        WHERE id = $1
        RETURNING ` + appColumns + `;
    `

	var app domain.StudentApp
	err := scanApp(s.pool.QueryRow(ctx, query, id, req.Title, req.Description, req.Tags), &app)

	return &app, err
}

func (s *Storage) DeleteApp(ctx context.Context, id int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const points = `
        UPDATE users SET total_points = total_points - $2
        WHERE id = (SELECT created_by FROM student_apps WHERE id = $1);
    `
	if _, err := tx.Exec(ctx, points, id, domain.PointsPerApp); err != nil {
		return fmt.Errorf("revoke app points: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM student_apps WHERE id = $1;`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Storage) GetAppWithStats(ctx context.Context, appID, userID int) (*domain.AppWithStats, error) {
	app, err := s.GetAppByID(ctx, appID)
	if err != nil {
		return nil, err
	}

	const query = `
        SELECT
            (SELECT COUNT(*) FROM app_likes WHERE app_id = $1),
            (SELECT COUNT(*) FROM app_comments WHERE app_id = $1),
            (SELECT AVG(rating)::float8 FROM app_ratings WHERE app_id = $1),
            (SELECT EXISTS (SELECT 1 FROM app_likes WHERE app_id = $1 AND user_id = $2)),
            (SELECT rating FROM app_ratings WHERE app_id = $1 AND user_id = $2);
    `

	stats := domain.AppWithStats{StudentApp: *app}
	err = s.pool.QueryRow(ctx, query, appID, userID).Scan(
		&stats.LikeCount, &stats.CommentCount, &stats.AverageRating,
		&stats.Liked, &stats.MyRating,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// LikeApp records a like and returns the confirmed count. Liking twice is
// benign and leaves the count unchanged.
func (s *Storage) LikeApp(ctx context.Context, appID, userID int) (int, error) {
	const query = `
        INSERT INTO app_likes (app_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (app_id, user_id) DO NOTHING;
    `
	if _, err := s.pool.Exec(ctx, query, appID, userID); err != nil {
		return 0, err
	}
	return s.countLikes(ctx, appID)
}

// UnlikeApp removes a like if present and returns the confirmed count.
func (s *Storage) UnlikeApp(ctx context.Context, appID, userID int) (int, error) {
	const query = `DELETE FROM app_likes WHERE app_id = $1 AND user_id = $2;`
	if _, err := s.pool.Exec(ctx, query, appID, userID); err != nil {
		return 0, err
	}
	return s.countLikes(ctx, appID)
}

func (s *Storage) countLikes(ctx context.Context, appID int) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM app_likes WHERE app_id = $1;`, appID).Scan(&count)
	return count, err
}

func (s *Storage) CreateComment(ctx context.Context, appID, userID int, content string) (*domain.AppComment, error) {
	const query = `
        INSERT INTO app_comments (app_id, user_id, content)
        VALUES ($1, $2, $3)
        RETURNING id, app_id, user_id,
                  (SELECT username FROM users WHERE id = $2),
                  content, created_at;
    `

	var c domain.AppComment
	err := s.pool.QueryRow(ctx, query, appID, userID, content).Scan(
		&c.ID, &c.AppID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt,
	)

	return &c, err
}

func (s *Storage) ListComments(ctx context.Context, appID int) ([]domain.AppComment, error) {
	const query = `
        SELECT c.id, c.app_id, c.user_id, u.username, c.content, c.created_at
        FROM app_comments c
        JOIN users u ON c.user_id = u.id
        WHERE c.app_id = $1
        ORDER BY c.created_at;
    `

	rows, err := s.pool.Query(ctx, query, appID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var comments []domain.AppComment
	for rows.Next() {
		var c domain.AppComment
		err := rows.Scan(&c.ID, &c.AppID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

// RateApp upserts the user's rating: one row per (app, user), rating twice
// overwrites.
func (s *Storage) RateApp(ctx context.Context, appID, userID, rating int) error {
	const query = `
        INSERT INTO app_ratings (app_id, user_id, rating)
        VALUES ($1, $2, $3)
        ON CONFLICT (app_id, user_id)
        DO UPDATE SET rating = EXCLUDED.rating, updated_at = now();
    `
	_, err := s.pool.Exec(ctx, query, appID, userID, rating)
	return err
}

func (s *Storage) ReportApp(ctx context.Context, appID, userID int, reason string) (*domain.AppReport, error) {
	const query = `
        INSERT INTO app_reports (app_id, user_id, reason)
        VALUES ($1, $2, $3)
        RETURNING id, app_id, user_id, reason, created_at;
    `

	var r domain.AppReport
	err := s.pool.QueryRow(ctx, query, appID, userID, reason).Scan(
		&r.ID, &r.AppID, &r.UserID, &r.Reason, &r.CreatedAt,
	)

	return &r, err
}

func (s *Storage) ListReports(ctx context.Context) ([]domain.ReportDetail, error) {
	const query = `
        SELECT r.id, r.app_id, r.user_id, r.reason, r.created_at,
               a.title, u.username
        FROM app_reports r
        JOIN student_apps a ON r.app_id = a.id
        JOIN users u ON r.user_id = u.id
        ORDER BY r.created_at DESC;
    `

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var reports []domain.ReportDetail
	for rows.Next() {
		var r domain.ReportDetail
		err := rows.Scan(
			&r.ID, &r.AppID, &r.UserID, &r.Reason, &r.CreatedAt,
			&r.AppTitle, &r.ReporterUsername,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	return reports, rows.Err()
}
