package postgres

import (
	"context"

	"campushub/internal/domain"
)

// Follow records a directed follow edge. Following twice is benign.
func (s *Storage) Follow(ctx context.Context, followerID, followingID int) error {
	const query = `
        INSERT INTO user_follows (follower_id, following_id)
        VALUES ($1, $2)
        ON CONFLICT (follower_id, following_id) DO NOTHING;
    `
	_, err := s.pool.Exec(ctx, query, followerID, followingID)
	return err
}

// Unfollow removes the edge if present; removing an absent edge is a no-op.
func (s *Storage) Unfollow(ctx context.Context, followerID, followingID int) error {
	const query = `DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2;`
	_, err := s.pool.Exec(ctx, query, followerID, followingID)
	return err
}

func (s *Storage) ListFollowing(ctx context.Context, userID int) ([]domain.UserSummary, error) {
	const query = `
        SELECT u.id, u.username, u.full_name, u.total_points
        FROM user_follows f
        JOIN users u ON f.following_id = u.id
        WHERE f.follower_id = $1
        ORDER BY u.username;
    `
	return s.queryUserSummaries(ctx, query, userID)
}

func (s *Storage) ListFollowers(ctx context.Context, userID int) ([]domain.UserSummary, error) {
	const query = `
        SELECT u.id, u.username, u.full_name, u.total_points
        FROM user_follows f
        JOIN users u ON f.follower_id = u.id
        WHERE f.following_id = $1
        ORDER BY u.username;
    `
	return s.queryUserSummaries(ctx, query, userID)
}

func (s *Storage) queryUserSummaries(ctx context.Context, query string, args ...any) ([]domain.UserSummary, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var users []domain.UserSummary
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.TotalPoints); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
