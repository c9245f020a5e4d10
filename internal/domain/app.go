package domain

import "time"

type StudentApp struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Tags        []string  `db:"tags" json:"tags"`
	CreatedBy   int       `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AppWithStats is an app plus its aggregate interaction counts and the
// calling user's own like/rating, so clients render confirmed state instead
// of guessing optimistically.
type AppWithStats struct {
	StudentApp
	LikeCount     int      `json:"like_count"`
	CommentCount  int      `json:"comment_count"`
	AverageRating *float64 `json:"average_rating"`
	Liked         bool     `json:"liked"`
	MyRating      *int     `json:"my_rating"`
}

type AppComment struct {
	ID        int       `db:"id" json:"id"`
	AppID     int       `db:"app_id" json:"app_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type AppReport struct {
	ID        int       `db:"id" json:"id"`
	AppID     int       `db:"app_id" json:"app_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ReportDetail is a report joined with the app and reporter, for moderation.
type ReportDetail struct {
	AppReport
	AppTitle         string `db:"app_title" json:"app_title"`
	ReporterUsername string `db:"reporter_username" json:"reporter_username"`
}

type CreateAppRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

type UpdateAppRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type RateRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type ReportRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// LikeStatus is the confirmed state returned by the like toggle endpoints.
type LikeStatus struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
