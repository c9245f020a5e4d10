package handler

import (
	"net/http"
	"strconv"

	"campushub/internal/domain"
	"campushub/internal/repository/postgres"
	"campushub/internal/utils"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/users", authMiddleware)

	g.GET("", ListUsers(storage))
	g.GET("/leaderboard", Leaderboard(storage))
	g.PUT("/me", UpdateMe(storage))
	g.GET("/:id", GetUser(storage))
	g.GET("/:id/points", GetUserPoints(storage))
	g.POST("/:id/follow", FollowUser(storage))
	g.DELETE("/:id/follow", UnfollowUser(storage))
	g.GET("/:id/following", ListFollowing(storage))
	g.GET("/:id/followers", ListFollowers(storage))
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.UserSummary
// @Failure 500 {object} map[string]string
// @Router /users [get]
func ListUsers(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := storage.ListUsers(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch users"})
		}
		return c.JSON(http.StatusOK, users)
	}
}

// GetUser godoc
// @Summary Get user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func GetUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		user, err := storage.GetUserByID(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}

		return c.JSON(http.StatusOK, user)
	}
}

// UpdateMe godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body domain.UpdateUserRequest true "Fields to update"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/me [put]
func UpdateMe(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		var req domain.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		user, err := storage.UpdateUser(c.Request().Context(), userID, &req)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update profile"})
		}

		return c.JSON(http.StatusOK, user)
	}
}

// GetUserPoints godoc
// @Summary Get a user's points breakdown
// @Description Decompose the stored total into app, event and quiz points
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} domain.PointsBreakdown
// @Failure 404 {object} map[string]string
// @Router /users/{id}/points [get]
func GetUserPoints(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		ctx := c.Request().Context()

		user, err := storage.GetUserByID(ctx, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}

		appCount, err := storage.CountAppsByUser(ctx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to count apps"})
		}

		eventCount, err := storage.CountEventsByUser(ctx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to count events"})
		}

		return c.JSON(http.StatusOK, domain.DecomposePoints(user.TotalPoints, appCount, eventCount))
	}
}

// Leaderboard godoc
// @Summary Points leaderboard
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries (default 25)"
// @Success 200 {array} domain.UserSummary
// @Failure 500 {object} map[string]string
// @Router /users/leaderboard [get]
func Leaderboard(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := 25
		if raw := c.QueryParam("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			}
			limit = parsed
		}

		users, err := storage.Leaderboard(c.Request().Context(), limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch leaderboard"})
		}

		return c.JSON(http.StatusOK, users)
	}
}

// FollowUser godoc
// @Summary Follow a user
// @Description Record the follow edge and return the confirmed state
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID to follow"
// @Success 200 {object} domain.FollowStatus
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id}/follow [post]
func FollowUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		followerID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		followingID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		if followerID == followingID {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": domain.ErrSelfFollow.Error()})
		}

		ctx := c.Request().Context()

		if _, err := storage.GetUserByID(ctx, followingID); err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}

		if err := storage.Follow(ctx, followerID, followingID); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to follow user"})
		}

		return c.JSON(http.StatusOK, domain.FollowStatus{Following: true})
	}
}

// UnfollowUser godoc
// @Summary Unfollow a user
// @Description Remove the follow edge; removing an absent edge is a no-op
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID to unfollow"
// @Success 200 {object} domain.FollowStatus
// @Failure 400 {object} map[string]string
// @Router /users/{id}/follow [delete]
func UnfollowUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		followerID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		followingID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		if err := storage.Unfollow(c.Request().Context(), followerID, followingID); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to unfollow user"})
		}

		return c.JSON(http.StatusOK, domain.FollowStatus{Following: false})
	}
}

// ListFollowing godoc
// @Summary List users a user follows
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {array} domain.UserSummary
// @Failure 400 {object} map[string]string
// @Router /users/{id}/following [get]
func ListFollowing(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		users, err := storage.ListFollowing(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch following"})
		}

		return c.JSON(http.StatusOK, users)
	}
}

// ListFollowers godoc
// @Summary List a user's followers
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {array} domain.UserSummary
// @Failure 400 {object} map[string]string
// @Router /users/{id}/followers [get]
func ListFollowers(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		users, err := storage.ListFollowers(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch followers"})
		}

		return c.JSON(http.StatusOK, users)
	}
}
