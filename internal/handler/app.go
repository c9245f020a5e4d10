package handler

import (
	"net/http"
	"strconv"

	"campushub/internal/domain"
	"campushub/internal/repository/postgres"
	"campushub/internal/utils"

	"github.com/labstack/echo/v4"
)

func SetupAppRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/apps", authMiddleware)

	g.POST("", CreateApp(storage))
	g.GET("", ListApps(storage))
	g.GET("/:id", GetApp(storage))
	g.PUT("/:id", UpdateApp(storage))
	g.DELETE("/:id", DeleteApp(storage))
	g.POST("/:id/like", LikeApp(storage))
	g.DELETE("/:id/like", UnlikeApp(storage))
	g.POST("/:id/comments", CreateComment(storage))
	g.GET("/:id/comments", ListComments(storage))
	g.PUT("/:id/rating", RateApp(storage))
	g.POST("/:id/report", ReportApp(storage))
}

// CreateApp godoc
// @Summary Publish an app showcase
// @Tags apps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param app body domain.CreateAppRequest true "App details"
// @Success 201 {object} domain.StudentApp
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /apps [post]
func CreateApp(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		var req domain.CreateAppRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		app, err := storage.CreateApp(c.Request().Context(), userID, &req)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create app"})
		}

		return c.JSON(http.StatusCreated, app)
	}
}

// ListApps godoc
// @Summary List published apps
// @Tags apps
// @Produce json
// @Security BearerAuth
// @Param tag query string false "Filter by tag"
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {array} domain.StudentApp
// @Failure 400 {object} map[string]string
// @Router /apps [get]
func ListApps(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := 50
		if raw := c.QueryParam("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			}
			limit = parsed
		}

		apps, err := storage.ListApps(c.Request().Context(), c.QueryParam("tag"), limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch apps"})
		}

		return c.JSON(http.StatusOK, apps)
	}
}

// GetApp godoc
// @Summary Get an app with interaction stats
// @Tags apps
// @Produce json
// @Security BearerAuth
// @Param id path int true "App ID"
// @Success 200 {object} domain.AppWithStats
// @Failure 404 {object} map[string]string
// @Router /apps/{id} [get]
func GetApp(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, _ := c.Get("user_id").(int)

		appID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		}

		app, err := storage.GetAppWithStats(c.Request().Context(), appID, userID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "app not found"})
		}

		return c.JSON(http.StatusOK, app)
	}
}

// UpdateApp godoc
// @Summary Update an app
// @Description Only the creator or an admin may update
// @Tags apps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "App ID"
// @Param app body domain.UpdateAppRequest true "Fields to update"
// @Success 200 {object} domain.StudentApp
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /apps/{id} [put]
func UpdateApp(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		appID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		}

		ctx := c.Request().Context()

		app, err := storage.GetAppByID(ctx, appID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "app not found"})
		}

		if !canModerate(c, app.CreatedBy) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": utils.ErrForbidden.Error()})
		}

		var req domain.UpdateAppRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		updated, err := storage.UpdateApp(ctx, appID, &req)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update app"})
		}

		return c.JSON(http.StatusOK, updated)
	}
}

// DeleteApp godoc
// @Summary Delete an app
// @Description Only the creator or an admin may delete
// @Tags apps
// @Produce json
// @Security BearerAuth
// @Param id path int true "App ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /apps/{id} [delete]
func DeleteApp(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		appID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		}

		ctx := c.Request().Context()

		app, err := storage.GetAppByID(ctx, appID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "app not found"})
		}

		if !canModerate(c, app.CreatedBy) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": utils.ErrForbidden.Error()})
		}

		if err := storage.DeleteApp(ctx, appID); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete app"})
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "app deleted"})
	}
}

// LikeApp godoc
// @Summary Like an app
// @Description Liking twice is benign; the confirmed count is returned
// @Tags apps
// @Produce json
// @Security BearerAuth
// @Param id path int true "App ID"
// @Success 200 {object} domain.LikeStatus
// @Failure 404 {object} map[string]string
// @Router /apps/{id}/like [post]
func LikeApp(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		appID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		}

		ctx := c.Request().Context()

		if _, err := storage.GetAppByID(ctx, appID); err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "app not found"})
		}

		count, err := storage.LikeApp(ctx, appID, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to like app"})
		}

		return c.JSON(http.StatusOK, domain.LikeStatus{Liked: true, LikeCount: count})
	}
}

// UnlikeApp godoc
// @Summary Remove a like
// @Description Unliking when not liked is a no-op; the confirmed count is returned
// @Tags apps
// @Produce json
// @Security BearerAuth
// @Param id path int true "App ID"
// @Success 200 {object} domain.LikeStatus
// @Failure 400 {object} map[string]string
// @Router /apps/{id}/like [delete]
func UnlikeApp(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		appID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		}

		count, err := storage.UnlikeApp(c.Request().Context(), appID, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to unlike app"})
		}

		return c.JSON(http.StatusOK, domain.LikeStatus{Liked: false, LikeCount: count})
	}
}

// CreateComment godoc
// @Summary Comment on an app
// @Tags apps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "App ID"
// @Param comment body domain.CommentRequest true "Comment"
// @Success 201 {object} domain.AppComment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /apps/{id}/comments [post]
func CreateComment(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		appID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		}

		var req domain.CommentRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		ctx := c.Request().Context()

		if _, err := storage.GetAppByID(ctx, appID); err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "app not found"})
		}

		comment, err := storage.CreateComment(ctx, appID, userID, req.Content)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create comment"})
		}

		return c.JSON(http.StatusCreated, comment)
	}
}

// ListComments godoc
// @Summary List an app's comments
// @Tags apps
// @Produce json
// @Security BearerAuth
// @Param id path int true "App ID"
// @Success 200 {array} domain.AppComment
// @Failure 400 {object} map[string]string
// @Router /apps/{id}/comments [get]
func ListComments(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		appID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		}

		comments, err := storage.ListComments(c.Request().Context(), appID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch comments"})
		}

		return c.JSON(http.StatusOK, comments)
	}
}

// RateApp godoc
// @Summary Rate an app
// @Description One rating per user per app; rating again overwrites
// @Tags apps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "App ID"
// @Param rating body domain.RateRequest true "Rating 1-5"
// @Success 200 {object} domain.AppWithStats
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /apps/{id}/rating [put]
func RateApp(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		appID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		}

		var req domain.RateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		ctx := c.Request().Context()

		if _, err := storage.GetAppByID(ctx, appID); err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "app not found"})
		}

		if err := storage.RateApp(ctx, appID, userID, req.Rating); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to rate app"})
		}

		app, err := storage.GetAppWithStats(ctx, appID, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch app"})
		}

		return c.JSON(http.StatusOK, app)
	}
}

// ReportApp godoc
// @Summary Report an app
// @Tags apps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "App ID"
// @Param report body domain.ReportRequest true "Report reason"
// @Success 201 {object} domain.AppReport
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /apps/{id}/report [post]
func ReportApp(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		appID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid app id"})
		}

		var req domain.ReportRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		ctx := c.Request().Context()

		if _, err := storage.GetAppByID(ctx, appID); err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "app not found"})
		}

		report, err := storage.ReportApp(ctx, appID, userID, req.Reason)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to report app"})
		}

		return c.JSON(http.StatusCreated, report)
	}
}
