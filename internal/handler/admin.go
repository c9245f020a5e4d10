package handler

import (
	"net/http"
	"strconv"

	"campushub/internal/domain"
	"campushub/internal/repository/postgres"
	"campushub/internal/utils"

	"github.com/labstack/echo/v4"
)

func SetupAdminRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware, adminMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/admin", authMiddleware, adminMiddleware)

	g.POST("/users/:id/ban", BanUser(storage))
	g.POST("/users/:id/unban", UnbanUser(storage))
	g.GET("/reports", ListReports(storage))
	g.GET("/stats", GetAdminStats(storage))
}

// BanUser godoc
// @Summary Ban a user
// @Description Flags the account and records a restriction row with the reason
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param ban body domain.BanRequest true "Ban reason"
// @Success 200 {object} domain.UserRestriction
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id}/ban [post]
func BanUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		adminID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		userID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		var req domain.BanRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		ctx := c.Request().Context()

		if _, err := storage.GetUserByID(ctx, userID); err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}

		if err := storage.SetBanned(ctx, userID, true); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to ban user"})
		}

		restriction, err := storage.CreateRestriction(ctx, userID, req.Reason, adminID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to record restriction"})
		}

		return c.JSON(http.StatusOK, restriction)
	}
}

// UnbanUser godoc
// @Summary Unban a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /admin/users/{id}/unban [post]
func UnbanUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		if err := storage.SetBanned(c.Request().Context(), userID, false); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to unban user"})
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "user unbanned"})
	}
}

// ListReports godoc
// @Summary List content reports
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.ReportDetail
// @Failure 500 {object} map[string]string
// @Router /admin/reports [get]
func ListReports(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		reports, err := storage.ListReports(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch reports"})
		}
		return c.JSON(http.StatusOK, reports)
	}
}

// GetAdminStats godoc
// @Summary Platform aggregate counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.AdminStats
// @Failure 500 {object} map[string]string
// @Router /admin/stats [get]
func GetAdminStats(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := storage.GetAdminStats(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch stats"})
		}
		return c.JSON(http.StatusOK, stats)
	}
}
