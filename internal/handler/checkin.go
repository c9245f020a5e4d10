package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"campushub/internal/checkin"
	"campushub/internal/domain"
	"campushub/internal/repository/postgres"
	"campushub/internal/utils"

	"github.com/labstack/echo/v4"
)

func SetupCheckinRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/events/:id/checkin", authMiddleware)

	g.POST("", CheckInByCode(storage))
	g.POST("/scan", CheckInByScan(storage))
}

type CodeCheckInRequest struct {
	Code string `json:"code" validate:"required"`
}

type ScanCheckInRequest struct {
	Payload string `json:"payload" validate:"required"`
}

// CheckInResponse reports the outcome of a check-in attempt. A repeated
// check-in is informational, not an error: status is "already_checked_in"
// and checked_in_at carries the original timestamp.
type CheckInResponse struct {
	Status      string               `json:"status"`
	CheckedInAt *time.Time           `json:"checked_in_at"`
	Attendee    *domain.Registration `json:"registration"`
}

const (
	checkInStatusDone    = "checked_in"
	checkInStatusAlready = "already_checked_in"
)

// CheckInByCode godoc
// @Summary Check in an attendee by manual code
// @Description Codes match case-insensitively; only the event creator or an admin may verify
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param code body CodeCheckInRequest true "Manual check-in code"
// @Success 200 {object} CheckInResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id}/checkin [post]
func CheckInByCode(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		eventID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
		}

		var req CodeCheckInRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		ctx := c.Request().Context()

		event, err := storage.GetEventByID(ctx, eventID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}
		if !canModerate(c, event.CreatedBy) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": utils.ErrForbidden.Error()})
		}

		reg, err := storage.GetRegistrationByCode(ctx, checkin.NormalizeCode(req.Code))
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "invalid check-in code"})
		}

		return completeCheckIn(c, storage, reg, eventID)
	}
}

// CheckInByScan godoc
// @Summary Check in an attendee by scanned QR payload
// @Description Rejects payloads from a different event; only the event creator or an admin may verify
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param payload body ScanCheckInRequest true "Scanned QR payload"
// @Success 200 {object} CheckInResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id}/checkin/scan [post]
func CheckInByScan(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		eventID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
		}

		var req ScanCheckInRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		payload, err := checkin.DecodeQRPayload(req.Payload)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid qr payload"})
		}

		if payload.EventID != eventID {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": domain.ErrWrongEvent.Error()})
		}

		ctx := c.Request().Context()

		event, err := storage.GetEventByID(ctx, eventID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}
		if !canModerate(c, event.CreatedBy) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": utils.ErrForbidden.Error()})
		}

		reg, err := storage.GetRegistrationByCredential(ctx, payload.RegistrationID, payload.QRCode)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "registration not found"})
		}

		return completeCheckIn(c, storage, reg, eventID)
	}
}

func completeCheckIn(c echo.Context, storage *postgres.Storage, reg *domain.Registration, eventID int) error {
	if reg.EventID != eventID {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": domain.ErrWrongEvent.Error()})
	}

	updated, err := storage.CheckInRegistration(c.Request().Context(), reg.ID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			return c.JSON(http.StatusOK, CheckInResponse{
				Status:      checkInStatusAlready,
				CheckedInAt: updated.CheckedInAt,
				Attendee:    updated,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to check in"})
	}

	return c.JSON(http.StatusOK, CheckInResponse{
		Status:      checkInStatusDone,
		CheckedInAt: updated.CheckedInAt,
		Attendee:    updated,
	})
}
