package handler

import (
	"errors"
	"net/http"
	"strconv"

	"campushub/internal/checkin"
	"campushub/internal/domain"
	"campushub/internal/repository/postgres"
	"campushub/internal/utils"

	"github.com/labstack/echo/v4"
)

func SetupEventRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/events", authMiddleware)

	g.POST("", CreateEvent(storage))
	g.GET("", ListEvents(storage))
	g.GET("/:id", GetEvent(storage))
	g.PUT("/:id", UpdateEvent(storage))
	g.DELETE("/:id", DeleteEvent(storage))
	g.POST("/:id/registrations", RegisterForEvent(storage))
	g.DELETE("/:id/registrations", UnregisterFromEvent(storage))
	g.GET("/:id/registrations", ListEventRegistrations(storage))
}

// RegistrationResponse bundles a new registration with its credentials.
type RegistrationResponse struct {
	Registration *domain.Registration `json:"registration"`
	QRPayload    checkin.QRPayload    `json:"qr_payload"`
	QRImageURL   string               `json:"qr_image_url"`
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body domain.CreateEventRequest true "Event details"
// @Success 201 {object} domain.Event
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /events [post]
func CreateEvent(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		var req domain.CreateEventRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		event, err := storage.CreateEvent(c.Request().Context(), userID, &req)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create event"})
		}

		return c.JSON(http.StatusCreated, event)
	}
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param upcoming query bool false "Only events that have not started yet"
// @Param order query string false "event_date order: asc or desc (default desc)"
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {array} domain.Event
// @Failure 400 {object} map[string]string
// @Router /events [get]
func ListEvents(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		upcoming := c.QueryParam("upcoming") == "true"

		order := c.QueryParam("order")
		if order == "" {
			order = "desc"
		}
		if order != "asc" && order != "desc" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "order must be either 'asc' or 'desc'"})
		}

		limit := 50
		if raw := c.QueryParam("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			}
			limit = parsed
		}

		events, err := storage.ListEvents(c.Request().Context(), upcoming, order, limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch events"})
		}

		return c.JSON(http.StatusOK, events)
	}
}

// GetEvent godoc
// @Summary Get an event
// @Description Event details plus attendee count and the caller's registration state
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} domain.EventWithStats
// @Failure 404 {object} map[string]string
// @Router /events/{id} [get]
func GetEvent(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, _ := c.Get("user_id").(int)

		eventID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
		}

		event, err := storage.GetEventWithStats(c.Request().Context(), eventID, userID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}

		return c.JSON(http.StatusOK, event)
	}
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Only the creator or an admin may update
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param event body domain.UpdateEventRequest true "Fields to update"
// @Success 200 {object} domain.Event
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id} [put]
func UpdateEvent(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		eventID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
		}

		ctx := c.Request().Context()

		event, err := storage.GetEventByID(ctx, eventID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}

		if !canModerate(c, event.CreatedBy) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": utils.ErrForbidden.Error()})
		}

		var req domain.UpdateEventRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		updated, err := storage.UpdateEvent(ctx, eventID, &req)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update event"})
		}

		return c.JSON(http.StatusOK, updated)
	}
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Only the creator or an admin may delete
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id} [delete]
func DeleteEvent(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		eventID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
		}

		ctx := c.Request().Context()

		event, err := storage.GetEventByID(ctx, eventID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}

		if !canModerate(c, event.CreatedBy) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": utils.ErrForbidden.Error()})
		}

		if err := storage.DeleteEvent(ctx, eventID); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete event"})
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "event deleted"})
	}
}

// RegisterForEvent godoc
// @Summary Register for an event
// @Description Creates the registration and issues check-in credentials
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} RegistrationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /events/{id}/registrations [post]
func RegisterForEvent(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		eventID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
		}

		code, err := checkin.NewCode()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to issue check-in code"})
		}

		reg, err := storage.CreateRegistration(c.Request().Context(), eventID, userID, code, checkin.NewQRCredential())
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAlreadyRegistered):
				return c.JSON(http.StatusConflict, map[string]string{"error": "already registered"})
			case errors.Is(err, domain.ErrEventFull):
				return c.JSON(http.StatusConflict, map[string]string{"error": domain.ErrEventFull.Error()})
			case errors.Is(err, utils.ErrNotFound):
				return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
			default:
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to register"})
			}
		}

		payload := checkin.NewQRPayload(reg)
		imageURL, err := checkin.ImageURL(payload)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to build qr image url"})
		}

		return c.JSON(http.StatusCreated, RegistrationResponse{
			Registration: reg,
			QRPayload:    payload,
			QRImageURL:   imageURL,
		})
	}
}

// UnregisterFromEvent godoc
// @Summary Unregister from an event
// @Description Deleting an absent registration is a no-op
// @Tags registrations
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /events/{id}/registrations [delete]
func UnregisterFromEvent(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		eventID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
		}

		if err := storage.DeleteRegistration(c.Request().Context(), eventID, userID); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to unregister"})
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// ListEventRegistrations godoc
// @Summary List an event's attendees
// @Description Only the creator or an admin may view the attendee list
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {array} domain.Attendee
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id}/registrations [get]
func ListEventRegistrations(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		eventID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
		}

		ctx := c.Request().Context()

		event, err := storage.GetEventByID(ctx, eventID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "event not found"})
		}

		if !canModerate(c, event.CreatedBy) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": utils.ErrForbidden.Error()})
		}

		attendees, err := storage.ListRegistrations(ctx, eventID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch registrations"})
		}

		return c.JSON(http.StatusOK, attendees)
	}
}

// canModerate reports whether the caller owns the resource or is an admin.
func canModerate(c echo.Context, ownerID int) bool {
	userID, _ := c.Get("user_id").(int)
	isAdmin, _ := c.Get("is_admin").(bool)
	return isAdmin || userID == ownerID
}
