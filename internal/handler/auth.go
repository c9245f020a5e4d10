package handler

import (
	"net/http"

	"campushub/internal/domain"
	"campushub/internal/repository/postgres"
	"campushub/internal/utils"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

func SetupAuthRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	e.POST("/api/auth/register", Register(storage))
	e.POST("/api/auth/login", Login(storage))

	e.GET("/api/auth/session", Session(storage), authMiddleware)
}

// Register godoc
// @Summary Register new student
// @Description Create a new student account
// @Tags auth
// @Accept json
// @Produce json
// @Param student body domain.RegisterRequest true "Registration details"
// @Success 201 {object} domain.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/register [post]
func Register(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.RegisterRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to hash password"})
		}

		user, err := storage.CreateUser(c.Request().Context(), &req, string(hashedPassword))

		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, map[string]string{"error": "username or student id already taken"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create user"})
		}

		token, err := utils.GenerateToken(user.ID, user.Username, user.IsAdmin)

		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate token"})
		}

		return c.JSON(http.StatusCreated, domain.AuthResponse{Token: token, User: *user})
	}
}

// Login godoc
// @Summary Login
// @Description Authenticate a student and return a signed session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Login credentials"
// @Success 200 {object} domain.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func Login(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.LoginRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		user, err := storage.GetUserByUsername(c.Request().Context(), req.Username)

		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
		}

		if user.IsBanned {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "account is banned"})
		}

		token, err := utils.GenerateToken(user.ID, user.Username, user.IsAdmin)

		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate token"})
		}

		return c.JSON(http.StatusOK, domain.AuthResponse{Token: token, User: *user})
	}
}

// Session godoc
// @Summary Get current session
// @Description Re-validate the token against the database and return the current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/session [get]
func Session(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("user_id").(int)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": utils.ErrUnauthorized.Error()})
		}

		user, err := storage.GetUserByID(c.Request().Context(), userID)

		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session user no longer exists"})
		}

		if user.IsBanned {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "account is banned"})
		}

		return c.JSON(http.StatusOK, user)
	}
}
