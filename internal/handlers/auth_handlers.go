package handlers

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
)

// AuthHandler handles account registration against the identity provider.
type AuthHandler struct {
	authClient *auth.Client
	db         *gorm.DB
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authClient *auth.Client, db *gorm.DB) *AuthHandler {
	return &AuthHandler{authClient: authClient, db: db}
}

// Register creates the Firebase account and the matching profile row. The
// role defaults to passenger.
func (h *AuthHandler) Register(c echo.Context) error {
	if h.authClient == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "authentication not configured")
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError{Msg: "malformed request body"}
	}
	if req.Email == "" {
		return domain.ValidationError{Field: "email", Msg: "must not be empty"}
	}
	if len(req.Password) < 6 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.RolePassenger
	}
	if !role.Valid() {
		return domain.ValidationError{Field: "role", Msg: "unknown role"}
	}

	params := (&auth.UserToCreate{}).
		Email(req.Email).
		Password(req.Password).
		EmailVerified(true)
	record, err := h.authClient.CreateUser(c.Request().Context(), params)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := models.User{
		FirebaseUID: record.UID,
		Email:       req.Email,
		Role:        role,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&user).Error; err != nil {
		return domain.PersistenceError{Op: "create user profile", Err: err}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}
