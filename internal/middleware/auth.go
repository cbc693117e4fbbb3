package middleware

import (
	"errors"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kingjj-tech/Trackporter/internal/domain"
	"github.com/kingjj-tech/Trackporter/internal/models"
)

// PrincipalKey is the echo context key carrying the authenticated principal.
const PrincipalKey = "principal"

// RequireAuth verifies the Bearer ID token with Firebase and resolves it to
// a users row. The row's role is authoritative; the token only proves
// identity.
func RequireAuth(authClient *auth.Client, db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if authClient == nil {
				return domain.AuthenticationError{Msg: "authentication not configured"}
			}

			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return domain.AuthenticationError{Msg: "missing authorization header"}
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header || tokenString == "" {
				return domain.AuthenticationError{Msg: "invalid authorization format"}
			}

			decoded, err := authClient.VerifyIDToken(c.Request().Context(), tokenString)
			if err != nil {
				return domain.AuthenticationError{Msg: "invalid token"}
			}

			var user models.User
			err = db.WithContext(c.Request().Context()).
				Where("firebase_uid = ?", decoded.UID).
				First(&user).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.AuthenticationError{Msg: "unknown user"}
				}
				return domain.PersistenceError{Op: "load principal", Err: err}
			}

			c.Set(PrincipalKey, domain.Principal{ID: user.ID, Role: user.Role})
			return next(c)
		}
	}
}
