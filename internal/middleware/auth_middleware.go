package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appAuth "github.com/yigit/campusportal/internal/app/auth"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID  = "userID"
	ContextEmail   = "email"
	ContextProfile = "profile"
)

// AuthMiddleware authenticates sessions and gates routes by role
type AuthMiddleware struct {
	jwtService *auth.JWTService
	authorizer appAuth.Authorizer
	log        zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authorizer appAuth.Authorizer, log zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		authorizer: authorizer,
		log:        log.With().Str("component", "auth_middleware").Logger(),
	}
}

// SessionAuth requires a valid bearer token and stores the user id in the context
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// swagger UI sometimes sends the token as a query parameter
			authHeader = c.Query("token")
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortWithError(c, apperrors.NewCustomError(apperrors.ErrNotAuthenticated, appAuth.MsgNotAuthenticated))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			cause := apperrors.ErrTokenInvalid
			if errors.Is(err, auth.ErrExpiredToken) {
				cause = apperrors.ErrTokenExpired
			}
			m.log.Debug().Err(err).Str("path", c.FullPath()).Msg("Rejected session token")
			abortWithError(c, apperrors.NewCustomError(errors.Join(apperrors.ErrNotAuthenticated, cause), appAuth.MsgNotAuthenticated))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// RequireRoles runs the authorization gate before the handler. No roles
// means any authenticated profile. The caller's profile is stored in the
// context for ownership checks.
func (m *AuthMiddleware) RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := m.authorizer.Authorize(c.Request.Context(), c.GetString(ContextUserID), roles...)
		if err != nil {
			m.log.Warn().
				Str("method", c.Request.Method).
				Str("path", c.FullPath()).
				Str("userID", c.GetString(ContextUserID)).
				Msg("Request denied by authorization gate")
			abortWithError(c, err)
			return
		}

		c.Set(ContextProfile, profile)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or ""
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// CurrentProfile returns the profile stored by RequireRoles
func CurrentProfile(c *gin.Context) *models.Profile {
	v, ok := c.Get(ContextProfile)
	if !ok {
		return nil
	}
	p, _ := v.(*models.Profile)
	return p
}

func abortWithError(c *gin.Context, err error) {
	HandleAPIError(c, err)
	c.Abort()
}
