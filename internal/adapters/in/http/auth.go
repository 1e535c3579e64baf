package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

var (
	ErrTokenRequired   = echo.NewHTTPError(http.StatusUnauthorized, "Authentication token required")
	ErrTokenInvalid    = echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed")
	ErrUserUnavailable = echo.NewHTTPError(http.StatusUnauthorized, "User not found or inactive")
)

// Claims identify the user by the standard subject claim. The role claim is
// informational; the directory is authoritative.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens issued by the account service
// and resolves the caller through the user directory.
type Authenticator struct {
	secret    []byte
	directory ports.UserDirectory
}

func NewAuthenticator(secret string, directory ports.UserDirectory) *Authenticator {
	return &Authenticator{secret: []byte(secret), directory: directory}
}

// Middleware stores the authenticated actor in the echo context. Browsers
// cannot set headers on WebSocket handshakes, so a token query parameter is
// accepted as well.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				token = c.QueryParam("token")
			}
			if token == "" {
				return ErrTokenRequired
			}

			who, err := a.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(actorKey, who)
			return next(c)
		}
	}
}

func (a *Authenticator) Authenticate(ctx context.Context, token string) (actor.Actor, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return actor.Actor{}, ErrTokenInvalid
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, ErrTokenInvalid
	}

	user, err := a.directory.FindByID(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return actor.Actor{}, ErrUserUnavailable
	}
	if err != nil {
		return actor.Actor{}, err
	}
	if !user.IsActive {
		return actor.Actor{}, ErrUserUnavailable
	}

	return actor.New(user.ID, user.Role)
}

// IssueToken signs a token for userID. The service never issues tokens to
// clients; it is used by the token command and by tests.
func IssueToken(secret string, userID kernel.UUID, role actor.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// actorFrom returns the actor stored by the middleware. Routes that call it
// are always mounted behind Middleware.
func actorFrom(c echo.Context) actor.Actor {
	a, _ := c.Get(actorKey).(actor.Actor)
	return a
}
