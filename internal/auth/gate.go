package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/daniilsolovey/football-news/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const issuer = "football-news"

var (
	ErrMissingToken = errors.New("missing admin token")
	ErrInvalidToken = errors.New("invalid admin token")
	ErrNotAdmin     = errors.New("token subject is not the admin")
)

// Gate admits requests carrying an HS256 token issued to the configured admin.
type Gate struct {
	secret []byte
	admin  string
	cookie string
	ttl    time.Duration
	log    *slog.Logger
}

func NewGate(cfg config.Auth, logger *slog.Logger) *Gate {
	if cfg.Secret == "" {
		logger.Warn("auth secret not set, admin routes will deny all requests")
	}

	return &Gate{
		secret: []byte(cfg.Secret),
		admin:  cfg.Admin,
		cookie: cfg.Cookie,
		ttl:    cfg.TokenTTL.Duration,
		log:    logger,
	}
}

// Issue signs a token for subject. A zero ttl uses the configured lifetime.
func (g *Gate) Issue(subject string, ttl time.Duration) (string, error) {
	if len(g.secret) == 0 {
		return "", fmt.Errorf("sign token: secret not configured")
	}
	if ttl == 0 {
		ttl = g.ttl
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(g.secret)
}

// Verify checks signature, issuer and expiry and returns the token subject
// when it is the admin.
func (g *Gate) Verify(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", ErrMissingToken
	}
	if len(g.secret) == 0 {
		return "", ErrInvalidToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.Subject != g.admin {
		return "", ErrNotAdmin
	}

	return claims.Subject, nil
}

// Require is echo middleware rejecting non-admin requests with 401.
func (g *Gate) Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, err := g.Verify(g.token(c.Request()))
			if err != nil {
				g.log.WarnContext(c.Request().Context(), "admin access denied",
					"error", err, "method", c.Request().Method, "path", c.Path())
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}

			c.Set("admin", subject)
			return next(c)
		}
	}
}

// token reads the bearer header first, then the cookie.
func (g *Gate) token(r *http.Request) string {
	if header := r.Header.Get(echo.HeaderAuthorization); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if g.cookie == "" {
		return ""
	}

	cookie, err := r.Cookie(g.cookie)
	if err != nil {
		return ""
	}

	return cookie.Value
}
