package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hydrai/telemetry-system/internal/api/metrics"
	"github.com/hydrai/telemetry-system/internal/core/domain"
	"github.com/hydrai/telemetry-system/internal/core/ports"
)

// ContextUserKey is the echo context key under which the resolved user is stored.
const ContextUserKey = "user"

const unauthorizedMsg = "invalid or missing token"

// Auth validates the bearer token and resolves its subject to a live user,
// which is injected into the request context. Missing, malformed, expired
// and forged tokens, as well as tokens for deleted users, all produce the
// same 401 so a caller cannot tell which check failed; the internal cause is
// logged at debug level.
func Auth(tokens ports.TokenValidator, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokensRejectedTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMsg)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokensRejectedTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMsg)
			}

			subject, err := tokens.Validate(parts[1])
			if err != nil {
				metrics.TokensRejectedTotal.WithLabelValues("invalid").Inc()
				log.Debug().Err(err).Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMsg)
			}

			user, err := users.FindByID(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Valid token for a user deleted after issuance.
					metrics.TokensRejectedTotal.WithLabelValues("unknown_subject").Inc()
					log.Debug().Str("subject", subject).Msg("token subject no longer exists")
					return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMsg)
				}
				return err
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}
