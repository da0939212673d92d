package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the verified caller attached to the request context.
type Identity struct {
	UserID string
	Email  string
}

// IdentityFromContext returns the identity stored by the auth middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// tokenFromHeader reads the raw token; a "Bearer " prefix is tolerated.
func tokenFromHeader(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get(common.AccessTokenHeaderName))
	if len(v) >= len(common.BearerPrefix) && strings.EqualFold(v[:len(common.BearerPrefix)], common.BearerPrefix) {
		v = strings.TrimSpace(v[len(common.BearerPrefix):])
	}
	return v
}

// authenticate answers 403 when no token is sent and 401 when it does not
// verify.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromHeader(r)
		if token == "" {
			s.fail(w, r, http.StatusForbidden, msgNoToken)
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, common.ErrNoTokenProvided) {
				s.fail(w, r, http.StatusForbidden, msgNoToken)
				return
			}
			s.logger.Debug(r.Context(), "token rejected", "error", err)
			s.fail(w, r, http.StatusUnauthorized, msgBadToken)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, Identity{UserID: claims.UserID, Email: claims.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireOwner rejects requests whose {userId} differs from the token identity.
func (s *Server) requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok || chi.URLParam(r, "userId") != id.UserID {
			s.fail(w, r, http.StatusForbidden, msgAccessDenied)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with its status and duration.
func requestLogger(logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

var _ TokenVerifier = (*auth.Tokens)(nil)
