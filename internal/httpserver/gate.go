package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	authdomain "talentpool/backend/internal/domain/auth"
)

type ctxKeyIdentity struct{}

// authMiddleware is the access gate: it resolves the bearer token to an
// identity before next runs, or answers 401 with a Bearer challenge.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeUnauthorized(w, "Not authenticated")
			return
		}

		identity, err := s.authService.ResolveCurrentIdentity(r.Context(), token)
		if err != nil {
			var rejection *authdomain.RejectionError
			if errors.As(err, &rejection) {
				s.logger.Debug("bearer token rejected",
					"reason", rejection.Reason.String(),
					"path", r.URL.Path,
				)
				writeUnauthorized(w, authdomain.ErrUnauthorized.Error())
				return
			}
			s.internalError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyIdentity{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the identity resolved by the access gate.
func IdentityFromContext(ctx context.Context) (*authdomain.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity{}).(*authdomain.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

func extractBearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
