package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/avelkon/bucketgate"
)

type identityKey struct{}

// IdentityFrom retrieves the verified identity stored by BearerAuth.
func IdentityFrom(ctx context.Context) (bucketgate.Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(bucketgate.Identity)
	return ident, ok
}

func withIdentity(ctx context.Context, ident bucketgate.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// BearerAuth enforces bearer-token authentication. Requests without a
// token are rejected with 401 before the verifier is ever invoked;
// requests the verifier rejects get 403. On success the verified
// identity is stored in the request context.
//
// verifyTimeout, when positive, bounds the outbound verification call.
func BearerAuth(verifier bucketgate.TokenVerifier, verifyTimeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			ctx := r.Context()
			if verifyTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, verifyTimeout)
				defer cancel()
			}

			ident, err := verifier.Verify(ctx, token)
			if err != nil {
				slog.Info("token verification failed", "error", err)
				WriteError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), ident)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequestLogger logs one line per request with a generated request id.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("request",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
