package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/router"
	"github.com/golang-jwt/jwt/v5"
)

type subjectCtxKey struct{}

// Auth rejects requests without a valid HS256 token signed with key. The token
// is read from the Authorization header, with or without a "Bearer " prefix.
func Auth(key []byte) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
			if rawToken == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				authError("failed to parse jwt", w, r, err)
				return
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				authError("jwt has no subject", w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), subjectCtxKey{}, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authError(msg string, w http.ResponseWriter, r *http.Request, err error) {
	slog.Warn(msg,
		"error", err,
		"method", r.Method,
		"url", r.URL.String(),
		"remote_addr", r.RemoteAddr,
		"request_id", RequestIDFromContext(r.Context()),
	)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// SubjectFromContext returns the authenticated token subject, or "" outside Auth.
func SubjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(subjectCtxKey{}).(string)
	return sub
}
