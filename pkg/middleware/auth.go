package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/muthuvel/santhai/pkg/auth"
	"github.com/muthuvel/santhai/pkg/response"
)

// AuthCookie is the cookie the login endpoint sets; the middleware
// accepts it as an alternative to the Authorization header so both the
// storefront pages and API clients authenticate the same way.
const AuthCookie = "santhai_token"

type userIDKey struct{}
type roleKey struct{}

// Auth requires a valid JWT (bearer header or cookie) and injects the
// user ID and role into the request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// MaybeAuth injects the user when a valid token is present but lets
// anonymous requests through. The storefront uses it so guests can
// browse and keep a session cart.
func MaybeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := claimsFromRequest(r); ok {
			r = r.WithContext(withClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromRequest(r *http.Request) (*auth.Claims, bool) {
	var token string
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimPrefix(h, "Bearer ")
	}
	if token == "" {
		if c, err := r.Cookie(AuthCookie); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return nil, false
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, userIDKey{}, claims.UserID)
	return context.WithValue(ctx, roleKey{}, claims.Role)
}

// UserIDFromCtx returns the authenticated user's ID, if any.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey{}).(uint)
	return id, ok
}

// RoleFromCtx returns the authenticated user's role, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey{}).(string)
	return role, ok
}
