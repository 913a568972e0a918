package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gudangpro/inventory/internal/domain/auth"
	"github.com/gudangpro/inventory/internal/domain/users"
)

type ctxKey int

const principalKey ctxKey = iota

// UserLookup resolves the token subject against the account store, so a
// deactivated user's still-valid token stops working immediately.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*users.User, error)
}

// PrincipalFrom returns the authenticated principal attached by the
// middleware, or a zero Principal when authentication failed upstream.
func PrincipalFrom(ctx context.Context) auth.Principal {
	p, _ := ctx.Value(principalKey).(auth.Principal)
	return p
}

// Authenticate decodes the Bearer token into a Principal. Token issuance
// is external; this boundary only verifies the signature and validates
// the role claim once, then threads the typed Principal through context.
// Requests without a usable token proceed unauthenticated; the services
// reject those with ErrUnauthorized.
func Authenticate(secret []byte, lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if tokenStr == "" || tokenStr == r.Header.Get("Authorization") {
				next.ServeHTTP(w, r)
				return
			}

			p, err := decodePrincipal(r.Context(), tokenStr, secret, lookup)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
		})
	}
}

func decodePrincipal(ctx context.Context, tokenStr string, secret []byte, lookup UserLookup) (auth.Principal, error) {
	var zero auth.Principal

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return zero, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return zero, fmt.Errorf("unexpected claims type")
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return zero, fmt.Errorf("bad sub claim %q", sub)
	}
	roleStr, _ := claims["role"].(string)
	role, err := auth.ParseRole(roleStr)
	if err != nil {
		return zero, err
	}

	u, err := lookup.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if !u.Active {
		return zero, fmt.Errorf("user %d inactive", id)
	}

	return auth.Principal{ID: u.ID, Username: u.Username, Name: u.Name, Role: role}, nil
}
