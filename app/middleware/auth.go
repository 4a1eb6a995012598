package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"tabloide-mp/app/httpx"
	"tabloide-mp/authz"
)

// Claims are the JWT claims carried by API tokens. The user id travels in sub.
type Claims struct {
	Role       string `json:"role"`
	CompanyID  int64  `json:"company_id,omitempty"`
	CustomerID int64  `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator turns Bearer tokens into an authz.Actor on the request context
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an Authenticator. With an empty secret every token is rejected.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// IssueToken signs a token for actor valid for ttl
func (a *Authenticator) IssueToken(actor *authz.Actor, ttl time.Duration) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	claims := Claims{
		Role:       string(actor.Role),
		CompanyID:  actor.CompanyID,
		CustomerID: actor.CustomerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(actor.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse validates a token string and returns its actor
func (a *Authenticator) Parse(tokenStr string) (*authz.Actor, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("authentication is not configured")
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	role := authz.Role(claims.Role)
	switch role {
	case authz.RoleAdmin, authz.RoleCompany, authz.RoleCustomer:
	default:
		return nil, fmt.Errorf("invalid role %q in token", claims.Role)
	}

	return &authz.Actor{
		UserID:     userID,
		Role:       role,
		CompanyID:  claims.CompanyID,
		CustomerID: claims.CustomerID,
	}, nil
}

// Middleware attaches the actor to the request context.
// Requests without an Authorization header continue as anonymous, invalid tokens get 401.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			httpx.Message(r.Context(), w, http.StatusUnauthorized, "Invalid token format, must be 'Bearer <token>'")
			return
		}

		actor, err := a.Parse(strings.TrimSpace(tokenStr))
		if err != nil {
			log.Ctx(r.Context()).Debug().Err(err).Msg("🔒 Rejected token")
			httpx.Message(r.Context(), w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := authz.WithActor(r.Context(), actor)
		logger := log.Ctx(ctx).With().Int64("user_id", actor.UserID).Str("role", string(actor.Role)).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(ctx)))
	})
}
