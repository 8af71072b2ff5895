package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"COURSEHUB_BACK-END/internal/config"
	"COURSEHUB_BACK-END/internal/utils"
)

type contextKey string

const claimsKey contextKey = "jwt_claims"

// JWTClaims represents the claims in the JWT token
type JWTClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given user
func GenerateToken(userID int64, email string, cfg *config.JWTConfig) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, cfg *config.JWTConfig) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid && claims.UserID > 0 {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

var errMissingHeader = errors.New("authorization header required")

func bearerClaims(r *http.Request, cfg *config.JWTConfig) (*JWTClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingHeader
	}

	// Extract token from "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
		return nil, errors.New("invalid authorization header format")
	}
	return ValidateToken(tokenParts[1], cfg)
}

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(next http.HandlerFunc, cfg *config.JWTConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := bearerClaims(r, cfg)
		if err != nil {
			unauthorized(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

// OptionalAuth attaches claims when a bearer token is sent. A malformed or
// expired token is still rejected; a missing one is not.
func OptionalAuth(next http.HandlerFunc, cfg *config.JWTConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := bearerClaims(r, cfg)
		switch {
		case errors.Is(err, errMissingHeader):
			next.ServeHTTP(w, r)
		case err != nil:
			unauthorized(w, err)
		default:
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		}
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	msg := "Invalid token"
	if errors.Is(err, errMissingHeader) {
		msg = "Authorization header required"
	} else if errors.Is(err, jwt.ErrTokenExpired) {
		msg = "Token expired"
	}
	utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", msg)
}

// WithClaims stores claims on ctx
func WithClaims(ctx context.Context, claims *JWTClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims set by AuthMiddleware or OptionalAuth
func ClaimsFromContext(ctx context.Context) (*JWTClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*JWTClaims)
	return claims, ok && claims != nil
}
