package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/JonnyWalker81/tempo/internal/apierror"
	"github.com/JonnyWalker81/tempo/internal/logger"
	"github.com/JonnyWalker81/tempo/pkg/supabase"
)

// UserIDKey is the gin context key holding the authenticated user id
const UserIDKey = "user_id"

// TokenVerifier resolves an access token to its user. *supabase.Client
// implements it.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*supabase.User, error)
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Auth verifies bearer tokens. With a secret the token is checked locally
// as HS256; otherwise it goes to verifier. Either may be nil, not both.
func Auth(secret []byte, verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Ctx(c.Request.Context())

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			log.Debug("authentication failed: missing or malformed authorization header")
			apierror.AbortWithProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		var (
			userID string
			err    error
		)
		switch {
		case len(secret) > 0:
			userID, err = verifyLocal(token, secret)
		case verifier != nil:
			var user *supabase.User
			user, err = verifier.VerifyToken(c.Request.Context(), token)
			if err == nil {
				userID = user.ID
			}
		default:
			err = errors.New("no token verifier configured")
		}
		if err == nil && userID == "" {
			err = errors.New("token has no subject")
		}
		if err != nil {
			log.Warn("authentication failed: token verification error", logger.Err(err))
			apierror.AbortWithProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), userID))

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func verifyLocal(token string, secret []byte) (string, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	return claims.Subject, nil
}
