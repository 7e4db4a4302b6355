package jwt

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	tokenTypeSSE = "sse"
	claimType    = "type"
)

var ErrInvalidSubject = errors.New("token has no subject")

type Service interface {
	// JWTAuth verifies access tokens issued by the auth provider.
	JWTAuth() *jwtauth.JWTAuth
	// Subject returns the provider user id of a verified access token.
	Subject(token jwt.Token) (string, error)
	// GenerateAccessToken mints a provider-shaped access token, for tests and local tooling.
	GenerateAccessToken(userID string, email string, ttl time.Duration) (token string, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
}

type JWTService struct {
	tokenAuth   *jwtauth.JWTAuth
	sseTokenTTL time.Duration
	now         func() time.Time
}

func NewJWTService(secretKey string, sseTokenTTL time.Duration) Service {
	if sseTokenTTL <= 0 {
		sseTokenTTL = 5 * time.Minute
	}
	return &JWTService{
		tokenAuth:   jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		sseTokenTTL: sseTokenTTL,
		now:         time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// Subject rejects SSE tokens so they cannot be replayed against the API.
func (j *JWTService) Subject(token jwt.Token) (string, error) {
	if tokenType, ok := token.Get(claimType); ok && tokenType == tokenTypeSSE {
		return "", jwt.ErrInvalidJWT()
	}
	if token.Subject() == "" {
		return "", ErrInvalidSubject
	}
	return token.Subject(), nil
}

func (j *JWTService) GenerateAccessToken(userID string, email string, ttl time.Duration) (string, error) {
	now := j.now()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		jwt.SubjectKey:    userID,
		jwt.IssuedAtKey:   now.Unix(),
		jwt.ExpirationKey: now.Add(ttl).Unix(),
		"email":           email,
		"role":            "authenticated",
	})
	return tokenString, err
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(j.sseTokenTTL)

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		jwt.SubjectKey:    userID,
		claimType:         tokenTypeSSE,
		jwt.ExpirationKey: expiresAt.Unix(),
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(j.sseTokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get(claimType)
	if !ok || tokenType != tokenTypeSSE {
		return "", jwt.ErrInvalidJWT()
	}
	if token.Subject() == "" {
		return "", ErrInvalidSubject
	}
	return token.Subject(), nil
}
