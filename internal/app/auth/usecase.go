package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultIssuer   = "wildcraft"
	DefaultTokenTTL = 24 * time.Hour
)

var (
	ErrInvalidRequest = errors.New("invalid auth request")
	ErrInvalidToken   = errors.New("invalid session token")
)

// Claims binds a bearer token to one game session.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type IssueResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

func (t Tokens) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

func (t Tokens) issuer() string {
	if t.Issuer == "" {
		return DefaultIssuer
	}
	return t.Issuer
}

func (t Tokens) Issue(sessionID string) (IssueResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || len(t.Secret) == 0 {
		return IssueResponse{}, ErrInvalidRequest
	}
	ttl := t.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := t.now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer(),
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return IssueResponse{}, fmt.Errorf("sign session token: %w", err)
	}
	return IssueResponse{Token: signed, ExpiresAt: exp}, nil
}

// Verify returns the session id the token was issued for.
func (t Tokens) Verify(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(t.Secret) == 0 {
		return "", ErrInvalidRequest
	}
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (any, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer()),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
