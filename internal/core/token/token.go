// Package token issues and verifies the signed bearer credentials used by
// the API: short-lived access tokens and longer-lived refresh tokens, both
// HS256-signed with a process-wide secret.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Type tags distinguish access tokens from refresh tokens so that a refresh
// token presented as a bearer credential is rejected.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

var ErrExpired = errors.New("token expired")
var ErrInvalid = errors.New("token invalid")

// Claims is the signed payload: the registered subject carries the decimal
// user id, token_type carries the Type tag.
type Claims struct {
	TokenType Type `json:"token_type"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a single secret loaded at startup.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess creates a signed access token for the given user id.
func (m *Manager) IssueAccess(userID int64) (string, error) {
	return m.issue(userID, TypeAccess, m.accessTTL)
}

// IssueRefresh creates a signed refresh token for the given user id.
func (m *Manager) IssueRefresh(userID int64) (string, error) {
	return m.issue(userID, TypeRefresh, m.refreshTTL)
}

func (m *Manager) issue(userID int64, typ Type, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature, expiry, and the type tag, and returns the subject
// user id. Expired tokens fail with ErrExpired; every other failure, wrong
// type included, is ErrInvalid.
func (m *Manager) Verify(raw string, typ Type) (int64, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, ErrInvalid
	}
	if !tkn.Valid || claims.TokenType != typ {
		return 0, ErrInvalid
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalid
	}
	return id, nil
}
