package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Potism/studiomain/internal/domain"
)

// ErrMalformedToken reports a session cookie that could not be decoded into
// a claims record. Callers treat it as "unauthenticated", never as a crash.
var ErrMalformedToken = errors.New("malformed session token")

// SessionClaims is the fact set embedded in a session cookie. IssuedAt is
// epoch milliseconds; the server re-derives session age from it on every
// request regardless of the cookie's own max-age.
type SessionClaims struct {
	UserID   string      `json:"userId"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
	IssuedAt int64       `json:"timestamp"`
}

// TokenManager encodes and decodes session cookies. New sessions are signed
// HS256 JWTs carrying SessionClaims; when allowLegacy is set, decode also
// accepts the unsigned base64 format used before signing was introduced.
type TokenManager struct {
	secret      []byte
	allowLegacy bool
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, allowLegacy bool) *TokenManager {
	return &TokenManager{secret: []byte(secret), allowLegacy: allowLegacy}
}

type jwtSessionClaims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IssuedAt int64  `json:"timestamp"`
	jwt.RegisteredClaims
}

// Encode signs a session token for the given claims.
func (tm *TokenManager) Encode(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtSessionClaims{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Name:     claims.Name,
		Role:     string(claims.Role),
		IssuedAt: claims.IssuedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  claims.UserID,
			IssuedAt: jwt.NewNumericDate(time.UnixMilli(claims.IssuedAt)),
		},
	})
	return token.SignedString(tm.secret)
}

// Decode reverses Encode. It never panics; any undecodable or incomplete
// token yields ErrMalformedToken. Expiry and role are deliberately not
// checked here; that is the gate's job.
func (tm *TokenManager) Decode(tokenStr string) (*SessionClaims, error) {
	if tokenStr == "" {
		return nil, ErrMalformedToken
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &jwtSessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err == nil {
		jc, ok := parsed.Claims.(*jwtSessionClaims)
		if !ok || !parsed.Valid {
			return nil, ErrMalformedToken
		}
		claims := &SessionClaims{
			UserID:   jc.UserID,
			Email:    jc.Email,
			Name:     jc.Name,
			Role:     domain.Role(jc.Role),
			IssuedAt: jc.IssuedAt,
		}
		if err := validateClaims(claims); err != nil {
			return nil, err
		}
		return claims, nil
	}

	if tm.allowLegacy {
		return DecodeLegacySession(tokenStr)
	}
	return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
}

// EncodeLegacySession serializes claims as unsigned base64(JSON). Anyone
// holding the bytes can mint an equivalent token, which is why new sessions
// are signed; this format survives only for pre-signing cookies.
func EncodeLegacySession(claims SessionClaims) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeLegacySession reverses EncodeLegacySession, rejecting anything that
// is not base64, not JSON, or missing identity fields. A missing role is
// tolerated: the gate refuses those sessions as non-admin rather than
// malformed.
func DecodeLegacySession(tokenStr string) (*SessionClaims, error) {
	raw, err := base64.StdEncoding.DecodeString(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var payload struct {
		UserID    *string `json:"userId"`
		AltUserID *string `json:"id"`
		Email     *string `json:"email"`
		Name      *string `json:"name"`
		Role      *string `json:"role"`
		IssuedAt  *int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	userID := payload.UserID
	if userID == nil {
		userID = payload.AltUserID
	}
	if userID == nil || *userID == "" || payload.Email == nil || *payload.Email == "" || payload.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing required claims", ErrMalformedToken)
	}

	claims := &SessionClaims{
		UserID:   *userID,
		Email:    *payload.Email,
		IssuedAt: *payload.IssuedAt,
	}
	if payload.Name != nil {
		claims.Name = *payload.Name
	}
	if payload.Role != nil {
		claims.Role = domain.Role(*payload.Role)
	}
	return claims, nil
}

func validateClaims(claims *SessionClaims) error {
	if claims.UserID == "" || claims.Email == "" || claims.IssuedAt == 0 {
		return fmt.Errorf("%w: missing required claims", ErrMalformedToken)
	}
	return nil
}
