package auth

import (
	"time"

	"github.com/Potism/studiomain/internal/domain"
)

// DefaultSessionMaxAge bounds session lifetime server-side. The cookie
// carries the same max-age as a convenience only.
const DefaultSessionMaxAge = 24 * time.Hour

// RejectReason classifies why a session was refused.
type RejectReason string

const (
	ReasonUnauthenticated RejectReason = "UNAUTHENTICATED"
	ReasonInvalidToken    RejectReason = "INVALID_SESSION"
	ReasonExpired         RejectReason = "SESSION_EXPIRED"
	ReasonForbidden       RejectReason = "FORBIDDEN"
)

// Rejection is the terminal outcome of a failed authorization check. The
// gate never retries or re-authenticates; callers decide whether to
// redirect or answer with a status code.
type Rejection struct {
	Reason  RejectReason
	Message string
}

// Principal is an authorized admin identity extracted from a valid session.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   domain.Role
}

// Gate is the single predicate every privileged operation passes through.
// It is a pure computation over the token and the clock, safe for
// concurrent use.
type Gate struct {
	tokens *TokenManager
	maxAge time.Duration
	now    func() time.Time
}

// NewGate builds a gate over the given codec.
func NewGate(tokens *TokenManager, maxAge time.Duration) *Gate {
	if maxAge <= 0 {
		maxAge = DefaultSessionMaxAge
	}
	return &Gate{tokens: tokens, maxAge: maxAge, now: time.Now}
}

// WithClock overrides the gate's clock. Test hook.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// Authorize checks a raw session token and yields either the admin
// principal or the reason it was refused. Checks run in a fixed order:
// presence, decode, age, role. A session exactly maxAge old still passes;
// one millisecond beyond does not.
func (g *Gate) Authorize(rawToken string) (*Principal, *Rejection) {
	if rawToken == "" {
		return nil, &Rejection{Reason: ReasonUnauthenticated, Message: "no session"}
	}

	claims, err := g.tokens.Decode(rawToken)
	if err != nil {
		return nil, &Rejection{Reason: ReasonInvalidToken, Message: "invalid session"}
	}

	age := g.now().UnixMilli() - claims.IssuedAt
	if age > g.maxAge.Milliseconds() {
		return nil, &Rejection{Reason: ReasonExpired, Message: "session expired"}
	}

	if claims.Role != domain.RoleAdmin {
		return nil, &Rejection{Reason: ReasonForbidden, Message: "admin role required"}
	}

	return &Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}
