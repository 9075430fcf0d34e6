package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session wraps an opaque bearer token. Its validity is derived from the
// token's exp claim on every read and never stored.
type Session struct {
	Token string
}

func (s Session) Empty() bool {
	return strings.TrimSpace(s.Token) == ""
}

// IsLoggedIn reports whether the token carries an exp claim later than now.
// The signature is not checked: this is a liveness hint for the client only.
func (s Session) IsLoggedIn(now time.Time) bool {
	expiresAt, ok := s.ExpiresAt()
	if !ok {
		return false
	}
	return expiresAt.UnixMilli() > now.UnixMilli()
}

// ExpiresAt decodes the exp claim of the middle segment. The header and
// signature segments are ignored. Any decode failure yields false.
func (s Session) ExpiresAt() (time.Time, bool) {
	if s.Empty() {
		return time.Time{}, false
	}
	if strings.Count(s.Token, ".") != 2 {
		return time.Time{}, false
	}

	parser := jwt.NewParser(jwt.WithPaddingAllowed())
	payload, err := parser.DecodeSegment(strings.Split(s.Token, ".")[1])
	if err != nil {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
