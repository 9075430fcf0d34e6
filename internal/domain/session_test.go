package domain

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIsLoggedIn(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "empty token", token: "", want: false},
		{name: "not a jwt", token: "abc", want: false},
		{name: "two segments", token: "a.b", want: false},
		{name: "four segments", token: "a.b.c.d", want: false},
		{name: "middle segment not base64", token: "h.!!!.s", want: false},
		{name: "middle segment not json", token: "h." + base64.RawURLEncoding.EncodeToString([]byte("nope")) + ".s", want: false},
		{name: "missing exp", token: fakeJWT(`{"sub":"u-1"}`), want: false},
		{name: "string exp", token: fakeJWT(`{"exp":"tomorrow"}`), want: false},
		{name: "expired one second ago", token: fakeJWT(fmt.Sprintf(`{"exp":%d}`, now.Add(-time.Second).Unix())), want: false},
		{name: "expires exactly now", token: fakeJWT(fmt.Sprintf(`{"exp":%d}`, now.Unix())), want: false},
		{name: "valid for an hour", token: fakeJWT(fmt.Sprintf(`{"exp":%d}`, now.Add(time.Hour).Unix())), want: true},
		{name: "padded payload", token: paddedJWT(fmt.Sprintf(`{"exp":%d,"s":"x"}`, now.Add(time.Hour).Unix())), want: true},
		{name: "header is ignored", token: "garbage." + base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"exp":%d}`, now.Add(time.Hour).Unix()))) + ".", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Session{Token: tt.token}.IsLoggedIn(now))
		})
	}
}

func TestSessionExpiresAt(t *testing.T) {
	exp := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)

	got, ok := Session{Token: fakeJWT(fmt.Sprintf(`{"exp":%d}`, exp.Unix()))}.ExpiresAt()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = Session{}.ExpiresAt()
	assert.False(t, ok)
}

func fakeJWT(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + ".sig"
}

func paddedJWT(payload string) string {
	header := base64.URLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.URLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + ".sig"
}
