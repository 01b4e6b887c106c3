package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type session bool

func (s session) IsAuthenticated() bool { return bool(s) }

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		loggedIn bool
		location string
		want     Decision
	}{
		{"protected, logged in", true, "/quiz", Decision{Allow: true}},
		{"protected, logged out", false, "/quiz", Decision{Redirect: ViewLogin, From: "/quiz"}},
		{"home, logged out", false, "/", Decision{Redirect: ViewLogin, From: "/"}},
		{"analysis, logged out", false, "/analysis", Decision{Redirect: ViewLogin, From: "/analysis"}},
		{"login always allowed", false, "/login", Decision{Allow: true}},
		{"register while logged in", true, "/register", Decision{Allow: true}},
		{"unknown goes to login", true, "/admin", Decision{Redirect: ViewLogin}},
		{"unknown logged out", false, "/nowhere", Decision{Redirect: ViewLogin}},
		{"normalized", false, "wrong-answers/", Decision{Redirect: ViewLogin, From: "/wrong-answers"}},
		{"empty means home", true, "", Decision{Allow: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(session(tt.loggedIn), tt.location))
		})
	}
}

func TestCheck_RecomputedEveryCall(t *testing.T) {
	s := session(true)
	assert.True(t, Check(s, "/profile").Allow)
	s = false
	assert.False(t, Check(s, "/profile").Allow)
}

func TestIsProtected(t *testing.T) {
	assert.True(t, IsProtected("quiz"))
	assert.False(t, IsProtected("/login"))
	assert.False(t, IsProtected("/elsewhere"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "/", Normalize("  "))
	assert.Equal(t, "/profile", Normalize("profile"))
	assert.Equal(t, "/quiz", Normalize("/quiz/"))
	assert.Equal(t, "/quiz", Normalize("/a/../quiz"))
}
