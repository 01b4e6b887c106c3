// Package guard decides whether a view may be shown for the current session.
package guard

import (
	"path"
	"strings"
)

// Views known to the client.
const (
	ViewHome         = "/"
	ViewQuiz         = "/quiz"
	ViewWrongAnswers = "/wrong-answers"
	ViewAnalysis     = "/analysis"
	ViewProfile      = "/profile"
	ViewLogin        = "/login"
	ViewRegister     = "/register"
)

var protected = map[string]bool{
	ViewHome:         true,
	ViewQuiz:         true,
	ViewWrongAnswers: true,
	ViewAnalysis:     true,
	ViewProfile:      true,
}

var public = map[string]bool{
	ViewLogin:    true,
	ViewRegister: true,
}

// Reader is the read-only view of the session the guard needs.
type Reader interface {
	IsAuthenticated() bool
}

// Decision is the outcome of Check. When Allow is false the caller must go
// to Redirect; From is the requested location to return to after login
// (empty when there is nothing worth returning to).
type Decision struct {
	Allow    bool
	Redirect string
	From     string
}

// Check gates location for the given session. Unknown locations send the
// user to the login view.
func Check(s Reader, location string) Decision {
	loc := Normalize(location)
	switch {
	case public[loc]:
		return Decision{Allow: true}
	case !protected[loc]:
		return Decision{Redirect: ViewLogin}
	case s.IsAuthenticated():
		return Decision{Allow: true}
	default:
		return Decision{Redirect: ViewLogin, From: loc}
	}
}

// IsProtected reports whether location requires a logged in user.
func IsProtected(location string) bool {
	return protected[Normalize(location)]
}

// Normalize cleans a location typed by the user: "quiz/" and "/quiz"
// are the same view.
func Normalize(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ViewHome
	}
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	return path.Clean(location)
}
