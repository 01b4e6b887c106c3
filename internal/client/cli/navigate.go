package cli

import (
	"fmt"

	"github.com/dmitrijs2005/drivequiz/internal/client/client"
	"github.com/dmitrijs2005/drivequiz/internal/client/guard"
)

const msgSessionExpired = "Your session has expired, please log in again."

// Location is the current view.
func (a *App) Location() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

// navigate moves to location through the route guard. It reports whether
// the view was entered; on refusal the app is at the redirect target and
// remembers where the user wanted to go.
func (a *App) navigate(location string) bool {
	d := guard.Check(a.session, location)

	a.mu.Lock()
	defer a.mu.Unlock()
	if d.Allow {
		a.location = guard.Normalize(location)
		return true
	}
	a.location = d.Redirect
	if d.From != "" {
		a.from = d.From
	}
	return false
}

// afterLogin returns to the view that sent the user to /login, or home.
func (a *App) afterLogin() {
	a.mu.Lock()
	target := a.from
	a.from = ""
	a.mu.Unlock()

	if target == "" {
		target = guard.ViewHome
	}
	a.navigate(target)
}

// onUnauthorized runs after the session has dropped the identity. It may be
// called from any goroutine that issued a request.
func (a *App) onUnauthorized(ev client.UnauthorizedEvent) {
	a.mu.Lock()
	wasAt := a.location
	if guard.IsProtected(wasAt) {
		a.from = wasAt
	}
	a.location = guard.ViewLogin
	a.mu.Unlock()

	if wasAt == guard.ViewLogin || wasAt == guard.ViewRegister {
		return
	}
	a.mu.Lock()
	a.expiredNotice = true
	a.mu.Unlock()
	fmt.Fprintln(a.out, msgSessionExpired)
}

func (a *App) consumeExpiredNotice() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.expiredNotice
	a.expiredNotice = false
	return n
}

// goTo is the "go <location>" command.
func (a *App) goTo(location string) {
	if a.navigate(location) {
		return
	}
	if a.Location() == guard.ViewLogin && guard.IsProtected(location) {
		fmt.Fprintln(a.out, "Please log in first.")
		return
	}
	fmt.Fprintf(a.out, "Unknown location %q.\n", location)
}
