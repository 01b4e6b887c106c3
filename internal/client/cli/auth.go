package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/drivequiz/internal/client/guard"
	"github.com/dmitrijs2005/drivequiz/internal/client/tokeninfo"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	now           = time.Now
)

// Register prompts for email, username and password, creates the account
// and logs in with it.
func (a *App) Register(ctx context.Context, _ []string) error {
	a.navigate(guard.ViewRegister)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	user, err := a.session.Register(ctx, email, username, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName())
	a.afterLogin()
	return nil
}

// Login prompts for the password (and the email unless given) and logs in.
// On success the user is taken back to the view that required the login.
func (a *App) Login(ctx context.Context, args []string) error {
	a.navigate(guard.ViewLogin)

	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		return err
	}

	user, _ := a.session.CurrentUser()
	fmt.Fprintf(a.out, "Logged in as %s.\n", user.DisplayName())
	a.afterLogin()
	return nil
}

// Logout forgets the session and the quiz in progress.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.engine.Cancel()
	a.bg.Wait()
	if err := a.engine.Reset(); err != nil {
		a.log.Warn(ctx, "resetting quiz on logout failed", "err", err)
	}
	a.session.Logout(ctx)

	a.mu.Lock()
	a.location = guard.ViewLogin
	a.from = ""
	a.mu.Unlock()

	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the identity and what can be read from the stored token.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	if u, ok := a.session.CurrentUser(); ok {
		fmt.Fprintf(a.out, "User:     %s <%s> (id %d)\n", u.DisplayName(), u.Email, u.ID)
		if !u.CreatedAt.IsZero() {
			fmt.Fprintf(a.out, "Joined:   %s\n", humanize.Time(u.CreatedAt.Time))
		}
	} else {
		fmt.Fprintln(a.out, "Not logged in.")
	}

	tok, ok := a.session.Token(ctx)
	if !ok {
		fmt.Fprintln(a.out, "Token:    none stored")
		return nil
	}
	info, err := tokeninfo.Describe(tok)
	if err != nil {
		fmt.Fprintln(a.out, "Token:    stored (opaque)")
		return nil
	}
	t := now()
	switch {
	case info.ExpiresAt.IsZero():
		fmt.Fprintf(a.out, "Token:    subject %s, no expiry\n", info.Subject)
	case info.Expired(t):
		fmt.Fprintf(a.out, "Token:    subject %s, expired %s\n", info.Subject, humanize.RelTime(info.ExpiresAt, t, "ago", "from now"))
	default:
		fmt.Fprintf(a.out, "Token:    subject %s, expires %s\n", info.Subject, humanize.RelTime(info.ExpiresAt, t, "ago", "from now"))
	}
	return nil
}

func (a *App) Go(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a.goTo(args[0])
	return nil
}
