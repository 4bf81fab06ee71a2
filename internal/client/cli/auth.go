package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
	"github.com/dmitrijs2005/schooldesk/internal/client/router"
	"github.com/dmitrijs2005/schooldesk/internal/common"
	"golang.org/x/term"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// isTerminal decides whether the password prompt can disable echo.
var isTerminal = term.IsTerminal

var errNotSignedIn = errors.New("not signed in")

// readSecret reads a password without echo on a terminal and as a plain
// line otherwise, so piped input works.
func (a *App) readSecret() ([]byte, error) {
	if isTerminal(int(os.Stdin.Fd())) {
		return getPassword(a.out)
	}
	s, err := getSimpleText(a.reader, "Enter password", a.out)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Register opens the registration page, prompts for email, password and an
// optional role and creates the account. The new account is not signed in;
// on success the location moves to the login page.
func (a *App) Register(ctx context.Context) error {
	a.router.Navigate(ctx, common.PathRegister)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := a.readSecret()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := getSimpleText(a.reader, fmt.Sprintf("Enter role (%s, %s, %s; empty for %s)",
		common.RoleAdmin, common.RoleTeacher, common.RoleStudent, common.DefaultRole), a.out)
	if err != nil {
		return err
	}

	id, err := a.session.Register(ctx, models.RegisterRequest{
		Email:    email,
		Password: string(password),
		Role:     strings.ToLower(role),
	})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Registered %s as %s. Please log in.", id.Email, id.Role))
	a.router.Redirect(common.PathLogin)
	return nil
}

// Login prompts for credentials and signs in. On success the location moves
// to the return target left by a gate, or to the landing page of the role.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := a.readSecret()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	p := a.session.CurrentUser()
	printlnFn(fmt.Sprintf("Signed in as %s (%s)", p.Email, p.EffectiveRole()))
	return a.Open(ctx, router.AfterLogin(a.router.Location(), p.EffectiveRole()))
}

// Logout ends the session and returns to the login page.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotSignedIn
	}
	a.session.Logout(ctx)
	a.router.Redirect(common.PathLogin)
	return nil
}

// WhoAmI prints the signed-in principal.
func (a *App) WhoAmI(ctx context.Context) error {
	p := a.session.CurrentUser()
	if p == nil {
		return errNotSignedIn
	}
	printlnFn(fmt.Sprintf("%s (id %d, role %s)", p.Email, p.ID, p.EffectiveRole()))
	return nil
}

// Reset asks the identity provider to start a password reset.
func (a *App) Reset(ctx context.Context, email string) error {
	msg, err := a.session.ResetPassword(ctx, email)
	if err != nil {
		return err
	}
	printlnFn(msg)
	return nil
}
