package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/client/forms"
	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/filex"
)

// maxAvatarBytes bounds the image attached at registration.
const maxAvatarBytes = 5 << 20

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// fieldOrder is the order field errors are printed in.
var fieldOrder = []forms.Field{
	forms.FieldName,
	forms.FieldEmail,
	forms.FieldPassword,
	forms.FieldConfirmPassword,
	forms.FieldRole,
}

func (a *App) prompt(f interface{ Set(forms.Field, string) }, field forms.Field, text string) error {
	v, err := getSimpleText(a.reader, text, a.out)
	if err != nil {
		return err
	}
	f.Set(field, v)
	return nil
}

func (a *App) promptSecret(f interface{ Set(forms.Field, string) }, field forms.Field, text string) error {
	pw, err := getPassword(a.out, text)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	f.Set(field, string(pw))
	return nil
}

// loginForm asks for an email and password and submits them. On success the
// form navigates to the dashboard.
func (a *App) loginForm(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Login ==")
	f := forms.NewLoginForm(a.client, a.sessions, a, a.logger)

	if err := a.prompt(f, forms.FieldEmail, "Email"); err != nil {
		return err
	}
	if err := a.promptSecret(f, forms.FieldPassword, "Password: "); err != nil {
		return err
	}

	err := f.Submit(ctx)
	a.printState(f.State())
	return err
}

// registerForm collects the account details and an optional avatar path.
// On success the form navigates to the login view; no session is created.
func (a *App) registerForm(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Register ==")
	f := forms.NewRegisterForm(a.client, a, a.logger)

	if err := a.prompt(f, forms.FieldName, "Name"); err != nil {
		return err
	}
	if err := a.prompt(f, forms.FieldEmail, "Email"); err != nil {
		return err
	}
	if err := a.promptSecret(f, forms.FieldPassword, "Password: "); err != nil {
		return err
	}
	if err := a.promptSecret(f, forms.FieldConfirmPassword, "Confirm password: "); err != nil {
		return err
	}
	if err := a.prompt(f, forms.FieldRole, fmt.Sprintf("Role %v [%s]", models.SelectableRoles(), models.RoleAttendee)); err != nil {
		return err
	}

	path, err := getSimpleText(a.reader, "Avatar image path (optional)", a.out)
	if err != nil {
		return err
	}
	if path != "" {
		avatar, err := readAvatar(path)
		if err != nil {
			fmt.Fprintf(a.out, "Cannot use avatar: %v\n", err)
			return err
		}
		f.SetAvatar(avatar)
	}

	err = f.Submit(ctx)
	a.printState(f.State())
	return err
}

// forgotPasswordForm asks for an email and requests a reset link. The view
// stays on the form and shows the confirmation.
func (a *App) forgotPasswordForm(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Forgot password ==")
	f := forms.NewForgotPasswordForm(a.client, a.logger)

	if err := a.prompt(f, forms.FieldEmail, "Email"); err != nil {
		return err
	}

	err := f.Submit(ctx)
	a.printState(f.State())
	return err
}

func (a *App) printState(st forms.State) {
	for _, field := range fieldOrder {
		if msg := st.Error(field); msg != "" {
			fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
		}
	}
	if msg := st.ServerError(); msg != "" {
		fmt.Fprintln(a.out, "Error:", msg)
	}
	if msg := st.Notice(); msg != "" {
		fmt.Fprintln(a.out, msg)
	}
}

// Logout clears the stored session and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errors.New("not logged in")
	}
	if err := a.guard.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	a.render(ctx)
	return nil
}

func readAvatar(path string) (*client.Avatar, error) {
	data, err := filex.ReadLimited(path, maxAvatarBytes)
	if err != nil {
		return nil, err
	}
	return &client.Avatar{Filename: filepath.Base(path), Data: data}, nil
}
