package forms

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/client/nav"
	"github.com/dmitrijs2005/eventdesk/internal/client/repositories/session"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
)

const (
	LoginSucceeded     = "Login successful"
	sessionSaveFailure = "Could not save session, please try again."
)

type LoginForm struct {
	form
	client   client.Client
	sessions session.Repository
	nav      nav.Navigator
	logger   logging.Logger
}

func NewLoginForm(c client.Client, sessions session.Repository, n nav.Navigator, logger logging.Logger) *LoginForm {
	return &LoginForm{client: c, sessions: sessions, nav: n, logger: logger}
}

// Submit validates the email and password and, if both are present, logs in.
// On success the session is saved and the dashboard opened.
func (f *LoginForm) Submit(ctx context.Context) error {
	if f.State().Busy() {
		return ErrBusy
	}

	st := f.State()
	in := loginInput{Email: st.Value(FieldEmail), Password: st.Value(FieldPassword)}
	if errs := check(in); errs != nil {
		return f.reject(errs)
	}

	if !f.begin() {
		return ErrBusy
	}
	defer f.end()

	s, err := f.client.Login(ctx, in.Email, in.Password)
	if err != nil {
		f.logger.Info(ctx, "login rejected", "reason", client.Message(err))
		f.update(func(st State) State { return st.withServerError(client.Message(err)) })
		return err
	}

	if err := f.sessions.Save(ctx, *s); err != nil {
		f.logger.Error(ctx, "saving session failed", "error", err)
		f.update(func(st State) State { return st.withServerError(sessionSaveFailure) })
		return fmt.Errorf("save session: %w", err)
	}

	f.logger.Info(ctx, "login accepted", "role", s.User.Role)
	f.update(func(st State) State { return st.withNotice(LoginSucceeded) })
	f.nav.Navigate(nav.ViewDashboard)
	return nil
}
