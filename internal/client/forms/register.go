package forms

import (
	"context"

	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/client/nav"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
)

const RegisterSucceeded = "User created successfully! Please login."

type RegisterForm struct {
	form
	client client.Client
	nav    nav.Navigator
	logger logging.Logger

	avatar *client.Avatar
}

func NewRegisterForm(c client.Client, n nav.Navigator, logger logging.Logger) *RegisterForm {
	f := &RegisterForm{client: c, nav: n, logger: logger}
	f.Set(FieldRole, models.RoleAttendee.String())
	return f
}

// SetAvatar attaches an image to send with the registration; nil removes it.
func (f *RegisterForm) SetAvatar(a *client.Avatar) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.avatar = a
}

func (f *RegisterForm) Avatar() *client.Avatar {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.avatar
}

// Submit validates every field and registers the account. Registration does
// not sign the user in: success navigates to the login view.
func (f *RegisterForm) Submit(ctx context.Context) error {
	if f.State().Busy() {
		return ErrBusy
	}

	st := f.State()
	in := registerInput{
		Name:            st.Value(FieldName),
		Email:           st.Value(FieldEmail),
		Password:        st.Value(FieldPassword),
		ConfirmPassword: st.Value(FieldConfirmPassword),
	}
	errs := check(in)
	role, ok := models.ParseSelectableRole(st.Value(FieldRole))
	if !ok {
		if errs == nil {
			errs = make(map[Field]string)
		}
		errs[FieldRole] = "Role must be attendee or organizer"
	}
	if errs != nil {
		return f.reject(errs)
	}

	if !f.begin() {
		return ErrBusy
	}
	defer f.end()

	req := client.RegisterRequest{
		Name:            in.Name,
		Email:           in.Email,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		Role:            role,
	}
	if _, err := f.client.Register(ctx, req, f.Avatar()); err != nil {
		f.logger.Info(ctx, "registration rejected", "reason", client.Message(err))
		f.update(func(s State) State { return s.withServerError(client.Message(err)) })
		return err
	}

	f.logger.Info(ctx, "registration accepted", "role", role)
	f.update(func(s State) State { return s.withNotice(RegisterSucceeded) })
	f.nav.Navigate(nav.ViewLogin)
	return nil
}
