package forms

import (
	"context"

	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
)

type ForgotPasswordForm struct {
	form
	client client.Client
	logger logging.Logger
}

func NewForgotPasswordForm(c client.Client, logger logging.Logger) *ForgotPasswordForm {
	return &ForgotPasswordForm{client: c, logger: logger}
}

// Submit requests a reset link. The only local rule is that the email is
// present. The confirmation is shown in place; there is no navigation.
func (f *ForgotPasswordForm) Submit(ctx context.Context) error {
	if f.State().Busy() {
		return ErrBusy
	}

	in := resetInput{Email: f.State().Value(FieldEmail)}
	if errs := check(in); errs != nil {
		return f.reject(errs)
	}

	if !f.begin() {
		return ErrBusy
	}
	defer f.end()

	msg, err := f.client.RequestPasswordReset(ctx, in.Email)
	if err != nil {
		f.logger.Info(ctx, "password reset rejected", "reason", client.Message(err))
		f.update(func(s State) State { return s.withServerError(client.Message(err)) })
		return err
	}

	f.update(func(s State) State { return s.withNotice(msg) })
	return nil
}
