package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventdesk/internal/client/nav"
	"github.com/dmitrijs2005/eventdesk/internal/client/views"
)

func (a *App) getStatus() string {
	if a.user != nil {
		return fmt.Sprintf("(%s %s)", a.user.DisplayName(), a.user.RoleName)
	}
	return fmt.Sprintf("(%s)", a.view)
}

// open navigates to v and shows it.
func (a *App) open(ctx context.Context, v nav.View) {
	a.Navigate(v)
	a.render(ctx)
}

// render shows views until no further navigation is requested. A form that
// succeeds or a guard redirect navigates again, so one call may pass through
// several views.
func (a *App) render(ctx context.Context) {
	for a.changed {
		a.changed = false

		var err error
		switch a.view {
		case nav.ViewLanding:
			err = views.RenderLanding(a.out, a.now().Year())
		case nav.ViewLogin:
			err = a.loginForm(ctx)
		case nav.ViewRegister:
			err = a.registerForm(ctx)
		case nav.ViewForgotPassword:
			err = a.forgotPasswordForm(ctx)
		case nav.ViewDashboard:
			err = a.dashboard(ctx)
		}
		if err != nil {
			a.logger.Debug(ctx, "view finished with error", "view", a.view.String(), "error", err)
		}
	}
}

func (a *App) dashboard(ctx context.Context) error {
	u, ok := a.guard.Enter(ctx)
	if !ok {
		return nil
	}
	a.user = u
	return views.RenderDashboard(a.out, *u)
}

func (a *App) Home(ctx context.Context)           { a.open(ctx, nav.ViewLanding) }
func (a *App) Login(ctx context.Context)          { a.open(ctx, nav.ViewLogin) }
func (a *App) Register(ctx context.Context)       { a.open(ctx, nav.ViewRegister) }
func (a *App) ForgotPassword(ctx context.Context) { a.open(ctx, nav.ViewForgotPassword) }
func (a *App) Dashboard(ctx context.Context)      { a.open(ctx, nav.ViewDashboard) }
