package forms

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/apitest"
	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/client/nav"
	"github.com/dmitrijs2005/eventdesk/internal/client/repositories/session"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv      *apitest.Server
	client   *client.HTTPClient
	sessions *session.MemoryRepository
	nav      *nav.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(srv.URL, client.WithTimeout(2*time.Second))
	require.NoError(t, err)

	return &fixture{
		srv:      srv,
		client:   c,
		sessions: session.NewMemoryRepository(),
		nav:      &nav.Recorder{},
	}
}

// offlineClient points at a server that has already been shut down.
func offlineClient(t *testing.T) *client.HTTPClient {
	t.Helper()
	srv := apitest.NewServer()
	url := srv.URL
	srv.Close()

	c, err := client.NewHTTPClient(url, client.WithTimeout(time.Second))
	require.NoError(t, err)
	return c
}

type failingSessions struct{ session.Repository }

func (failingSessions) Save(context.Context, models.Session) error {
	return errors.New("disk full")
}

// blockingClient holds Login until release is closed.
type blockingClient struct {
	client.Client
	started chan struct{}
	release chan struct{}
}

func (b *blockingClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	close(b.started)
	<-b.release
	return nil, client.ErrNetwork
}

func TestState_WithValueIsCopyOnWrite(t *testing.T) {
	base := State{}.WithValue(FieldEmail, "a@b.com").withErrors(map[Field]string{
		FieldEmail:    "Invalid email",
		FieldPassword: "Password is required",
	})

	next := base.WithValue(FieldEmail, "c@d.com")

	assert.Equal(t, "a@b.com", base.Value(FieldEmail))
	assert.Equal(t, "Invalid email", base.Error(FieldEmail))
	assert.Equal(t, "c@d.com", next.Value(FieldEmail))
	assert.Empty(t, next.Error(FieldEmail))
	assert.Equal(t, "Password is required", next.Error(FieldPassword))
}

func TestState_ErrorsReturnsCopy(t *testing.T) {
	s := State{}.withErrors(map[Field]string{FieldName: "Name is required"})
	errs := s.Errors()
	errs[FieldName] = "changed"
	assert.Equal(t, "Name is required", s.Error(FieldName))
	assert.True(t, s.HasErrors())
	assert.False(t, State{}.HasErrors())
}

func TestLoginForm_Success(t *testing.T) {
	fx := newFixture(t)
	fx.srv.AddUser(apitest.User{
		ID: "u1", FirstName: "Ann", LastName: "Lee",
		Email: "a@b.com", Password: "secret", Role: "organizer",
	})

	f := NewLoginForm(fx.client, fx.sessions, fx.nav, logging.Discard())
	f.Set(FieldEmail, "a@b.com")
	f.Set(FieldPassword, "secret")

	require.NoError(t, f.Submit(context.Background()))

	st := f.State()
	assert.False(t, st.Busy())
	assert.Empty(t, st.ServerError())
	assert.Equal(t, LoginSucceeded, st.Notice())

	s, err := fx.sessions.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "Ann", s.User.FirstName)
	assert.Equal(t, models.RoleOrganizer, s.User.Role)

	last, ok := fx.nav.Last()
	require.True(t, ok)
	assert.Equal(t, nav.ViewDashboard, last)
}

func TestLoginForm_ValidationSkipsNetwork(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     map[Field]string
	}{
		{"both empty", "", "", map[Field]string{FieldEmail: "Email is required", FieldPassword: "Password is required"}},
		{"blank email", "   ", "secret", map[Field]string{FieldEmail: "Email is required"}},
		{"no password", "a@b.com", "", map[Field]string{FieldPassword: "Password is required"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			f := NewLoginForm(fx.client, fx.sessions, fx.nav, logging.Discard())
			f.Set(FieldEmail, tt.email)
			f.Set(FieldPassword, tt.password)

			err := f.Submit(context.Background())
			require.ErrorIs(t, err, ErrInvalid)

			st := f.State()
			assert.Equal(t, tt.want, st.Errors())
			assert.False(t, st.Busy())
			assert.Zero(t, fx.srv.TotalCalls())
			assert.Empty(t, fx.nav.Visited)
			assert.Zero(t, fx.sessions.Len())
		})
	}
}

func TestLoginForm_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    string
	}{
		{"service message", http.StatusUnauthorized, "Invalid email or password", "Invalid email or password"},
		{"fallback", http.StatusInternalServerError, "", client.FallbackLoginMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			fx.srv.Reject(apitest.LoginPath, tt.status, tt.message)

			f := NewLoginForm(fx.client, fx.sessions, fx.nav, logging.Discard())
			f.Set(FieldEmail, "a@b.com")
			f.Set(FieldPassword, "secret")

			err := f.Submit(context.Background())
			require.Error(t, err)

			st := f.State()
			assert.Equal(t, tt.want, st.ServerError())
			assert.False(t, st.Busy())
			assert.Empty(t, st.Errors())
			assert.Empty(t, fx.nav.Visited)
			assert.Zero(t, fx.sessions.Len())
		})
	}
}

func TestLoginForm_NetworkFailure(t *testing.T) {
	sessions := session.NewMemoryRepository()
	rec := &nav.Recorder{}
	f := NewLoginForm(offlineClient(t), sessions, rec, logging.Discard())
	f.Set(FieldEmail, "a@b.com")
	f.Set(FieldPassword, "secret")

	err := f.Submit(context.Background())
	require.ErrorIs(t, err, client.ErrNetwork)
	assert.Equal(t, "network error", f.State().ServerError())
	assert.False(t, f.State().Busy())
	assert.Empty(t, rec.Visited)
}

func TestLoginForm_ServerErrorClearedOnResubmit(t *testing.T) {
	fx := newFixture(t)
	fx.srv.AddUser(apitest.User{Email: "a@b.com", Password: "secret", Role: "attendee"})

	f := NewLoginForm(fx.client, fx.sessions, fx.nav, logging.Discard())
	f.Set(FieldEmail, "a@b.com")
	f.Set(FieldPassword, "wrong")
	require.Error(t, f.Submit(context.Background()))
	require.Equal(t, "Invalid email or password", f.State().ServerError())

	f.Set(FieldPassword, "secret")
	require.NoError(t, f.Submit(context.Background()))
	assert.Empty(t, f.State().ServerError())
}

func TestLoginForm_SaveFailure(t *testing.T) {
	fx := newFixture(t)
	fx.srv.AddUser(apitest.User{Email: "a@b.com", Password: "secret", Role: "attendee"})

	f := NewLoginForm(fx.client, failingSessions{fx.sessions}, fx.nav, logging.Discard())
	f.Set(FieldEmail, "a@b.com")
	f.Set(FieldPassword, "secret")

	err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotEmpty(t, f.State().ServerError())
	assert.False(t, f.State().Busy())
	assert.Empty(t, fx.nav.Visited)
}

func TestLoginForm_SubmitWhileBusy(t *testing.T) {
	bc := &blockingClient{started: make(chan struct{}), release: make(chan struct{})}
	f := NewLoginForm(bc, session.NewMemoryRepository(), &nav.Recorder{}, logging.Discard())
	f.Set(FieldEmail, "a@b.com")
	f.Set(FieldPassword, "secret")

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()

	<-bc.started
	assert.True(t, f.State().Busy())
	assert.ErrorIs(t, f.Submit(context.Background()), ErrBusy)

	close(bc.release)
	require.ErrorIs(t, <-done, client.ErrNetwork)
	assert.False(t, f.State().Busy())
}

func fillRegister(f *RegisterForm, name, email, password, confirm string) {
	f.Set(FieldName, name)
	f.Set(FieldEmail, email)
	f.Set(FieldPassword, password)
	f.Set(FieldConfirmPassword, confirm)
}

func TestRegisterForm_Success(t *testing.T) {
	fx := newFixture(t)
	f := NewRegisterForm(fx.client, fx.nav, logging.Discard())
	fillRegister(f, "Ann Lee", "ann@example.org", "secret1", "secret1")
	f.Set(FieldRole, "organizer")

	require.NoError(t, f.Submit(context.Background()))

	st := f.State()
	assert.Equal(t, RegisterSucceeded, st.Notice())
	assert.False(t, st.Busy())

	last, ok := fx.nav.Last()
	require.True(t, ok)
	assert.Equal(t, nav.ViewLogin, last)

	regs := fx.srv.Registrations()
	require.Len(t, regs, 1)
	assert.Contains(t, regs[0].ContentType, "application/json")
	assert.Equal(t, "organizer", regs[0].Fields["role"])
	assert.Equal(t, "secret1", regs[0].Fields["confirmPassword"])
}

func TestRegisterForm_DefaultRoleIsAttendee(t *testing.T) {
	fx := newFixture(t)
	f := NewRegisterForm(fx.client, fx.nav, logging.Discard())
	assert.Equal(t, "attendee", f.State().Value(FieldRole))

	fillRegister(f, "Ann", "ann@example.org", "secret1", "secret1")
	f.Set(FieldRole, "")
	require.NoError(t, f.Submit(context.Background()))

	regs := fx.srv.Registrations()
	require.Len(t, regs, 1)
	assert.Equal(t, "attendee", regs[0].Fields["role"])
}

func TestRegisterForm_WithAvatar(t *testing.T) {
	fx := newFixture(t)
	f := NewRegisterForm(fx.client, fx.nav, logging.Discard())
	fillRegister(f, "Ann", "ann@example.org", "secret1", "secret1")
	f.SetAvatar(&client.Avatar{Filename: "me.txt", Data: []byte("hello")})

	require.NoError(t, f.Submit(context.Background()))

	regs := fx.srv.Registrations()
	require.Len(t, regs, 1)
	assert.Contains(t, regs[0].ContentType, "multipart/form-data")
	assert.Equal(t, "me.txt", regs[0].AvatarName)
	assert.Equal(t, []byte("hello"), regs[0].AvatarData)
}

func TestRegisterForm_Validation(t *testing.T) {
	tests := []struct {
		name                            string
		fullName, email, pass, confirm string
		want                            map[Field]string
	}{
		{
			name: "all empty",
			want: map[Field]string{
				FieldName:     "Name is required",
				FieldEmail:    "Email is required",
				FieldPassword: "Password is required",
			},
		},
		{
			name: "bad email", fullName: "Ann", email: "a@b", pass: "secret1", confirm: "secret1",
			want: map[Field]string{FieldEmail: "Invalid email"},
		},
		{
			name: "short password only", fullName: "Ann", email: "a@b.com", pass: "abc", confirm: "abc",
			want: map[Field]string{FieldPassword: "Password must be at least 6 characters"},
		},
		{
			name: "mismatch only", fullName: "Ann", email: "a@b.com", pass: "secret1", confirm: "secret2",
			want: map[Field]string{FieldConfirmPassword: "Passwords do not match"},
		},
		{
			name: "short and mismatch", fullName: "Ann", email: "a@b.com", pass: "abc", confirm: "abd",
			want: map[Field]string{
				FieldPassword:        "Password must be at least 6 characters",
				FieldConfirmPassword: "Passwords do not match",
			},
		},
		{
			name: "blank name", fullName: "  ", email: "a@b.com", pass: "secret1", confirm: "secret1",
			want: map[Field]string{FieldName: "Name is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			f := NewRegisterForm(fx.client, fx.nav, logging.Discard())
			fillRegister(f, tt.fullName, tt.email, tt.pass, tt.confirm)

			require.ErrorIs(t, f.Submit(context.Background()), ErrInvalid)
			assert.Equal(t, tt.want, f.State().Errors())
			assert.False(t, f.State().Busy())
			assert.Zero(t, fx.srv.TotalCalls())
			assert.Empty(t, fx.nav.Visited)
		})
	}
}

func TestRegisterForm_InvalidRole(t *testing.T) {
	fx := newFixture(t)
	f := NewRegisterForm(fx.client, fx.nav, logging.Discard())
	fillRegister(f, "Ann", "a@b.com", "secret1", "secret1")
	f.Set(FieldRole, "admin")

	require.ErrorIs(t, f.Submit(context.Background()), ErrInvalid)
	assert.NotEmpty(t, f.State().Error(FieldRole))
	assert.Zero(t, fx.srv.TotalCalls())
}

func TestRegisterForm_EditClearsOnlyThatField(t *testing.T) {
	fx := newFixture(t)
	f := NewRegisterForm(fx.client, fx.nav, logging.Discard())
	require.ErrorIs(t, f.Submit(context.Background()), ErrInvalid)

	f.Set(FieldName, "Ann")
	errs := f.State().Errors()
	assert.NotContains(t, errs, FieldName)
	assert.Contains(t, errs, FieldEmail)
	assert.Contains(t, errs, FieldPassword)
}

func TestRegisterForm_DuplicateUser(t *testing.T) {
	fx := newFixture(t)
	fx.srv.AddUser(apitest.User{Email: "ann@example.org", Password: "x"})

	f := NewRegisterForm(fx.client, fx.nav, logging.Discard())
	fillRegister(f, "Ann", "ann@example.org", "secret1", "secret1")

	var rejected *client.RejectedError
	require.ErrorAs(t, f.Submit(context.Background()), &rejected)
	assert.Equal(t, http.StatusConflict, rejected.Status)
	assert.Equal(t, "User already exists", f.State().ServerError())
	assert.Empty(t, f.State().Notice())
	assert.Empty(t, fx.nav.Visited)
	assert.False(t, f.State().Busy())
}

func TestRegisterForm_Fallback(t *testing.T) {
	fx := newFixture(t)
	fx.srv.Reject(apitest.RegisterPath, http.StatusBadGateway, "")

	f := NewRegisterForm(fx.client, fx.nav, logging.Discard())
	fillRegister(f, "Ann", "ann@example.org", "secret1", "secret1")

	require.Error(t, f.Submit(context.Background()))
	assert.Equal(t, client.FallbackRegisterMessage, f.State().ServerError())
}

func TestForgotPasswordForm_Success(t *testing.T) {
	fx := newFixture(t)
	fx.srv.AddUser(apitest.User{Email: "a@b.com", Password: "x"})

	f := NewForgotPasswordForm(fx.client, logging.Discard())
	f.Set(FieldEmail, "a@b.com")

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, client.ResetConfirmation, f.State().Notice())
	assert.Empty(t, f.State().ServerError())
	assert.False(t, f.State().Busy())
	assert.Equal(t, []string{"a@b.com"}, fx.srv.ResetRequests())
}

func TestForgotPasswordForm_RequiresEmail(t *testing.T) {
	fx := newFixture(t)
	f := NewForgotPasswordForm(fx.client, logging.Discard())

	require.ErrorIs(t, f.Submit(context.Background()), ErrInvalid)
	assert.Equal(t, "Email is required", f.State().Error(FieldEmail))
	assert.Zero(t, fx.srv.TotalCalls())
}

func TestForgotPasswordForm_Rejections(t *testing.T) {
	fx := newFixture(t)
	f := NewForgotPasswordForm(fx.client, logging.Discard())
	f.Set(FieldEmail, "nobody@example.org")

	require.Error(t, f.Submit(context.Background()))
	assert.Equal(t, "User not found", f.State().ServerError())
	assert.Empty(t, f.State().Notice())

	fx.srv.Reject(apitest.ResetPath, http.StatusInternalServerError, "")
	require.Error(t, f.Submit(context.Background()))
	assert.Equal(t, client.FallbackResetMessage, f.State().ServerError())
}

func TestForgotPasswordForm_NetworkFailure(t *testing.T) {
	f := NewForgotPasswordForm(offlineClient(t), logging.Discard())
	f.Set(FieldEmail, "a@b.com")

	require.ErrorIs(t, f.Submit(context.Background()), client.ErrNetwork)
	assert.Equal(t, "network error", f.State().ServerError())
}

func TestForms_LogsOmitEmailAddresses(t *testing.T) {
	fx := newFixture(t)
	fx.srv.AddUser(apitest.User{Email: "taken@example.org", Password: "secret1", Role: "attendee"})

	var buf bytes.Buffer
	logger := logging.NewTextLogger(&buf, "debug")
	ctx := context.Background()

	login := NewLoginForm(fx.client, fx.sessions, fx.nav, logger)
	login.Set(FieldEmail, "taken@example.org")
	login.Set(FieldPassword, "wrong")
	require.Error(t, login.Submit(ctx))
	login.Set(FieldPassword, "secret1")
	require.NoError(t, login.Submit(ctx))

	reg := NewRegisterForm(fx.client, fx.nav, logger)
	fillRegister(reg, "Ann", "taken@example.org", "secret1", "secret1")
	require.Error(t, reg.Submit(ctx))
	fillRegister(reg, "Ann", "fresh@example.org", "secret1", "secret1")
	require.NoError(t, reg.Submit(ctx))

	out := buf.String()
	assert.Contains(t, out, "login accepted")
	assert.Contains(t, out, "registration accepted")
	assert.NotContains(t, out, "@example.org")
	assert.NotContains(t, out, "secret1")
}
