// Package nav names the client's views and the navigation contract the
// controllers use to move between them.
package nav

type View int

const (
	ViewLanding View = iota
	ViewLogin
	ViewRegister
	ViewForgotPassword
	ViewDashboard
)

func (v View) String() string {
	switch v {
	case ViewLanding:
		return "home"
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewForgotPassword:
		return "forgot-password"
	case ViewDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Protected reports whether entering v requires a session.
func (v View) Protected() bool {
	return v == ViewDashboard
}

// Navigator switches the active view.
type Navigator interface {
	Navigate(v View)
}

// Recorder is a Navigator that remembers every request. Tests use it in
// place of the CLI.
type Recorder struct {
	Visited []View
}

func (r *Recorder) Navigate(v View) {
	r.Visited = append(r.Visited, v)
}

// Last returns the most recent view, or false when nothing was visited.
func (r *Recorder) Last() (View, bool) {
	if len(r.Visited) == 0 {
		return 0, false
	}
	return r.Visited[len(r.Visited)-1], true
}
