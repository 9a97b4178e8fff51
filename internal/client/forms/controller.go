package forms

import (
	"errors"
	"sync"
)

var (
	// ErrInvalid is returned by Submit when validation failed locally.
	ErrInvalid = errors.New("form has validation errors")
	// ErrBusy is returned by Submit while a request is still outstanding.
	ErrBusy = errors.New("form is busy")
)

// form carries the state shared by every controller. The mutex only
// serialises snapshot swaps; requests are issued without holding it.
type form struct {
	mu    sync.Mutex
	state State
}

func (f *form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Set records an edit of one field.
func (f *form) Set(field Field, value string) {
	f.update(func(s State) State { return s.WithValue(field, value) })
}

func (f *form) update(fn func(State) State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = fn(f.state)
}

// begin raises the busy flag and clears the server error. It returns false
// if the form was already busy.
func (f *form) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.busy {
		return false
	}
	f.state = f.state.withBusy(true).withServerError("").withNotice("")
	return true
}

func (f *form) end() {
	f.update(func(s State) State { return s.withBusy(false) })
}

// reject shows errs under their fields; nothing is sent.
func (f *form) reject(errs map[Field]string) error {
	f.update(func(s State) State { return s.withErrors(errs) })
	return ErrInvalid
}
