package forms

import "maps"

type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldRole            Field = "role"
)

// State is an immutable snapshot of a form. The With* methods return
// modified copies and leave the receiver untouched.
type State struct {
	values      map[Field]string
	errors      map[Field]string
	serverError string
	notice      string
	busy        bool
}

func (s State) Value(f Field) string { return s.values[f] }

// Error returns the validation message of f, or "".
func (s State) Error(f Field) string { return s.errors[f] }

// Errors returns a copy of every non-empty field error.
func (s State) Errors() map[Field]string {
	out := make(map[Field]string, len(s.errors))
	for f, msg := range s.errors {
		if msg != "" {
			out[f] = msg
		}
	}
	return out
}

func (s State) HasErrors() bool { return len(s.Errors()) > 0 }

func (s State) ServerError() string { return s.serverError }

func (s State) Notice() string { return s.notice }

func (s State) Busy() bool { return s.busy }

// WithValue sets f and clears its validation error.
func (s State) WithValue(f Field, v string) State {
	s.values = maps.Clone(s.values)
	if s.values == nil {
		s.values = make(map[Field]string)
	}
	s.values[f] = v

	if s.errors[f] != "" {
		s.errors = maps.Clone(s.errors)
		delete(s.errors, f)
	}
	return s
}

func (s State) withErrors(errs map[Field]string) State {
	s.errors = maps.Clone(errs)
	return s
}

func (s State) withServerError(msg string) State {
	s.serverError = msg
	return s
}

func (s State) withNotice(msg string) State {
	s.notice = msg
	return s
}

func (s State) withBusy(b bool) State {
	s.busy = b
	return s
}
