// Package views renders the terminal screens. The dashboard is assembled
// from sections gated on the user's role.
package views

import (
	"io"
	"strings"
	"text/template"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
)

type SectionKind int

const (
	SectionWelcome SectionKind = iota
	SectionAttendee
	SectionOrganizer
)

type Section struct {
	Kind  SectionKind
	Title string
	Lines []string
}

// Sections lists what the dashboard shows for u. The welcome section is
// always present; the attendee and organizer sections depend on the role,
// and an unrecognised role gets neither.
func Sections(u models.UserProfile) []Section {
	out := []Section{{
		Kind:  SectionWelcome,
		Title: "Welcome, " + strings.TrimSpace(u.FirstName+" "+u.LastName) + "!",
		Lines: []string{"Role: " + roleLabel(u)},
	}}

	switch u.Role {
	case models.RoleAttendee:
		out = append(out, Section{
			Kind:  SectionAttendee,
			Title: "Upcoming Events",
			Lines: []string{
				"Tech Meetup - 25 Oct 2025",
				"Workshop - 12 Nov 2025",
			},
		})
	case models.RoleOrganizer:
		out = append(out, Section{
			Kind:  SectionOrganizer,
			Title: "Your Events",
			Lines: []string{
				"Annual Meetup 2025 - Registered: 120",
			},
		})
	}
	return out
}

func roleLabel(u models.UserProfile) string {
	if u.RoleName != "" {
		return u.RoleName
	}
	return u.Role.String()
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`
{{- range . }}
== {{ .Title }} ==
{{- range .Lines }}
  {{ . }}
{{- end }}
{{ end -}}
`))

func RenderDashboard(w io.Writer, u models.UserProfile) error {
	return dashboardTmpl.Execute(w, Sections(u))
}

var landingTmpl = template.Must(template.New("landing").Parse(`
== EventDesk ==
Discover, organise and attend events in one place.

  Attendees browse upcoming events and register in seconds.
  Organisers publish events and follow registrations.

Type "login" to sign in, "register" to create an account,
or "forgot" to reset your password.

(c) {{ .Year }} EventDesk. All rights reserved.
`))

// RenderLanding prints the public start screen.
func RenderLanding(w io.Writer, year int) error {
	return landingTmpl.Execute(w, struct{ Year int }{year})
}
