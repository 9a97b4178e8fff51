// Package models defines the client-side view of the event-management
// principal: roles, user profiles and the persisted session.
package models

import (
	"encoding/json"
	"strings"
)

// Role is the category of an authenticated principal. Values the client
// does not know about decode to RoleUnknown instead of failing.
type Role int

const (
	RoleUnknown Role = iota
	RoleAttendee
	RoleOrganizer
)

const (
	roleAttendee  = "attendee"
	roleOrganizer = "organizer"
)

// ParseRole maps the wire value to a Role. It never fails.
func ParseRole(s string) Role {
	switch s {
	case roleAttendee:
		return RoleAttendee
	case roleOrganizer:
		return RoleOrganizer
	default:
		return RoleUnknown
	}
}

// String returns the wire value, or "unknown".
func (r Role) String() string {
	switch r {
	case RoleAttendee:
		return roleAttendee
	case RoleOrganizer:
		return roleOrganizer
	default:
		return "unknown"
	}
}

// SelectableRoles lists the roles a user can pick at registration.
func SelectableRoles() []Role {
	return []Role{RoleAttendee, RoleOrganizer}
}

// ParseSelectableRole accepts the registration choices case-insensitively.
// An empty choice selects attendee.
func ParseSelectableRole(s string) (Role, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleAttendee, true
	}
	r := ParseRole(s)
	return r, r != RoleUnknown
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*r = RoleUnknown
		return nil
	}
	*r = ParseRole(s)
	return nil
}
