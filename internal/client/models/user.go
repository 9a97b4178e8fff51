package models

import (
	"encoding/json"
	"maps"
	"strings"
)

// UserProfile is the snapshot of the authenticated principal returned by
// the service. The client never mutates it.
//
// Role is authoritative. RoleName keeps the role exactly as the service sent
// it, so an unknown role can still be displayed. Extra holds any attributes
// the client does not model, so a stored profile keeps everything the
// service returned.
type UserProfile struct {
	ID        string                     `json:"id"`
	FirstName string                     `json:"firstName"`
	LastName  string                     `json:"lastName"`
	Email     string                     `json:"email"`
	Role      Role                       `json:"-"`
	RoleName  string                     `json:"role"`
	Avatar    string                     `json:"avatar,omitempty"`
	Extra     map[string]json.RawMessage `json:"-"`
}

// knownKeys are decoded into typed fields and never kept in Extra. The
// token travels next to the profile in the login response.
var knownKeys = map[string]bool{
	"id": true, "_id": true, "firstName": true, "lastName": true,
	"email": true, "role": true, "avatar": true, "token": true,
}

// UnmarshalJSON accepts both "_id" and "id" for the identifier.
func (u *UserProfile) UnmarshalJSON(b []byte) error {
	type plain UserProfile
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*u = UserProfile(raw.plain)
	if u.ID == "" {
		u.ID = raw.MongoID
	}
	u.Role = ParseRole(u.RoleName)

	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	maps.DeleteFunc(all, func(k string, _ json.RawMessage) bool { return knownKeys[k] })
	if len(all) > 0 {
		u.Extra = all
	}
	return nil
}

// MarshalJSON writes Role as the wire role. RoleName is only used when Role
// is unknown, which keeps unrecognised values intact.
func (u UserProfile) MarshalJSON() ([]byte, error) {
	type plain UserProfile
	p := plain(u)
	if u.Role != RoleUnknown {
		p.RoleName = u.Role.String()
	}

	b, err := json.Marshal(p)
	if err != nil || len(u.Extra) == 0 {
		return b, err
	}

	out := maps.Clone(u.Extra)
	var typed map[string]json.RawMessage
	if err := json.Unmarshal(b, &typed); err != nil {
		return nil, err
	}
	maps.Copy(out, typed)
	return json.Marshal(out)
}

// DisplayName joins first and last name, falling back to the email.
func (u UserProfile) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
