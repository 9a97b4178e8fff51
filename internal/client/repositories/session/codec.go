package session

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
)

func encode(s models.Session) (token []byte, user []byte, err error) {
	user, err = json.Marshal(s.User)
	if err != nil {
		return nil, nil, fmt.Errorf("encode session user: %w", err)
	}
	return []byte(s.Token), user, nil
}

// decode rebuilds a session from the raw entries. A missing or empty entry
// or an undecodable user yields nil.
func decode(token, user []byte) *models.Session {
	if len(token) == 0 || len(user) == 0 {
		return nil
	}
	var u models.UserProfile
	if err := json.Unmarshal(user, &u); err != nil {
		return nil
	}
	return &models.Session{Token: string(token), User: u}
}
