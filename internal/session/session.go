package session

import "github.com/dcastano/evalia/internal/model"

// Session is the resolved identity for one request. The user it carries is
// sanitized; credentials never enter a session.
type Session struct {
	User model.User
}

func (s *Session) Role() model.Role {
	if s == nil {
		return ""
	}
	return s.User.Role
}

func (s *Session) IsAuthenticated() bool { return s != nil && s.User.ID != "" }

func (s *Session) IsAdmin() bool     { return s.Role() == model.RoleAdmin }
func (s *Session) IsConsultor() bool { return s.Role() == model.RoleConsultor }

// CanAuthor reports whether the session may author tests and assignments.
func (s *Session) CanAuthor() bool {
	return s.Role() == model.RoleAdmin || s.Role() == model.RoleConsultor
}
