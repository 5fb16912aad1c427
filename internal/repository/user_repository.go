package repository

import (
	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/store"
)

type UserRepository interface {
	Create(u model.User) model.User
	All() []model.User
	Get(id string) (model.User, bool)
	GetByUsername(username string) (model.User, bool)
	UsernameTaken(username string, excludeID string) bool
	Consultores() []model.User
	ConsultantesOf(consultorID string) []model.User
	Update(id string, patch UserPatch) (model.User, bool)
	Remove(id string) bool
}

// UserPatch is the explicit partial update for users: set fields win, absent
// fields persist. The id is never patchable.
type UserPatch struct {
	Username    *string
	Password    *string
	Role        *model.Role
	FullName    *string
	Email       *string
	ConsultorID *string
}

func (p UserPatch) apply(u *model.User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.ConsultorID != nil {
		u.ConsultorID = *p.ConsultorID
	}
}

type userRepository struct {
	table *store.Table[model.User]
}

func NewUserRepository(s *store.Store) UserRepository {
	return &userRepository{table: s.Users()}
}

func (r *userRepository) Create(u model.User) model.User { return r.table.Insert(u) }

func (r *userRepository) All() []model.User { return r.table.All() }

func (r *userRepository) Get(id string) (model.User, bool) { return r.table.Get(id) }

func (r *userRepository) GetByUsername(username string) (model.User, bool) {
	matches := r.table.Find(func(u model.User) bool { return u.Username == username })
	if len(matches) == 0 {
		return model.User{}, false
	}
	return matches[0], true
}

func (r *userRepository) UsernameTaken(username string, excludeID string) bool {
	matches := r.table.Find(func(u model.User) bool {
		return u.Username == username && u.ID != excludeID
	})
	return len(matches) > 0
}

func (r *userRepository) Consultores() []model.User {
	return r.table.Find(func(u model.User) bool { return u.Role == model.RoleConsultor })
}

// ConsultantesOf returns the consultantes owned by the given consultor.
func (r *userRepository) ConsultantesOf(consultorID string) []model.User {
	return r.table.Find(func(u model.User) bool {
		return u.Role == model.RoleConsultante && u.ConsultorID == consultorID
	})
}

func (r *userRepository) Update(id string, patch UserPatch) (model.User, bool) {
	return r.table.Update(id, patch.apply)
}

func (r *userRepository) Remove(id string) bool { return r.table.Remove(id) }
