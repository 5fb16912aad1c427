package service

import (
	"sync"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/repository"
)

type UserService interface {
	Create(req dto.CreateUserRequest) (*dto.UserResponse, error)
	List() []dto.UserResponse
	Get(id string) (*dto.UserResponse, error)
	Consultantes(consultorID string) []dto.ConsultanteSummary
	Update(id string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(id string) bool
}

type userService struct {
	// mu serializes the check-then-write sections so two writers cannot
	// both pass the username uniqueness check.
	mu sync.Mutex

	users       repository.UserRepository
	assignments repository.AssignmentRepository
}

func NewUserService(users repository.UserRepository, assignments repository.AssignmentRepository) UserService {
	return &userService{users: users, assignments: assignments}
}

// Create enforces username uniqueness and the consultante ownership
// invariant: a consultante must reference an existing consultor.
func (s *userService) Create(req dto.CreateUserRequest) (*dto.UserResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.users.UsernameTaken(req.Username, "") {
		return nil, reject(CodeDuplicateUsername, "username %q already exists", req.Username)
	}

	role := model.Role(req.Role)
	consultorID := ""
	if role == model.RoleConsultante {
		if req.ConsultorID == "" {
			return nil, reject(CodeUnknownConsultor, "a consultante requires an owning consultor")
		}
		owner, ok := s.users.Get(req.ConsultorID)
		if !ok || owner.Role != model.RoleConsultor {
			return nil, reject(CodeUnknownConsultor, "consultor %q does not exist", req.ConsultorID)
		}
		consultorID = req.ConsultorID
	}

	created := s.users.Create(model.User{
		Username:    req.Username,
		Password:    req.Password,
		Role:        role,
		FullName:    req.FullName,
		Email:       req.Email,
		ConsultorID: consultorID,
	})
	log.Info().Str("user_id", created.ID).Str("role", req.Role).Msg("user created")
	return userResponse(created)
}

func (s *userService) List() []dto.UserResponse {
	all := s.users.All()
	out := make([]dto.UserResponse, 0, len(all))
	for _, u := range all {
		if resp, err := userResponse(u); err == nil {
			out = append(out, *resp)
		}
	}
	return out
}

func (s *userService) Get(id string) (*dto.UserResponse, error) {
	u, ok := s.users.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return userResponse(u)
}

// Consultantes lists a consultor's owned consultantes with their count of
// still-active assignments, the consultor dashboard roster.
func (s *userService) Consultantes(consultorID string) []dto.ConsultanteSummary {
	owned := s.users.ConsultantesOf(consultorID)
	out := make([]dto.ConsultanteSummary, 0, len(owned))
	for _, u := range owned {
		resp, err := userResponse(u)
		if err != nil {
			continue
		}
		out = append(out, dto.ConsultanteSummary{
			User:              *resp,
			ActiveAssignments: s.assignments.CountActiveFor(u.ID, consultorID),
		})
	}
	return out
}

func (s *userService) Update(id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if req.Username != nil && s.users.UsernameTaken(*req.Username, id) {
		return nil, reject(CodeDuplicateUsername, "username %q already exists", *req.Username)
	}

	patch := repository.UserPatch{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
	}
	role := existing.Role
	if req.Role != nil {
		r := model.Role(*req.Role)
		patch.Role = &r
		role = r
	}
	if req.ConsultorID != nil {
		patch.ConsultorID = req.ConsultorID
	}
	if role == model.RoleConsultante {
		consultorID := existing.ConsultorID
		if req.ConsultorID != nil {
			consultorID = *req.ConsultorID
		}
		owner, ok := s.users.Get(consultorID)
		if !ok || owner.Role != model.RoleConsultor {
			return nil, reject(CodeUnknownConsultor, "consultor %q does not exist", consultorID)
		}
	}

	updated, ok := s.users.Update(id, patch)
	if !ok {
		return nil, ErrNotFound
	}
	return userResponse(updated)
}

// Delete removes the user. References from assignments or results are left
// dangling on purpose; readers substitute the raw id when resolving them.
func (s *userService) Delete(id string) bool {
	removed := s.users.Remove(id)
	if removed {
		log.Info().Str("user_id", id).Msg("user removed")
	}
	return removed
}

func userResponse(u model.User) (*dto.UserResponse, error) {
	safe := u.Sanitized()
	var resp dto.UserResponse
	if err := copier.Copy(&resp, &safe); err != nil {
		return nil, err
	}
	return &resp, nil
}
