package service

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/model"
)

func newUsers(e *env) UserService {
	return NewUserService(e.users, e.assignments)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	e := newEnv(t)
	svc := newUsers(e)

	_, err := svc.Create(dto.CreateUserRequest{
		Username: "admin", Password: "x", Role: "consultor",
		FullName: "Other Admin", Email: "other@example.com",
	})
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeDuplicateUsername, rej.Code)
}

func TestCreateConsultanteRequiresConsultor(t *testing.T) {
	e := newEnv(t)
	svc := newUsers(e)

	_, err := svc.Create(dto.CreateUserRequest{
		Username: "nuevo", Password: "x", Role: "consultante",
		FullName: "Nuevo", Email: "nuevo@example.com",
	})
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnknownConsultor, rej.Code)

	_, err = svc.Create(dto.CreateUserRequest{
		Username: "nuevo", Password: "x", Role: "consultante",
		FullName: "Nuevo", Email: "nuevo@example.com", ConsultorID: "user_ghost",
	})
	rej, ok = AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnknownConsultor, rej.Code)
}

func TestCreateUserNeverExposesPassword(t *testing.T) {
	e := newEnv(t)
	svc := newUsers(e)

	resp, err := svc.Create(dto.CreateUserRequest{
		Username: "nuevo", Password: "hidden", Role: "consultor",
		FullName: "Nuevo", Email: "nuevo@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)

	// credential still stored for login
	stored, ok := e.users.Get(resp.ID)
	require.True(t, ok)
	assert.Equal(t, "hidden", stored.Password)
}

func TestUpdateUserPartial(t *testing.T) {
	e := newEnv(t)
	svc := newUsers(e)

	name := "Diego Renamed"
	resp, err := svc.Update(e.consultante.ID, dto.UpdateUserRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Diego Renamed", resp.FullName)
	assert.Equal(t, "diego", resp.Username, "absent fields persist")
	assert.Equal(t, e.consultor.ID, resp.ConsultorID)
}

func TestUpdateUserDuplicateUsernameExcludesSelf(t *testing.T) {
	e := newEnv(t)
	svc := newUsers(e)

	same := "diego"
	_, err := svc.Update(e.consultante.ID, dto.UpdateUserRequest{Username: &same})
	assert.NoError(t, err, "keeping your own username is not a conflict")

	taken := "admin"
	_, err = svc.Update(e.consultante.ID, dto.UpdateUserRequest{Username: &taken})
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeDuplicateUsername, rej.Code)
}

func TestConsultantesRoster(t *testing.T) {
	e := newEnv(t)
	svc := newUsers(e)

	test := e.seedTest()
	e.seedAssignment(test.ID, nil)

	roster := svc.Consultantes(e.consultor.ID)
	require.Len(t, roster, 1)
	assert.Equal(t, e.consultante.ID, roster[0].User.ID)
	assert.Equal(t, 1, roster[0].ActiveAssignments)
}

func TestDeleteUserLeavesReferences(t *testing.T) {
	e := newEnv(t)
	svc := newUsers(e)

	test := e.seedTest()
	a := e.seedAssignment(test.ID, nil)

	require.True(t, svc.Delete(e.consultante.ID))
	assert.False(t, svc.Delete(e.consultante.ID))

	// the assignment still references the removed user by raw id
	got, ok := e.assignments.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, e.consultante.ID, got.ConsultantID)
}

func TestUpdateDemoteConsultorToConsultanteNeedsOwner(t *testing.T) {
	e := newEnv(t)
	svc := newUsers(e)

	role := "consultante"
	_, err := svc.Update(e.consultor.ID, dto.UpdateUserRequest{Role: &role})
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnknownConsultor, rej.Code)

	owner := e.users.Create(model.User{Username: "otra", Password: "x", Role: model.RoleConsultor, FullName: "Otra"})
	_, err = svc.Update(e.consultor.ID, dto.UpdateUserRequest{Role: &role, ConsultorID: &owner.ID})
	assert.NoError(t, err)
}

func TestConcurrentCreatesKeepUsernameUnique(t *testing.T) {
	e := newEnv(t)
	svc := newUsers(e)

	var wg sync.WaitGroup
	var successes int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(dto.CreateUserRequest{
				Username: "nuevo", Password: "x", Role: "consultor",
				FullName: "Nuevo", Email: "nuevo@example.com",
			})
			if err == nil {
				atomic.AddInt32(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes)
	count := 0
	for _, u := range e.users.All() {
		if u.Username == "nuevo" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
