package service

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/evalia/internal/dto"
)

func newTests(e *env) TestService {
	return NewTestService(e.tests)
}

func validCreateTest() dto.CreateTestRequest {
	return dto.CreateTestRequest{
		Title:       "Intake",
		Description: "First session assessment",
		Questions: []dto.QuestionRequest{
			{Type: "open", QuestionText: "Describe your goals"},
			{Type: "closed", QuestionText: "Pick one", Options: []dto.OptionRequest{
				{Text: "Yes"}, {Text: "No"},
			}},
		},
	}
}

func TestCreateTestGeneratesIDs(t *testing.T) {
	e := newEnv(t)
	svc := newTests(e)

	resp, err := svc.Create(e.sessionFor(e.consultor), validCreateTest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ID, "test_"))
	assert.Equal(t, e.consultor.ID, resp.CreatedBy)

	require.Len(t, resp.Questions, 2)
	assert.True(t, strings.HasPrefix(resp.Questions[0].ID, "q_1_"))
	require.Len(t, resp.Questions[1].Options, 2)
	assert.Equal(t, "opt_1", resp.Questions[1].Options[0].ID)
	assert.Equal(t, "opt_2", resp.Questions[1].Options[1].ID)
}

func TestCreateTestKeepsProvidedQuestionIDs(t *testing.T) {
	e := newEnv(t)
	svc := newTests(e)

	req := validCreateTest()
	req.Questions[0].ID = "q_custom"

	resp, err := svc.Create(e.sessionFor(e.consultor), req)
	require.NoError(t, err)
	assert.Equal(t, "q_custom", resp.Questions[0].ID)
}

func TestCreateTestRejectsBlankQuestion(t *testing.T) {
	e := newEnv(t)
	svc := newTests(e)

	req := validCreateTest()
	req.Questions[0].QuestionText = "   "

	_, err := svc.Create(e.sessionFor(e.consultor), req)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidTest, rej.Code)
}

func TestCreateTestRejectsTooFewOptions(t *testing.T) {
	e := newEnv(t)
	svc := newTests(e)

	req := validCreateTest()
	// one blank option collapses the set below two
	req.Questions[1].Options = []dto.OptionRequest{{Text: "Yes"}, {Text: "   "}}

	_, err := svc.Create(e.sessionFor(e.consultor), req)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidTest, rej.Code)
}

func TestCreateTestRejectsBadImage(t *testing.T) {
	e := newEnv(t)
	svc := newTests(e)

	req := validCreateTest()
	req.Questions[0].Image = "data:image/svg+xml;base64,PHN2Zz4="

	_, err := svc.Create(e.sessionFor(e.consultor), req)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidImage, rej.Code)
}

func TestCreateTestAcceptsSmallPNG(t *testing.T) {
	e := newEnv(t)
	svc := newTests(e)

	req := validCreateTest()
	req.Questions[0].Image = "data:image/png;base64," +
		base64.StdEncoding.EncodeToString([]byte("tiny-png-bytes"))

	_, err := svc.Create(e.sessionFor(e.consultor), req)
	assert.NoError(t, err)
}

func TestCreateTestRejectsOversizedImage(t *testing.T) {
	e := newEnv(t)
	svc := newTests(e)

	req := validCreateTest()
	req.Questions[0].Image = "data:image/jpeg;base64," +
		base64.StdEncoding.EncodeToString(make([]byte, maxImageBytes+1))

	_, err := svc.Create(e.sessionFor(e.consultor), req)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidImage, rej.Code)
}

func TestListForScopesByRole(t *testing.T) {
	e := newEnv(t)
	svc := newTests(e)

	_, err := svc.Create(e.sessionFor(e.consultor), validCreateTest())
	require.NoError(t, err)
	_, err = svc.Create(e.sessionFor(e.admin), validCreateTest())
	require.NoError(t, err)

	assert.Len(t, svc.ListFor(e.sessionFor(e.admin)), 2)
	assert.Len(t, svc.ListFor(e.sessionFor(e.consultor)), 1)
}

func TestUpdateTestOwnership(t *testing.T) {
	e := newEnv(t)
	svc := newTests(e)

	created, err := svc.Create(e.sessionFor(e.consultor), validCreateTest())
	require.NoError(t, err)

	other := e.users.Create(newConsultorUser("otro"))
	title := "Hijacked"
	_, err = svc.Update(e.sessionFor(other), created.ID, dto.UpdateTestRequest{Title: &title})
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotOwner, rej.Code)

	// admin may edit anyone's test
	updated, err := svc.Update(e.sessionFor(e.admin), created.ID, dto.UpdateTestRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Hijacked", updated.Title)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestDeleteTestOwnership(t *testing.T) {
	e := newEnv(t)
	svc := newTests(e)

	created, err := svc.Create(e.sessionFor(e.consultor), validCreateTest())
	require.NoError(t, err)

	other := e.users.Create(newConsultorUser("otro"))
	_, err = svc.Delete(e.sessionFor(other), created.ID)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotOwner, rej.Code)

	removed, err := svc.Delete(e.sessionFor(e.consultor), created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Delete(e.sessionFor(e.consultor), created.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
