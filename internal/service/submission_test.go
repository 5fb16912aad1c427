package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/evalia/internal/model"
)

func TestValidateSubmission(t *testing.T) {
	e := newEnv(t)
	test := e.seedTest()

	mutate := func(fn func(answers []model.Answer)) []model.Answer {
		answers := validAnswers()
		fn(answers)
		return answers
	}

	cases := []struct {
		name    string
		answers []model.Answer
		ok      bool
	}{
		{"complete", validAnswers(), true},
		{"missing answer", validAnswers()[:2], false},
		{"blank open answer", mutate(func(a []model.Answer) { a[0].Answer = "   " }), false},
		{"closed no selection", mutate(func(a []model.Answer) { a[1].Selected = nil }), false},
		{"closed two selections", mutate(func(a []model.Answer) { a[1].Selected = []string{"opt_1", "opt_2"} }), false},
		{"closed unknown option", mutate(func(a []model.Answer) { a[1].Selected = []string{"opt_99"} }), false},
		{"multiple empty", mutate(func(a []model.Answer) { a[2].Selected = []string{} }), false},
		{"multiple unknown option", mutate(func(a []model.Answer) { a[2].Selected = []string{"opt_2", "opt_99"} }), false},
		{"multiple single selection", mutate(func(a []model.Answer) { a[2].Selected = []string{"opt_1"} }), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSubmission(test, tc.answers)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			rej, isRej := AsRejection(err)
			require.True(t, isRej, "expected a rejection, got %v", err)
			assert.Equal(t, CodeInvalidSubmission, rej.Code)
		})
	}
}

func TestValidateSubmissionIgnoresExtraAnswers(t *testing.T) {
	e := newEnv(t)
	test := e.seedTest()

	answers := append(validAnswers(), model.Answer{
		QuestionID: "q_ghost", Type: model.QuestionOpen, Answer: "noise",
	})
	assert.NoError(t, ValidateSubmission(test, answers))
}
