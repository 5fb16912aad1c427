package service

import (
	"strings"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/model"
)

// ValidateSubmission checks every answer in the test's question order and
// reports the first violation found. Open questions require non-blank text,
// closed questions exactly one known option, multiple-choice questions at
// least one known option.
func ValidateSubmission(test model.Test, answers []model.Answer) error {
	byQuestion := make(map[string]model.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	for i, q := range test.Questions {
		a, ok := byQuestion[q.ID]
		if !ok {
			return reject(CodeInvalidSubmission, "question %d has no answer", i+1)
		}
		known := q.OptionIDs()

		switch q.Type {
		case model.QuestionOpen:
			if strings.TrimSpace(a.Answer) == "" {
				return reject(CodeInvalidSubmission, "question %d requires a written answer", i+1)
			}
		case model.QuestionClosed:
			if len(a.Selected) != 1 {
				return reject(CodeInvalidSubmission, "question %d requires exactly one selected option", i+1)
			}
			if !known[a.Selected[0]] {
				return reject(CodeInvalidSubmission, "question %d references an unknown option", i+1)
			}
		case model.QuestionMultiple:
			if len(a.Selected) == 0 {
				return reject(CodeInvalidSubmission, "question %d requires at least one selected option", i+1)
			}
			for _, id := range a.Selected {
				if !known[id] {
					return reject(CodeInvalidSubmission, "question %d references an unknown option", i+1)
				}
			}
		}
	}
	return nil
}

func answersFromDTO(in []dto.AnswerDTO) []model.Answer {
	out := make([]model.Answer, 0, len(in))
	for _, a := range in {
		out = append(out, model.Answer{
			QuestionID: a.QuestionID,
			Type:       model.QuestionType(a.Type),
			Answer:     a.Answer,
			Selected:   append([]string(nil), a.Selected...),
		})
	}
	return out
}

func answersToDTO(in []model.Answer) []dto.AnswerDTO {
	out := make([]dto.AnswerDTO, 0, len(in))
	for _, a := range in {
		out = append(out, dto.AnswerDTO{
			QuestionID: a.QuestionID,
			Type:       string(a.Type),
			Answer:     a.Answer,
			Selected:   append([]string(nil), a.Selected...),
		})
	}
	return out
}
