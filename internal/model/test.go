package model

import "time"

type Test struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
	CreatedBy   string     `json:"createdBy"` // user id of the authoring consultor/admin
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func (t Test) Clone() Test {
	if t.Questions != nil {
		qs := make([]Question, len(t.Questions))
		for i, q := range t.Questions {
			qs[i] = q.Clone()
		}
		t.Questions = qs
	}
	if t.UpdatedAt != nil {
		at := *t.UpdatedAt
		t.UpdatedAt = &at
	}
	return t
}

// QuestionByID returns the embedded question, if any.
func (t Test) QuestionByID(id string) (Question, bool) {
	for _, q := range t.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
