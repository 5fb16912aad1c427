package model

// Answer is one response to a question, embedded in assignment progress and
// in results. Answer holds the written value for open questions; Selected
// holds the chosen option ids, exactly one for closed questions and one or
// more for multiple questions.
type Answer struct {
	QuestionID string       `json:"questionId"`
	Type       QuestionType `json:"type"`
	Answer     string       `json:"answer,omitempty"`
	Selected   []string     `json:"selected,omitempty"`
}

func (a Answer) Clone() Answer {
	if a.Selected != nil {
		sel := make([]string, len(a.Selected))
		copy(sel, a.Selected)
		a.Selected = sel
	}
	return a
}

func cloneAnswers(answers []Answer) []Answer {
	if answers == nil {
		return nil
	}
	out := make([]Answer, len(answers))
	for i, a := range answers {
		out[i] = a.Clone()
	}
	return out
}
