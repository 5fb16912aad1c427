package model

type QuestionType string

const (
	QuestionOpen     QuestionType = "open"
	QuestionClosed   QuestionType = "closed"
	QuestionMultiple QuestionType = "multiple"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionOpen, QuestionClosed, QuestionMultiple:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type carry an option list.
func (t QuestionType) HasOptions() bool {
	return t == QuestionClosed || t == QuestionMultiple
}

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is embedded in a Test; its ID is unique within that test only.
// Image, when present, is an inline base64 data URL.
type Question struct {
	ID           string       `json:"id"`
	Type         QuestionType `json:"type"`
	QuestionText string       `json:"questionText"`
	Image        string       `json:"image,omitempty"`
	Options      []Option     `json:"options,omitempty"`
}

func (q Question) Clone() Question {
	if q.Options != nil {
		opts := make([]Option, len(q.Options))
		copy(opts, q.Options)
		q.Options = opts
	}
	return q
}

// OptionIDs returns the set of valid option ids for answer validation.
func (q Question) OptionIDs() map[string]bool {
	ids := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		ids[o.ID] = true
	}
	return ids
}
