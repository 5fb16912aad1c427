package service

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/repository"
	"github.com/dcastano/evalia/internal/session"
)

type TestService interface {
	Create(sess *session.Session, req dto.CreateTestRequest) (*dto.TestResponse, error)
	ListFor(sess *session.Session) []dto.TestSummary
	Get(id string) (*dto.TestResponse, error)
	Update(sess *session.Session, id string, req dto.UpdateTestRequest) (*dto.TestResponse, error)
	Delete(sess *session.Session, id string) (bool, error)
}

type testService struct {
	tests repository.TestRepository
}

func NewTestService(tests repository.TestRepository) TestService {
	return &testService{tests: tests}
}

func (s *testService) Create(sess *session.Session, req dto.CreateTestRequest) (*dto.TestResponse, error) {
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	created := s.tests.Create(model.Test{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Questions:   questions,
		CreatedBy:   sess.User.ID,
	})
	log.Info().Str("test_id", created.ID).Str("created_by", created.CreatedBy).
		Int("questions", len(created.Questions)).Msg("test created")
	return testResponse(created)
}

// ListFor scopes visibility by role: admins see every test, consultores only
// the tests they authored.
func (s *testService) ListFor(sess *session.Session) []dto.TestSummary {
	var tests []model.Test
	if sess.IsAdmin() {
		tests = s.tests.All()
	} else {
		tests = s.tests.ByCreator(sess.User.ID)
	}
	out := make([]dto.TestSummary, 0, len(tests))
	for _, t := range tests {
		out = append(out, dto.TestSummary{
			ID:            t.ID,
			Title:         t.Title,
			Description:   t.Description,
			QuestionCount: len(t.Questions),
			CreatedBy:     t.CreatedBy,
			CreatedAt:     t.CreatedAt,
		})
	}
	return out
}

func (s *testService) Get(id string) (*dto.TestResponse, error) {
	t, ok := s.tests.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return testResponse(t)
}

func (s *testService) Update(sess *session.Session, id string, req dto.UpdateTestRequest) (*dto.TestResponse, error) {
	existing, ok := s.tests.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if !sess.IsAdmin() && existing.CreatedBy != sess.User.ID {
		return nil, reject(CodeNotOwner, "test %q belongs to another consultor", id)
	}

	now := time.Now().UTC()
	patch := repository.TestPatch{UpdatedAt: &now}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		patch.Title = &title
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		patch.Description = &desc
	}
	if req.Questions != nil {
		questions, err := buildQuestions(*req.Questions)
		if err != nil {
			return nil, err
		}
		patch.Questions = &questions
	}

	updated, ok := s.tests.Update(id, patch)
	if !ok {
		return nil, ErrNotFound
	}
	return testResponse(updated)
}

// Delete removes a test without cascading: existing assignments keep the raw
// test id and readers fall back to displaying it.
func (s *testService) Delete(sess *session.Session, id string) (bool, error) {
	existing, ok := s.tests.Get(id)
	if !ok {
		return false, nil
	}
	if !sess.IsAdmin() && existing.CreatedBy != sess.User.ID {
		return false, reject(CodeNotOwner, "test %q belongs to another consultor", id)
	}
	return s.tests.Remove(id), nil
}

// buildQuestions normalizes and validates the authored question list: every
// question needs a type and non-blank text, closed/multiple questions need at
// least two non-blank options, and inline images must be small JPG/PNG/GIF
// payloads. Missing ids are generated.
func buildQuestions(reqs []dto.QuestionRequest) ([]model.Question, error) {
	if len(reqs) == 0 {
		return nil, reject(CodeInvalidTest, "a test requires at least one question")
	}
	questions := make([]model.Question, 0, len(reqs))
	for i, qr := range reqs {
		qType := model.QuestionType(qr.Type)
		text := strings.TrimSpace(qr.QuestionText)
		if !qType.Valid() || text == "" {
			return nil, reject(CodeInvalidTest, "question %d requires a type and non-empty text", i+1)
		}
		if err := validateImage(qr.Image); err != nil {
			return nil, err
		}

		q := model.Question{
			ID:           qr.ID,
			Type:         qType,
			QuestionText: text,
			Image:        qr.Image,
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("q_%d_%s", i+1, strconv.FormatInt(time.Now().UnixMilli(), 36))
		}

		if qType.HasOptions() {
			opts := make([]model.Option, 0, len(qr.Options))
			for j, opt := range qr.Options {
				optText := strings.TrimSpace(opt.Text)
				if optText == "" {
					continue
				}
				id := opt.ID
				if id == "" {
					id = fmt.Sprintf("opt_%d", j+1)
				}
				opts = append(opts, model.Option{ID: id, Text: optText})
			}
			if len(opts) < 2 {
				return nil, reject(CodeInvalidTest, "closed/multiple question %d requires at least 2 valid options", i+1)
			}
			q.Options = opts
		} else if len(qr.Options) > 0 {
			return nil, reject(CodeInvalidTest, "open question %d cannot carry options", i+1)
		}

		questions = append(questions, q)
	}
	return questions, nil
}

const maxImageBytes = 2 << 20 // 2MB decoded

var imagePrefixes = []string{
	"data:image/jpeg;base64,",
	"data:image/png;base64,",
	"data:image/gif;base64,",
}

// validateImage accepts an empty payload or an inline base64 data URL in one
// of the supported formats, capped at maxImageBytes decoded.
func validateImage(dataURL string) error {
	if dataURL == "" {
		return nil
	}
	var encoded string
	for _, prefix := range imagePrefixes {
		if strings.HasPrefix(dataURL, prefix) {
			encoded = strings.TrimPrefix(dataURL, prefix)
			break
		}
	}
	if encoded == "" {
		return reject(CodeInvalidImage, "invalid image format, only JPG/PNG/GIF are supported")
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return reject(CodeInvalidImage, "corrupt image payload")
	}
	if len(decoded) > maxImageBytes {
		return reject(CodeInvalidImage, "image exceeds the %dMB limit", maxImageBytes>>20)
	}
	return nil
}

func testResponse(t model.Test) (*dto.TestResponse, error) {
	var resp dto.TestResponse
	if err := copier.Copy(&resp, &t); err != nil {
		return nil, err
	}
	if resp.Questions == nil {
		resp.Questions = []dto.QuestionResponse{}
	}
	return &resp, nil
}
