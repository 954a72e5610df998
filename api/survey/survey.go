// Package survey submits completed survey wizard forms.
package survey

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/kochabx/dashkit/core/fetch"
	"github.com/kochabx/dashkit/core/validator"
	"github.com/kochabx/dashkit/errors"
)

type Answer struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"`
}

// Form is a finished survey: the contact plus one answer per question
type Form struct {
	Name    string   `json:"name" validate:"required"`
	Phone   string   `json:"phone" validate:"required,phone"`
	Email   string   `json:"email" validate:"required,email"`
	Answers []Answer `json:"answers" validate:"dive"`
}

// SetAnswer records the answer to question, replacing an earlier one
func (f *Form) SetAnswer(question, answer string) {
	for i := range f.Answers {
		if f.Answers[i].Question == question {
			f.Answers = append(f.Answers[:i], f.Answers[i+1:]...)
			break
		}
	}
	f.Answers = append(f.Answers, Answer{Question: question, Answer: answer})
}

type Service struct {
	client *fetch.Client
}

func New(client *fetch.Client) *Service {
	return &Service{client: client}
}

// Submit posts the form to the location's workflow. An invalid form is
// rejected without a call.
func (s *Service) Submit(ctx context.Context, locationID, workflowID string, form Form) error {
	if locationID == "" || workflowID == "" {
		return errors.BadRequest("location and workflow are required")
	}
	if err := validator.Validate.StructCtx(ctx, form); err != nil {
		return errors.BadRequest("invalid survey: %v", err).WithCause(err)
	}
	if form.Answers == nil {
		form.Answers = []Answer{}
	}

	_, err := fetch.Raw[json.RawMessage](ctx, s.client,
		"/survey/"+url.PathEscape(locationID)+"/"+url.PathEscape(workflowID),
		fetch.WithBody(form),
		fetch.WithRoute("/survey/:locationId/:workflowId"))
	return err
}
