// Package chat binds the telephony chat widget routes. These routes answer
// with bare JSON rather than the standard envelope.
package chat

import (
	"cmp"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/kochabx/dashkit/core/fetch"
	"github.com/kochabx/dashkit/core/validator"
	"github.com/kochabx/dashkit/errors"
)

type Service struct {
	client *fetch.Client
}

func New(client *fetch.Client) *Service {
	return &Service{client: client}
}

func (s *Service) LookupContacts(ctx context.Context, locationID, query string) ([]Contact, error) {
	out, err := fetch.Raw[[]Contact](ctx, s.client, "/rc/contacts",
		fetch.WithQuery(url.Values{"location": {locationID}, "query": {query}}))
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

func (s *Service) ContactInfo(ctx context.Context, contactID, locationID string) (*ContactInfo, error) {
	return fetch.Raw[ContactInfo](ctx, s.client,
		"/rc/contacts/"+url.PathEscape(contactID)+"/"+url.PathEscape(locationID),
		fetch.WithRoute("/rc/contacts/:contactId/:locationId"))
}

// Chats lists a location's conversations, newest first
func (s *Service) Chats(ctx context.Context, locationID string) ([]ChatInfo, error) {
	out, err := fetch.Raw[[]ChatInfo](ctx, s.client, "/rc/chats/"+url.PathEscape(locationID),
		fetch.WithRoute("/rc/chats/:locationId"))
	if err != nil || out == nil {
		return nil, err
	}
	chats := *out
	slices.SortStableFunc(chats, func(a, b ChatInfo) int { return b.Date.Compare(a.Date) })
	return chats, nil
}

// Messages returns a chat's history, newest first
func (s *Service) Messages(ctx context.Context, chatID int64) ([]Message, error) {
	out, err := fetch.Raw[[]Message](ctx, s.client, "/rc/messages/"+strconv.FormatInt(chatID, 10),
		fetch.WithRoute("/rc/messages/:chatId"))
	if err != nil || out == nil {
		return nil, err
	}
	msgs := *out
	slices.SortStableFunc(msgs, func(a, b Message) int {
		return cmp.Or(b.Date.Compare(a.Date), cmp.Compare(b.MessageID, a.MessageID))
	})
	return msgs, nil
}

// Send texts a contact. A request missing required fields is rejected
// before any call is made.
func (s *Service) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	if err := validator.Validate.StructCtx(ctx, req); err != nil {
		return nil, errors.BadRequest("invalid message: %v", err).WithCause(err)
	}
	out, err := fetch.Raw[SendResult](ctx, s.client, "/rc/message",
		fetch.WithMethod(http.MethodPost),
		fetch.WithBody(req))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return &SendResult{}, nil
	}
	return out, nil
}

// Sync asks the backend to pull fresh messages from the telephony provider
func (s *Service) Sync(ctx context.Context) error {
	_, err := fetch.Raw[json.RawMessage](ctx, s.client, "/rc/update")
	return err
}
