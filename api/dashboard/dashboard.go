// Package dashboard binds the reporting dashboard's settings and stats
// routes. Every route answers with the standard envelope.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/kochabx/dashkit/core/fetch"
)

const msgSettingsSaved = "Settings are saved"

type Service struct {
	client *fetch.Client
}

func New(client *fetch.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Locations(ctx context.Context) ([]Location, error) {
	out, err := fetch.Fetch[[]Location](ctx, s.client, "/settings/locations")
	return deref(out), err
}

func (s *Service) LocationSettings(ctx context.Context, id string) (*LocationSettings, error) {
	return fetch.Fetch[LocationSettings](ctx, s.client, "/settings/locations/"+url.PathEscape(id),
		fetch.WithRoute("/settings/locations/:id"))
}

// SaveLocation stores the location mapping and tells the user it was saved
func (s *Service) SaveLocation(ctx context.Context, id string, loc LocationConfig) error {
	_, err := fetch.Fetch[json.RawMessage](ctx, s.client, "/settings/locations/"+url.PathEscape(id),
		fetch.WithMethod(http.MethodPost),
		fetch.WithBody(loc),
		fetch.WithRoute("/settings/locations/:id"))
	if err != nil {
		return err
	}
	s.client.Notifier().Info(msgSettingsSaved)
	return nil
}

func (s *Service) OauthLinks(ctx context.Context) (*OauthLinks, error) {
	return fetch.Fetch[OauthLinks](ctx, s.client, "/settings/oauthLinks")
}

func (s *Service) Workflows(ctx context.Context, locationID string) ([]Workflow, error) {
	out, err := fetch.Fetch[[]Workflow](ctx, s.client, "/settings/workflows/"+url.PathEscape(locationID),
		fetch.WithRoute("/settings/workflows/:id"))
	return deref(out), err
}

func (s *Service) ZenotiCenters(ctx context.Context, api string) (*ZenotiCenters, error) {
	return fetch.Fetch[ZenotiCenters](ctx, s.client, "/settings/zenoti-centers/"+url.PathEscape(api),
		fetch.WithRoute("/settings/zenoti-centers/:api"))
}

// ZenotiServices never returns nil on success
func (s *Service) ZenotiServices(ctx context.Context, api, centerID string) ([]ZenotiService, error) {
	out, err := fetch.Fetch[[]ZenotiService](ctx, s.client,
		"/settings/zenoti-centers/"+url.PathEscape(api)+"/"+url.PathEscape(centerID)+"/services",
		fetch.WithRoute("/settings/zenoti-centers/:api/:center/services"))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []ZenotiService{}, nil
	}
	return *out, nil
}

func (s *Service) ReportSettings(ctx context.Context) (*ReportSettings, error) {
	return fetch.Fetch[ReportSettings](ctx, s.client, "/reports/settings")
}

// Stats loads one tile resource. The payload shape depends on the resource,
// so it is returned undecoded.
func (s *Service) Stats(ctx context.Context, resource string, req StatsRequest) (json.RawMessage, error) {
	out, err := fetch.Fetch[json.RawMessage](ctx, s.client, "/reports/stats/"+url.PathEscape(resource),
		fetch.WithBody(req),
		fetch.WithRoute("/reports/stats/:resource"))
	return deref(out), err
}

func (s *Service) SetExpense(ctx context.Context, req ExpenseRequest) error {
	_, err := fetch.Fetch[json.RawMessage](ctx, s.client, "/reports/setExpense", fetch.WithBody(req))
	return err
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
