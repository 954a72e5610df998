package dashboard

import (
	"encoding/json"
	"time"
)

type Location struct {
	Name         string `json:"name"`
	ID           string `json:"id"`
	IsIntegrated bool   `json:"isIntegrated"`
}

// ReportSettings lists what a report can be filtered by
type ReportSettings struct {
	Locations []Location `json:"locations"`
	Tags      []string   `json:"tags"`
}

// LocationConfig is the per-location CRM and Zenoti mapping
type LocationConfig struct {
	Name               string  `json:"name"`
	ID                 string  `json:"id"`
	PipelineID         string  `json:"pipelineId"`
	BookID             string  `json:"bookId"`
	SalesID            string  `json:"salesId"`
	NoShowsID          string  `json:"noShowsId"`
	ShowNoSaleID       string  `json:"showNoSaleId"`
	MemberID           string  `json:"memberId"`
	TrackNewLeads      bool    `json:"trackNewLeads"`
	ZenotiAPI          string  `json:"zenotiApi"`
	ZenotiURL          string  `json:"zenotiUrl"`
	ZenotiCenterID     string  `json:"zenotiCenterId"`
	ZenotiCenterName   string  `json:"zenotiCenterName"`
	ZenotiServiceID    string  `json:"zenotiServiceId"`
	ZenotiServiceName  string  `json:"zenotiServiceName"`
	ZenotiServicePrice float64 `json:"zenotiServicePrice"`
	SyncCalendars      bool    `json:"syncCalendars"`
	SyncContacts       bool    `json:"syncContacts"`
	AutoCreateContacts bool    `json:"autoCreateContacts"`
}

type Stage struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type Pipeline struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Stages []Stage `json:"stages"`
}

type Workflow struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// LocationSettings is what the settings page edits for one location
type LocationSettings struct {
	Location  LocationConfig `json:"location"`
	Pipelines []Pipeline     `json:"pipelines"`
	Workflows []Workflow     `json:"workflows"`
}

type OauthLinks struct {
	URL    string `json:"url"`
	Update string `json:"update"`
}

type ZenotiCenter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ZenotiCenters struct {
	Centers []ZenotiCenter `json:"centers"`
	URL     string         `json:"url"`
}

type ZenotiService struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StatsRequest filters a stats tile. Field names match the backend's
// exported struct fields.
type StatsRequest struct {
	From      time.Time `json:"From"`
	To        time.Time `json:"To"`
	Locations []string  `json:"Locations"`
	Tags      []string  `json:"Tags"`
}

// ExpenseRequest records spend for locations over a period
type ExpenseRequest struct {
	Locations []string  `json:"Locations"`
	From      time.Time `json:"From"`
	To        time.Time `json:"To"`
	Total     float64   `json:"Total"`
}

// Tile is one loaded stats resource
type Tile struct {
	Resource string          `json:"resource"`
	Data     json.RawMessage `json:"data,omitempty"`
	Err      error           `json:"-"`
}
