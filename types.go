package sendlog

import (
	"encoding/json"

	"github.com/totegamma/sendlog/internal/domain"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string         `json:"message"`
	User    domain.Profile `json:"user"`
}

// RouteRequest is the POST /routes envelope. Action is "archive" or "add";
// add accepts either a single route or a routes array.
type RouteRequest struct {
	Action string          `json:"action"`
	RID    int64           `json:"rid,omitempty"`
	Route  json.RawMessage `json:"route,omitempty"`
	Routes json.RawMessage `json:"routes,omitempty"`
}

// MiscRequest is the POST /misc_additions envelope. CompanyName and Suburb
// scope location batches; other entities carry everything in Data.
type MiscRequest struct {
	Entity      string          `json:"entity" validate:"required"`
	Data        json.RawMessage `json:"data"`
	CompanyName string          `json:"companyName,omitempty"`
	Suburb      string          `json:"suburb,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type AttemptAddedResponse struct {
	Message   string `json:"message"`
	AttemptNo int    `json:"attemptNo"`
}

type RoutesAddedResponse struct {
	Message string  `json:"message"`
	RIDs    []int64 `json:"rids"`
}

type AttemptsResponse struct {
	Attempts []domain.AttemptView `json:"attempts"`
}

type ProjectsResponse struct {
	Projects []domain.Project `json:"projects"`
}

type RoutesResponse struct {
	Routes []domain.Route `json:"routes"`
}

type ResultsResponse[T any] struct {
	Results T `json:"results"`
}

type ClimbTypeLocations struct {
	ClimbTypes []string          `json:"climbtypes"`
	Locations  []domain.Location `json:"locations"`
}

// RealtimeRequest is a client frame on /realtime. "listen" adds channels for the
// life of the socket; "h" is a heartbeat.
type RealtimeRequest struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels"`
}

type Endpoint struct {
	Template string    `json:"template"`
	Method   []string  `json:"method"`
	Query    *[]string `json:"query,omitempty"`
}

type WellKnown struct {
	Version   string              `json:"version"`
	Endpoints map[string]Endpoint `json:"endpoints"`
}
