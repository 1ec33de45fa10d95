package gateway

import (
	"context"
	"net/http"

	"github.com/fieldside/tourney-admin/internal/domain/settings"
)

// SettingsPayload replaces the singleton settings record wholesale.
type SettingsPayload struct {
	TournamentName    string `json:"tournamentName" validate:"required"`
	Season            string `json:"season"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	Location          string `json:"location"`
	Rules             string `json:"rules"`
	MaxTeams          int    `json:"maxTeams"`
	MaxPlayersPerTeam int    `json:"maxPlayersPerTeam"`
}

// SettingsGateway covers the /settings singleton: no identifier, no list,
// read and replaced as one record.
type SettingsGateway struct {
	transport *Transport
}

func NewSettingsGateway(transport *Transport) *SettingsGateway {
	return &SettingsGateway{transport: transport}
}

func (g *SettingsGateway) Get(ctx context.Context) (settings.Settings, error) {
	var out settings.Settings
	err := g.transport.do(ctx, call{method: http.MethodGet, path: "/settings"}, &out)
	return out, err
}

func (g *SettingsGateway) Replace(ctx context.Context, payload SettingsPayload) (settings.Settings, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return settings.Settings{}, err
	}

	var out settings.Settings
	err = g.transport.do(ctx, call{method: http.MethodPut, path: "/settings", body: body}, &out)
	return out, err
}
