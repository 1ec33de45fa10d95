package gateway

import (
	"context"
	"net/http"

	"github.com/fieldside/tourney-admin/internal/domain/activity"
)

// Overview is the /dashboard aggregate: counts computed server-side plus
// the most recent audit entries.
type Overview struct {
	Stats          OverviewStats    `json:"stats"`
	RecentActivity []activity.Entry `json:"recentActivity"`
}

type OverviewStats struct {
	TotalMatches int `json:"totalMatches"`
	LiveMatches  int `json:"liveMatches"`
	TotalTeams   int `json:"totalTeams"`
	TotalPlayers int `json:"totalPlayers"`
}

type DashboardGateway struct {
	transport *Transport
}

func NewDashboardGateway(transport *Transport) *DashboardGateway {
	return &DashboardGateway{transport: transport}
}

func (g *DashboardGateway) Get(ctx context.Context) (Overview, error) {
	var out Overview
	err := g.transport.do(ctx, call{method: http.MethodGet, path: "/dashboard"}, &out)
	return out, err
}
