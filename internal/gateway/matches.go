package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fieldside/tourney-admin/internal/domain/match"
)

// MatchPayload edits fixture details only. The scoreboard moves through
// ScorePayload; the two operations are independent and the server applies
// whichever lands last.
type MatchPayload struct {
	Team1ID     string `json:"team1" validate:"required"`
	Team2ID     string `json:"team2" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	Venue       string `json:"venue"`
	Location    string `json:"location"`
	Referee     string `json:"referee"`
	Description string `json:"description"`
}

// ScorePayload is the scoreboard update pushed from the live view.
type ScorePayload struct {
	Score1   int         `json:"score1"`
	Score2   int         `json:"score2"`
	Progress int         `json:"progress"`
	Status   string      `json:"status" validate:"required"`
	Stats    match.Stats `json:"matchStats"`
}

type MatchesGateway struct {
	res resource[match.Match]
}

func NewMatchesGateway(transport *Transport) *MatchesGateway {
	return &MatchesGateway{res: newResource[match.Match](transport, "/matches", DefaultPageSize)}
}

// List filters by status when one is given.
func (g *MatchesGateway) List(ctx context.Context, status string, page int) (Page[match.Match], error) {
	filters := url.Values{}
	if status != "" {
		filters.Set("status", status)
	}
	return g.res.List(ctx, ListQuery{Page: page, Filters: filters})
}

func (g *MatchesGateway) Create(ctx context.Context, payload MatchPayload) (match.Match, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return match.Match{}, err
	}
	return g.res.create(ctx, body)
}

func (g *MatchesGateway) Update(ctx context.Context, id string, payload MatchPayload) (match.Match, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return match.Match{}, err
	}
	return g.res.update(ctx, id, body)
}

// UpdateScore hits the dedicated score endpoint, leaving details untouched.
func (g *MatchesGateway) UpdateScore(ctx context.Context, id string, payload ScorePayload) (match.Match, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return match.Match{}, err
	}

	var out match.Match
	err = g.res.transport.do(ctx, call{
		method: http.MethodPut,
		path:   g.res.itemPath(id) + "/score",
		body:   body,
	}, &out)
	return out, err
}

func (g *MatchesGateway) Delete(ctx context.Context, id string) error {
	return g.res.Delete(ctx, id)
}

func (g *MatchesGateway) PageSize() int {
	return g.res.PageSize()
}
