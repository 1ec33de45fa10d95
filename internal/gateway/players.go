package gateway

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fieldside/tourney-admin/internal/domain/player"
)

// PlayerFilters narrows the players list. Zero values are not sent.
type PlayerFilters struct {
	TeamID   string
	Position string
}

func (f PlayerFilters) values() url.Values {
	out := url.Values{}
	if f.TeamID != "" {
		out.Set("team", f.TeamID)
	}
	if f.Position != "" {
		out.Set("position", f.Position)
	}
	return out
}

// PlayerPayload is the player form draft. Numeric stats stay free-form;
// the server owns consistency. Like teams, players may carry a photo, so
// the payload is always multipart.
type PlayerPayload struct {
	Name          string `validate:"required"`
	Position      string `validate:"required"`
	JerseyNumber  int
	Age           int
	Nationality   string
	Height        float64
	Weight        float64
	Bio           string
	TeamID        string `validate:"required"`
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	MatchesPlayed int
	Photo         *FileAttachment
}

func (p PlayerPayload) FormFields() map[string]string {
	return map[string]string{
		"name":          p.Name,
		"position":      p.Position,
		"jerseyNumber":  strconv.Itoa(p.JerseyNumber),
		"age":           strconv.Itoa(p.Age),
		"nationality":   p.Nationality,
		"height":        strconv.FormatFloat(p.Height, 'f', -1, 64),
		"weight":        strconv.FormatFloat(p.Weight, 'f', -1, 64),
		"bio":           p.Bio,
		"team":          p.TeamID,
		"goals":         strconv.Itoa(p.Goals),
		"assists":       strconv.Itoa(p.Assists),
		"yellowCards":   strconv.Itoa(p.YellowCards),
		"redCards":      strconv.Itoa(p.RedCards),
		"matchesPlayed": strconv.Itoa(p.MatchesPlayed),
	}
}

func (p PlayerPayload) FormFile() (string, *FileAttachment) {
	return "photo", p.Photo
}

type PlayersGateway struct {
	res resource[player.Player]
}

func NewPlayersGateway(transport *Transport) *PlayersGateway {
	return &PlayersGateway{res: newResource[player.Player](transport, "/players", DefaultPageSize)}
}

func (g *PlayersGateway) List(ctx context.Context, filters PlayerFilters, page int) (Page[player.Player], error) {
	return g.res.List(ctx, ListQuery{Page: page, Filters: filters.values()})
}

func (g *PlayersGateway) Get(ctx context.Context, id string) (player.Player, error) {
	return g.res.Get(ctx, id)
}

func (g *PlayersGateway) Create(ctx context.Context, payload PlayerPayload) (player.Player, error) {
	body, err := encodeMultipart(payload)
	if err != nil {
		return player.Player{}, err
	}
	return g.res.create(ctx, body)
}

func (g *PlayersGateway) Update(ctx context.Context, id string, payload PlayerPayload) (player.Player, error) {
	body, err := encodeMultipart(payload)
	if err != nil {
		return player.Player{}, err
	}
	return g.res.update(ctx, id, body)
}

func (g *PlayersGateway) Delete(ctx context.Context, id string) error {
	return g.res.Delete(ctx, id)
}

func (g *PlayersGateway) PageSize() int {
	return g.res.PageSize()
}
