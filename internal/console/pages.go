package console

import (
	"context"
	"fmt"

	"github.com/fieldside/tourney-admin/internal/domain/activity"
	"github.com/fieldside/tourney-admin/internal/domain/fan"
	"github.com/fieldside/tourney-admin/internal/domain/match"
	"github.com/fieldside/tourney-admin/internal/domain/player"
	"github.com/fieldside/tourney-admin/internal/domain/team"
	"github.com/fieldside/tourney-admin/internal/domain/user"
	"github.com/fieldside/tourney-admin/internal/gateway"
	"github.com/fieldside/tourney-admin/internal/platform/cache"
)

const teamOptionsCacheKey = "ref:teams"

// teamOptions loads every team for the dropdowns shared by the fixtures,
// players, and fans pages. The result is cached; team mutations invalidate
// it so the next open reloads.
func teamOptions(ctx context.Context, refs *cache.Store, teams *gateway.TeamsGateway) ([]team.Team, error) {
	loaded, err := refs.GetOrLoad(ctx, teamOptionsCacheKey, func(ctx context.Context) (any, error) {
		var out []team.Team
		for page := 1; ; page++ {
			result, err := teams.List(ctx, gateway.ListQuery{Page: page})
			if err != nil {
				return nil, err
			}
			out = append(out, result.Items...)
			if len(result.Items) == 0 || len(out) >= result.Total {
				return out, nil
			}
		}
	})
	if err != nil {
		return nil, err
	}

	options, ok := loaded.([]team.Team)
	if !ok {
		return nil, fmt.Errorf("unexpected cached team options type %T", loaded)
	}
	return options, nil
}

// FixturesPage drives the fixtures screen: the status-filtered match list,
// the details modal, and the separate score modal. Details and score are
// independent operations against the same record; the server applies them
// last-write-wins with no conflict detection.
type FixturesPage struct {
	Matches *ListController[match.Match]
	Details *FormController[gateway.MatchPayload]
	Score   *FormController[gateway.ScorePayload]

	gw    *gateway.MatchesGateway
	teams *gateway.TeamsGateway
	refs  *cache.Store
}

func NewFixturesPage(matches *gateway.MatchesGateway, teams *gateway.TeamsGateway, refs *cache.Store) *FixturesPage {
	list := NewListController(func(ctx context.Context, q gateway.ListQuery) (gateway.Page[match.Match], error) {
		return matches.List(ctx, q.Filters.Get("status"), q.Page)
	}, matches.PageSize())

	resync := func(ctx context.Context) { _ = list.Refresh(ctx) }

	details := NewFormController(FormConfig[gateway.MatchPayload]{
		Create: func(ctx context.Context, payload gateway.MatchPayload) error {
			_, err := matches.Create(ctx, payload)
			return err
		},
		Update: func(ctx context.Context, id string, payload gateway.MatchPayload) error {
			_, err := matches.Update(ctx, id, payload)
			return err
		},
		OnSaved: resync,
	})

	score := NewFormController(FormConfig[gateway.ScorePayload]{
		Empty: gateway.ScorePayload{
			Status: match.StatusLive,
			Stats:  match.Stats{Possession1: 50, Possession2: 50},
		},
		Update: func(ctx context.Context, id string, payload gateway.ScorePayload) error {
			_, err := matches.UpdateScore(ctx, id, payload)
			return err
		},
		OnSaved: resync,
	})

	return &FixturesPage{Matches: list, Details: details, Score: score, gw: matches, teams: teams, refs: refs}
}

// SetStatusFilter narrows the list to one status ("" for all), resetting
// to page 1.
func (p *FixturesPage) SetStatusFilter(ctx context.Context, status string) error {
	return p.Matches.SetFilter(ctx, "status", status)
}

func (p *FixturesPage) OpenEditDetails(m match.Match) {
	p.Details.OpenEdit(m.ID, MatchDraft(m))
}

func (p *FixturesPage) OpenScore(m match.Match) {
	p.Score.OpenEdit(m.ID, ScoreDraft(m))
}

func (p *FixturesPage) Delete(ctx context.Context, id string, confirm func() bool) error {
	return ConfirmedDelete(ctx, confirm, func(ctx context.Context) error {
		return p.gw.Delete(ctx, id)
	}, func(ctx context.Context) { _ = p.Matches.Refresh(ctx) })
}

func (p *FixturesPage) TeamOptions(ctx context.Context) ([]team.Team, error) {
	return teamOptions(ctx, p.refs, p.teams)
}

// MatchDraft pre-fills the details form from a row.
func MatchDraft(m match.Match) gateway.MatchPayload {
	startTime := ""
	if !m.StartTime.IsZero() {
		startTime = m.StartTime.Format("2006-01-02T15:04")
	}
	return gateway.MatchPayload{
		Team1ID:     m.Team1.ID,
		Team2ID:     m.Team2.ID,
		StartTime:   startTime,
		Venue:       m.Venue,
		Location:    m.Location,
		Referee:     m.Referee,
		Description: m.Description,
	}
}

// ScoreDraft pre-fills the score form from a row.
func ScoreDraft(m match.Match) gateway.ScorePayload {
	stats := m.Stats
	if stats.Possession1 == 0 && stats.Possession2 == 0 {
		stats.Possession1, stats.Possession2 = 50, 50
	}
	return gateway.ScorePayload{
		Score1:   m.Score1,
		Score2:   m.Score2,
		Progress: m.Progress,
		Status:   match.NormalizeStatus(m.Status),
		Stats:    stats,
	}
}

// TeamsPage drives the teams screen. Saving or deleting a team also
// invalidates the shared team dropdown cache.
type TeamsPage struct {
	Teams *ListController[team.Team]
	Form  *FormController[gateway.TeamPayload]

	gw   *gateway.TeamsGateway
	refs *cache.Store
}

func NewTeamsPage(teams *gateway.TeamsGateway, refs *cache.Store) *TeamsPage {
	list := NewListController(func(ctx context.Context, q gateway.ListQuery) (gateway.Page[team.Team], error) {
		return teams.List(ctx, q)
	}, teams.PageSize())

	resync := func(ctx context.Context) {
		refs.Delete(ctx, teamOptionsCacheKey)
		_ = list.Refresh(ctx)
	}

	form := NewFormController(FormConfig[gateway.TeamPayload]{
		Create: func(ctx context.Context, payload gateway.TeamPayload) error {
			_, err := teams.Create(ctx, payload)
			return err
		},
		Update: func(ctx context.Context, id string, payload gateway.TeamPayload) error {
			_, err := teams.Update(ctx, id, payload)
			return err
		},
		OnSaved: resync,
	})

	return &TeamsPage{Teams: list, Form: form, gw: teams, refs: refs}
}

func (p *TeamsPage) OpenEdit(t team.Team) {
	p.Form.OpenEdit(t.ID, gateway.TeamPayload{
		Name:        t.Name,
		Description: t.Description,
		City:        t.City,
		Coach:       t.Coach,
	})
}

func (p *TeamsPage) Delete(ctx context.Context, id string, confirm func() bool) error {
	return ConfirmedDelete(ctx, confirm, func(ctx context.Context) error {
		return p.gw.Delete(ctx, id)
	}, func(ctx context.Context) {
		p.refs.Delete(ctx, teamOptionsCacheKey)
		_ = p.Teams.Refresh(ctx)
	})
}

// PlayersPage drives the players screen with its team and position filters.
type PlayersPage struct {
	Players *ListController[player.Player]
	Form    *FormController[gateway.PlayerPayload]

	gw    *gateway.PlayersGateway
	teams *gateway.TeamsGateway
	refs  *cache.Store
}

func NewPlayersPage(players *gateway.PlayersGateway, teams *gateway.TeamsGateway, refs *cache.Store) *PlayersPage {
	list := NewListController(func(ctx context.Context, q gateway.ListQuery) (gateway.Page[player.Player], error) {
		return players.List(ctx, gateway.PlayerFilters{
			TeamID:   q.Filters.Get("team"),
			Position: q.Filters.Get("position"),
		}, q.Page)
	}, players.PageSize())

	resync := func(ctx context.Context) { _ = list.Refresh(ctx) }

	form := NewFormController(FormConfig[gateway.PlayerPayload]{
		Empty: gateway.PlayerPayload{Position: player.PositionForward},
		Create: func(ctx context.Context, payload gateway.PlayerPayload) error {
			_, err := players.Create(ctx, payload)
			return err
		},
		Update: func(ctx context.Context, id string, payload gateway.PlayerPayload) error {
			_, err := players.Update(ctx, id, payload)
			return err
		},
		OnSaved: resync,
	})

	return &PlayersPage{Players: list, Form: form, gw: players, teams: teams, refs: refs}
}

func (p *PlayersPage) SetTeamFilter(ctx context.Context, teamID string) error {
	return p.Players.SetFilter(ctx, "team", teamID)
}

func (p *PlayersPage) SetPositionFilter(ctx context.Context, position string) error {
	return p.Players.SetFilter(ctx, "position", position)
}

func (p *PlayersPage) OpenEdit(item player.Player) {
	p.Form.OpenEdit(item.ID, gateway.PlayerPayload{
		Name:          item.Name,
		Position:      item.Position,
		JerseyNumber:  item.JerseyNumber,
		Age:           item.Age,
		Nationality:   item.Nationality,
		Height:        item.Height,
		Weight:        item.Weight,
		Bio:           item.Bio,
		TeamID:        item.Team.ID,
		Goals:         item.Goals,
		Assists:       item.Assists,
		YellowCards:   item.YellowCards,
		RedCards:      item.RedCards,
		MatchesPlayed: item.MatchesPlayed,
	})
}

func (p *PlayersPage) Delete(ctx context.Context, id string, confirm func() bool) error {
	return ConfirmedDelete(ctx, confirm, func(ctx context.Context) error {
		return p.gw.Delete(ctx, id)
	}, func(ctx context.Context) { _ = p.Players.Refresh(ctx) })
}

func (p *PlayersPage) TeamOptions(ctx context.Context) ([]team.Team, error) {
	return teamOptions(ctx, p.refs, p.teams)
}

// FansPage drives the supporters screen.
type FansPage struct {
	Fans *ListController[fan.Fan]
	Form *FormController[gateway.FanPayload]

	gw    *gateway.FansGateway
	teams *gateway.TeamsGateway
	refs  *cache.Store
}

func NewFansPage(fans *gateway.FansGateway, teams *gateway.TeamsGateway, refs *cache.Store) *FansPage {
	list := NewListController(func(ctx context.Context, q gateway.ListQuery) (gateway.Page[fan.Fan], error) {
		return fans.List(ctx, q.Filters.Get("team"), q.Page)
	}, fans.PageSize())

	resync := func(ctx context.Context) { _ = list.Refresh(ctx) }

	form := NewFormController(FormConfig[gateway.FanPayload]{
		Empty: gateway.FanPayload{MembershipLevel: fan.MembershipRegular},
		Create: func(ctx context.Context, payload gateway.FanPayload) error {
			_, err := fans.Create(ctx, payload)
			return err
		},
		Update: func(ctx context.Context, id string, payload gateway.FanPayload) error {
			_, err := fans.Update(ctx, id, payload)
			return err
		},
		OnSaved: resync,
	})

	return &FansPage{Fans: list, Form: form, gw: fans, teams: teams, refs: refs}
}

func (p *FansPage) SetTeamFilter(ctx context.Context, teamID string) error {
	return p.Fans.SetFilter(ctx, "team", teamID)
}

func (p *FansPage) OpenEdit(item fan.Fan) {
	joinDate := ""
	if !item.JoinDate.IsZero() {
		joinDate = item.JoinDate.Format("2006-01-02")
	}
	membership := item.MembershipLevel
	if membership == "" {
		membership = fan.MembershipRegular
	}
	p.Form.OpenEdit(item.ID, gateway.FanPayload{
		Name:            item.Name,
		Email:           item.Email,
		Phone:           item.Phone,
		TeamID:          item.Team.ID,
		JoinDate:        joinDate,
		MembershipLevel: membership,
		Interests:       item.Interests,
		Bio:             item.Bio,
	})
}

func (p *FansPage) Delete(ctx context.Context, id string, confirm func() bool) error {
	return ConfirmedDelete(ctx, confirm, func(ctx context.Context) error {
		return p.gw.Delete(ctx, id)
	}, func(ctx context.Context) { _ = p.Fans.Refresh(ctx) })
}

func (p *FansPage) TeamOptions(ctx context.Context) ([]team.Team, error) {
	return teamOptions(ctx, p.refs, p.teams)
}

// UsersPage manages admin accounts.
type UsersPage struct {
	Users *ListController[user.Account]
	Form  *FormController[gateway.UserPayload]

	gw *gateway.UsersGateway
}

func NewUsersPage(users *gateway.UsersGateway) *UsersPage {
	list := NewListController(func(ctx context.Context, q gateway.ListQuery) (gateway.Page[user.Account], error) {
		return users.List(ctx, q.Page)
	}, users.PageSize())

	resync := func(ctx context.Context) { _ = list.Refresh(ctx) }

	form := NewFormController(FormConfig[gateway.UserPayload]{
		Empty: gateway.UserPayload{Role: user.RoleAdmin},
		Create: func(ctx context.Context, payload gateway.UserPayload) error {
			_, err := users.Create(ctx, payload)
			return err
		},
		Update: func(ctx context.Context, id string, payload gateway.UserPayload) error {
			_, err := users.Update(ctx, id, payload)
			return err
		},
		OnSaved: resync,
	})

	return &UsersPage{Users: list, Form: form, gw: users}
}

func (p *UsersPage) OpenEdit(item user.Account) {
	p.Form.OpenEdit(item.ID, gateway.UserPayload{
		Name:  item.Name,
		Email: item.Email,
		Role:  item.Role,
	})
}

func (p *UsersPage) Delete(ctx context.Context, id string, confirm func() bool) error {
	return ConfirmedDelete(ctx, confirm, func(ctx context.Context) error {
		return p.gw.Delete(ctx, id)
	}, func(ctx context.Context) { _ = p.Users.Refresh(ctx) })
}

// ActivityPage is the read-only audit trail, paginated at 20 per page.
// There is no form and no delete; entries are written server-side.
type ActivityPage struct {
	Entries *ListController[activity.Entry]
}

func NewActivityPage(logs *gateway.ActivityGateway) *ActivityPage {
	list := NewListController(func(ctx context.Context, q gateway.ListQuery) (gateway.Page[activity.Entry], error) {
		return logs.List(ctx, q.Page)
	}, logs.PageSize())
	return &ActivityPage{Entries: list}
}

// SettingsPage edits the tournament singleton. There is no list and no
// delete; the record is loaded once and replaced wholesale on save.
type SettingsPage struct {
	Form *FormController[gateway.SettingsPayload]

	gw *gateway.SettingsGateway
}

const settingsEditTarget = "settings"

func NewSettingsPage(gw *gateway.SettingsGateway) *SettingsPage {
	form := NewFormController(FormConfig[gateway.SettingsPayload]{
		Update: func(ctx context.Context, _ string, payload gateway.SettingsPayload) error {
			_, err := gw.Replace(ctx, payload)
			return err
		},
	})

	return &SettingsPage{Form: form, gw: gw}
}

// Load fetches the current settings and opens the form pre-filled.
func (p *SettingsPage) Load(ctx context.Context) error {
	current, err := p.gw.Get(ctx)
	if err != nil {
		return err
	}

	startDate := ""
	if !current.StartDate.IsZero() {
		startDate = current.StartDate.Format("2006-01-02")
	}
	endDate := ""
	if !current.EndDate.IsZero() {
		endDate = current.EndDate.Format("2006-01-02")
	}

	p.Form.OpenEdit(settingsEditTarget, gateway.SettingsPayload{
		TournamentName:    current.TournamentName,
		Season:            current.Season,
		StartDate:         startDate,
		EndDate:           endDate,
		Location:          current.Location,
		Rules:             current.Rules,
		MaxTeams:          current.MaxTeams,
		MaxPlayersPerTeam: current.MaxPlayersPerTeam,
	})

	return nil
}
