package app

import (
	"fmt"

	"github.com/fieldside/tourney-admin/internal/config"
	"github.com/fieldside/tourney-admin/internal/console"
	"github.com/fieldside/tourney-admin/internal/export"
	"github.com/fieldside/tourney-admin/internal/gateway"
	"github.com/fieldside/tourney-admin/internal/platform/cache"
	"github.com/fieldside/tourney-admin/internal/platform/logging"
	"github.com/fieldside/tourney-admin/internal/platform/resilience"
	"github.com/fieldside/tourney-admin/internal/session"
)

// App wires the whole console: session, transport, typed gateways, and the
// per-screen controllers on top of them.
type App struct {
	Config  config.Config
	Logger  *logging.Logger
	Session *session.Store

	Auth      *gateway.AuthGateway
	Teams     *gateway.TeamsGateway
	Players   *gateway.PlayersGateway
	Matches   *gateway.MatchesGateway
	Fans      *gateway.FansGateway
	Users     *gateway.UsersGateway
	Settings  *gateway.SettingsGateway
	Activity  *gateway.ActivityGateway
	Dashboard *gateway.DashboardGateway

	DashboardPage *console.DashboardPage
	Fixtures      *console.FixturesPage
	TeamsPage     *console.TeamsPage
	PlayersPage   *console.PlayersPage
	FansPage      *console.FansPage
	UsersPage     *console.UsersPage
	SettingsPage  *console.SettingsPage
	ActivityPage  *console.ActivityPage

	Export *export.Service
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	tokens, err := session.NewFileTokenStorage(cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("token storage: %w", err)
	}

	// The store and the transport reference each other: the transport
	// reads tokens from the store, the store logs in through a gateway
	// built on the transport. The authenticator is wired in last.
	store := session.NewStore(nil, tokens, logger)

	var breaker resilience.CircuitBreakerConfig
	if cfg.CircuitEnabled {
		breaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		}
	}

	transport := gateway.NewTransport(gateway.TransportConfig{
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.APITimeout,
		Logger:         logger,
		Instrument:     cfg.UptraceEnabled,
		DedupeReads:    cfg.SingleflightEnabled,
		CircuitBreaker: breaker,
	}, store)

	auth := gateway.NewAuthGateway(transport)
	store.SetAuthenticator(auth)

	refs := cache.NewStore(cfg.ReferenceCacheTTL)

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Session:   store,
		Auth:      auth,
		Teams:     gateway.NewTeamsGateway(transport),
		Players:   gateway.NewPlayersGateway(transport),
		Matches:   gateway.NewMatchesGateway(transport),
		Fans:      gateway.NewFansGateway(transport),
		Users:     gateway.NewUsersGateway(transport),
		Settings:  gateway.NewSettingsGateway(transport),
		Activity:  gateway.NewActivityGateway(transport),
		Dashboard: gateway.NewDashboardGateway(transport),
	}

	a.DashboardPage = console.NewDashboardPage(a.Dashboard, a.Activity, logger)
	a.Fixtures = console.NewFixturesPage(a.Matches, a.Teams, refs)
	a.TeamsPage = console.NewTeamsPage(a.Teams, refs)
	a.PlayersPage = console.NewPlayersPage(a.Players, a.Teams, refs)
	a.FansPage = console.NewFansPage(a.Fans, a.Teams, refs)
	a.UsersPage = console.NewUsersPage(a.Users)
	a.SettingsPage = console.NewSettingsPage(a.Settings)
	a.ActivityPage = console.NewActivityPage(a.Activity)

	a.Export = export.NewService(export.Config{
		Teams:    a.Teams,
		Players:  a.Players,
		Matches:  a.Matches,
		Fans:     a.Fans,
		Users:    a.Users,
		Logs:     a.Activity,
		Settings: a.Settings,
		Logger:   logger,
	})

	return a, nil
}
