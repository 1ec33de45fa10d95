package console

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/fieldside/tourney-admin/internal/domain/activity"
	"github.com/fieldside/tourney-admin/internal/gateway"
	"github.com/fieldside/tourney-admin/internal/platform/logging"
)

// DashboardPage aggregates the landing view: headline stats plus the first
// page of the audit trail, fetched concurrently. A failure on either leg
// fails the whole load; the page renders complete or not at all.
type DashboardPage struct {
	overview *gateway.DashboardGateway
	logs     *gateway.ActivityGateway
	logger   *logging.Logger

	mu       sync.Mutex
	state    ListState
	snapshot DashboardSnapshot
	errMsg   string
}

type DashboardSnapshot struct {
	Stats          gateway.OverviewStats
	RecentActivity []activity.Entry
	AuditTrail     []activity.Entry
}

func NewDashboardPage(overview *gateway.DashboardGateway, logs *gateway.ActivityGateway, logger *logging.Logger) *DashboardPage {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardPage{overview: overview, logs: logs, logger: logger, state: StateIdle}
}

// Refresh loads both legs of the dashboard. The overview endpoint already
// carries a short recent-activity strip; the first audit page is fetched
// alongside it for the full-width panel.
func (p *DashboardPage) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.state = StateLoading
	p.errMsg = ""
	p.mu.Unlock()

	var (
		overview gateway.Overview
		trail    gateway.Page[activity.Entry]
	)

	group := pool.New().WithContext(ctx).WithCancelOnError()
	group.Go(func(ctx context.Context) error {
		var err error
		overview, err = p.overview.Get(ctx)
		return err
	})
	group.Go(func(ctx context.Context) error {
		var err error
		trail, err = p.logs.List(ctx, 1)
		return err
	})

	if err := group.Wait(); err != nil {
		p.logger.ErrorContext(ctx, "dashboard refresh failed", "error", err)
		p.mu.Lock()
		p.state = StateReady
		p.errMsg = displayMessage(err)
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.state = StateReady
	p.snapshot = DashboardSnapshot{
		Stats:          overview.Stats,
		RecentActivity: overview.RecentActivity,
		AuditTrail:     trail.Items,
	}
	p.mu.Unlock()
	return nil
}

func (p *DashboardPage) State() ListState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *DashboardPage) Snapshot() DashboardSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

func (p *DashboardPage) Error() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}
