package export

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/fieldside/tourney-admin/internal/domain/activity"
	"github.com/fieldside/tourney-admin/internal/domain/fan"
	"github.com/fieldside/tourney-admin/internal/domain/match"
	"github.com/fieldside/tourney-admin/internal/domain/player"
	"github.com/fieldside/tourney-admin/internal/domain/settings"
	"github.com/fieldside/tourney-admin/internal/domain/team"
	"github.com/fieldside/tourney-admin/internal/domain/user"
	"github.com/fieldside/tourney-admin/internal/gateway"
	"github.com/fieldside/tourney-admin/internal/platform/logging"
)

// Service snapshots the tournament data set by walking every collection
// page by page through the same gateways the console uses. Collections
// are independent, so they drain on a bounded worker pool.
type Service struct {
	teams    *gateway.TeamsGateway
	players  *gateway.PlayersGateway
	matches  *gateway.MatchesGateway
	fans     *gateway.FansGateway
	users    *gateway.UsersGateway
	logs     *gateway.ActivityGateway
	settings *gateway.SettingsGateway
	logger   *logging.Logger
}

type Config struct {
	Teams    *gateway.TeamsGateway
	Players  *gateway.PlayersGateway
	Matches  *gateway.MatchesGateway
	Fans     *gateway.FansGateway
	Users    *gateway.UsersGateway
	Logs     *gateway.ActivityGateway
	Settings *gateway.SettingsGateway
	Logger   *logging.Logger
}

func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		teams:    cfg.Teams,
		players:  cfg.Players,
		matches:  cfg.Matches,
		fans:     cfg.Fans,
		users:    cfg.Users,
		logs:     cfg.Logs,
		settings: cfg.Settings,
		logger:   logger,
	}
}

type Input struct {
	// Collections narrows the snapshot; empty means all of them.
	Collections []string
	MaxWorkers  int
}

type Result struct {
	TaskCount    int          `json:"task_count"`
	SuccessCount int          `json:"success_count"`
	FailedCount  int          `json:"failed_count"`
	WorkerCount  int          `json:"worker_count"`
	Tasks        []TaskResult `json:"tasks"`
	Bundle       Bundle       `json:"bundle"`
}

type TaskResult struct {
	Collection string `json:"collection"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// Bundle is the JSON-ready snapshot payload.
type Bundle struct {
	ExportedAt   time.Time          `json:"exportedAt"`
	Teams        []team.Team        `json:"teams,omitempty"`
	Players      []player.Player    `json:"players,omitempty"`
	Matches      []match.Match      `json:"matches,omitempty"`
	Fans         []fan.Fan          `json:"fans,omitempty"`
	Users        []user.Account     `json:"users,omitempty"`
	ActivityLogs []activity.Entry   `json:"activityLogs,omitempty"`
	Settings     *settings.Settings `json:"settings,omitempty"`
}

const (
	statusSuccess = "success"
	statusFailed  = "failed"

	collectionTeams    = "teams"
	collectionPlayers  = "players"
	collectionMatches  = "matches"
	collectionFans     = "fans"
	collectionUsers    = "users"
	collectionActivity = "activity-logs"
	collectionSettings = "settings"
)

func allCollections() []string {
	return []string{
		collectionTeams,
		collectionPlayers,
		collectionMatches,
		collectionFans,
		collectionUsers,
		collectionActivity,
		collectionSettings,
	}
}

// Snapshot walks the requested collections and assembles the bundle. A
// failed collection is reported per-task rather than aborting the rest.
func (s *Service) Snapshot(ctx context.Context, input Input) (Result, error) {
	names, err := normalizeCollections(input.Collections)
	if err != nil {
		return Result{}, err
	}

	workerCount := normalizeWorkerCount(input.MaxWorkers, len(names))
	result := Result{
		TaskCount:   len(names),
		WorkerCount: workerCount,
		Tasks:       make([]TaskResult, 0, len(names)),
		Bundle:      Bundle{ExportedAt: time.Now().UTC()},
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return Result{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan TaskResult, len(names))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var bundleMu sync.Mutex

	var workers sync.WaitGroup
	for _, name := range names {
		name := name
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := TaskResult{Collection: name}

			records, err := s.runTask(ctx, name, &result.Bundle, &bundleMu)
			row.Records = records
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				row.Status = statusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "snapshot collection failed", "collection", name, "error", err)
			} else {
				row.Status = statusSuccess
				successCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return Result{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].Collection < result.Tasks[j].Collection
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func (s *Service) runTask(ctx context.Context, name string, bundle *Bundle, mu *sync.Mutex) (int, error) {
	switch name {
	case collectionTeams:
		items, err := collectAll(ctx, func(ctx context.Context, page int) (gateway.Page[team.Team], error) {
			return s.teams.List(ctx, gateway.ListQuery{Page: page})
		})
		if err != nil {
			return 0, err
		}
		mu.Lock()
		bundle.Teams = items
		mu.Unlock()
		return len(items), nil
	case collectionPlayers:
		items, err := collectAll(ctx, func(ctx context.Context, page int) (gateway.Page[player.Player], error) {
			return s.players.List(ctx, gateway.PlayerFilters{}, page)
		})
		if err != nil {
			return 0, err
		}
		mu.Lock()
		bundle.Players = items
		mu.Unlock()
		return len(items), nil
	case collectionMatches:
		items, err := collectAll(ctx, func(ctx context.Context, page int) (gateway.Page[match.Match], error) {
			return s.matches.List(ctx, "", page)
		})
		if err != nil {
			return 0, err
		}
		mu.Lock()
		bundle.Matches = items
		mu.Unlock()
		return len(items), nil
	case collectionFans:
		items, err := collectAll(ctx, func(ctx context.Context, page int) (gateway.Page[fan.Fan], error) {
			return s.fans.List(ctx, "", page)
		})
		if err != nil {
			return 0, err
		}
		mu.Lock()
		bundle.Fans = items
		mu.Unlock()
		return len(items), nil
	case collectionUsers:
		items, err := collectAll(ctx, func(ctx context.Context, page int) (gateway.Page[user.Account], error) {
			return s.users.List(ctx, page)
		})
		if err != nil {
			return 0, err
		}
		mu.Lock()
		bundle.Users = items
		mu.Unlock()
		return len(items), nil
	case collectionActivity:
		items, err := collectAll(ctx, func(ctx context.Context, page int) (gateway.Page[activity.Entry], error) {
			return s.logs.List(ctx, page)
		})
		if err != nil {
			return 0, err
		}
		mu.Lock()
		bundle.ActivityLogs = items
		mu.Unlock()
		return len(items), nil
	case collectionSettings:
		current, err := s.settings.Get(ctx)
		if err != nil {
			return 0, err
		}
		mu.Lock()
		bundle.Settings = &current
		mu.Unlock()
		return 1, nil
	default:
		return 0, fmt.Errorf("unsupported collection %q", name)
	}
}

// collectAll drains a paginated listing. The server reports the full count
// on every page, so draining stops once the accumulated items cover it or
// a page comes back empty.
func collectAll[T any](ctx context.Context, fetch func(ctx context.Context, page int) (gateway.Page[T], error)) ([]T, error) {
	var out []T
	for page := 1; ; page++ {
		result, err := fetch(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("list page %d: %w", page, err)
		}
		out = append(out, result.Items...)
		if len(result.Items) == 0 || len(out) >= result.Total {
			return out, nil
		}
	}
}

func normalizeCollections(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return allCollections(), nil
	}

	known := make(map[string]struct{}, len(allCollections()))
	for _, name := range allCollections() {
		known[name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		name := strings.TrimSpace(strings.ToLower(item))
		if name == "" {
			continue
		}
		name = strings.ReplaceAll(name, "_", "-")
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unsupported collection %q", item)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no collections requested")
	}
	return out, nil
}

func normalizeWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 2
	}
	if value > 4 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
