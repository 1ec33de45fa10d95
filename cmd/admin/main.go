package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"

	"github.com/fieldside/tourney-admin/internal/app"
	"github.com/fieldside/tourney-admin/internal/config"
	"github.com/fieldside/tourney-admin/internal/console"
	"github.com/fieldside/tourney-admin/internal/export"
	"github.com/fieldside/tourney-admin/internal/observability"
	"github.com/fieldside/tourney-admin/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}()

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, a, os.Args[1:]); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, args []string) error {
	cmd := "dashboard"
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "login":
		return runLogin(ctx, a)
	case "logout":
		a.Session.Logout()
		fmt.Println("Logged out.")
		return nil
	}

	if err := ensureSession(ctx, a); err != nil {
		return err
	}

	switch cmd {
	case "dashboard":
		return runDashboard(ctx, a)
	case "list":
		return runList(ctx, a, args)
	case "export":
		return runExport(ctx, a, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: admin <command> [flags]

Commands:
  login                      authenticate with ADMIN_EMAIL / ADMIN_PASSWORD
  logout                     drop the persisted session token
  dashboard                  show headline stats and recent activity (default)
  list <entity> [flags]      list teams|players|matches|fans|users|activity
  export [flags]             snapshot collections to JSON`)
}

// ensureSession logs in with the configured credentials when no persisted
// token is available.
func ensureSession(ctx context.Context, a *app.App) error {
	if a.Session.Authenticated() {
		return nil
	}
	if a.Config.AdminEmail == "" {
		return fmt.Errorf("not logged in: run `admin login` with ADMIN_EMAIL and ADMIN_PASSWORD set")
	}

	status := a.Session.Login(ctx, a.Config.AdminEmail, a.Config.AdminPassword)
	if !status.OK {
		return fmt.Errorf("login failed: %s", status.Message)
	}
	return nil
}

func runLogin(ctx context.Context, a *app.App) error {
	if a.Config.AdminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL is not set")
	}

	status := a.Session.Login(ctx, a.Config.AdminEmail, a.Config.AdminPassword)
	if !status.OK {
		return fmt.Errorf("login failed: %s", status.Message)
	}

	if identity, ok := a.Session.Identity(); ok {
		fmt.Printf("Logged in as %s (%s)\n", identity.Name, identity.Role)
	} else {
		fmt.Println("Logged in.")
	}
	return nil
}

func runDashboard(ctx context.Context, a *app.App) error {
	if err := a.DashboardPage.Refresh(ctx); err != nil {
		return err
	}
	snapshot := a.DashboardPage.Snapshot()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATCHES\tLIVE\tTEAMS\tPLAYERS")
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\n",
		snapshot.Stats.TotalMatches,
		snapshot.Stats.LiveMatches,
		snapshot.Stats.TotalTeams,
		snapshot.Stats.TotalPlayers,
	)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(snapshot.RecentActivity) == 0 {
		return nil
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tADMIN\tACTION")
	for _, entry := range snapshot.RecentActivity {
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.CreatedAt.Format("2006-01-02 15:04"), entry.Admin.Name, entry.Action)
	}
	return w.Flush()
}

func runList(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("list needs an entity: teams|players|matches|fans|users|activity")
	}
	entity := args[0]

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	status := fs.String("status", "", "match status filter (scheduled|live|completed)")
	teamID := fs.String("team", "", "team id filter (players, fans)")
	position := fs.String("position", "", "position filter (players)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	return dispatchList(ctx, a, entity, *page, *status, *teamID, *position)
}

// loadPage refreshes once to learn the total, then navigates; page numbers
// beyond the end clamp to the last page.
func loadPage[T any](ctx context.Context, ctrl *console.ListController[T], page int) (console.Snapshot[T], error) {
	if err := ctrl.Refresh(ctx); err != nil {
		return console.Snapshot[T]{}, err
	}
	if page > 1 {
		if err := ctrl.GoToPage(ctx, page); err != nil {
			return console.Snapshot[T]{}, err
		}
	}
	return ctrl.Snapshot(), nil
}

func dispatchList(ctx context.Context, a *app.App, entity string, page int, status, teamID, position string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	switch entity {
	case "teams":
		snapshot, err := loadPage(ctx, a.TeamsPage.Teams, page)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tCITY\tCOACH\tPTS")
		for _, row := range snapshot.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", row.ID, row.Name, row.City, row.Coach, row.Points)
		}
		footer(w, snapshot.Page, snapshot.TotalPages, snapshot.Total)
	case "players":
		if teamID != "" {
			if err := a.PlayersPage.SetTeamFilter(ctx, teamID); err != nil {
				return err
			}
		}
		if position != "" {
			if err := a.PlayersPage.SetPositionFilter(ctx, position); err != nil {
				return err
			}
		}
		snapshot, err := loadPage(ctx, a.PlayersPage.Players, page)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tPOS\tTEAM\tGOALS\tASSISTS")
		for _, row := range snapshot.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n", row.ID, row.Name, row.Position, row.Team.Name, row.Goals, row.Assists)
		}
		footer(w, snapshot.Page, snapshot.TotalPages, snapshot.Total)
	case "matches":
		if status != "" {
			if err := a.Fixtures.SetStatusFilter(ctx, status); err != nil {
				return err
			}
		}
		snapshot, err := loadPage(ctx, a.Fixtures.Matches, page)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tFIXTURE\tSCORE\tSTATUS\tKICKOFF")
		for _, row := range snapshot.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				row.ID, row.Opponents(), row.Scoreline(), row.Status, row.StartTime.Format("2006-01-02 15:04"))
		}
		footer(w, snapshot.Page, snapshot.TotalPages, snapshot.Total)
	case "fans":
		if teamID != "" {
			if err := a.FansPage.SetTeamFilter(ctx, teamID); err != nil {
				return err
			}
		}
		snapshot, err := loadPage(ctx, a.FansPage.Fans, page)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tTEAM\tLEVEL")
		for _, row := range snapshot.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.ID, row.Name, row.Email, row.Team.Name, row.MembershipLevel)
		}
		footer(w, snapshot.Page, snapshot.TotalPages, snapshot.Total)
	case "users":
		snapshot, err := loadPage(ctx, a.UsersPage.Users, page)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
		for _, row := range snapshot.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.ID, row.Name, row.Email, row.Role)
		}
		footer(w, snapshot.Page, snapshot.TotalPages, snapshot.Total)
	case "activity":
		snapshot, err := loadPage(ctx, a.ActivityPage.Entries, page)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "WHEN\tADMIN\tACTION")
		for _, row := range snapshot.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\n", row.CreatedAt.Format("2006-01-02 15:04"), row.Admin.Name, row.Action)
		}
		footer(w, snapshot.Page, snapshot.TotalPages, snapshot.Total)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}

	return w.Flush()
}

func footer(w *tabwriter.Writer, page, totalPages, total int) {
	fmt.Fprintf(w, "\npage %d of %d\t(%d total)\n", page, totalPages, total)
}

func runExport(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	collections := fs.String("collections", "", "comma-separated collections; empty means all")
	out := fs.String("out", "", "output file; empty writes to stdout")
	workers := fs.Int("workers", a.Config.ExportWorkers, "worker pool size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := export.Input{MaxWorkers: *workers}
	if *collections != "" {
		input.Collections = strings.Split(*collections, ",")
	}

	result, err := a.Export.Snapshot(ctx, input)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLLECTION\tSTATUS\tRECORDS\tMS")
	for _, task := range result.Tasks {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", task.Collection, task.Status, task.Records, task.DurationMs)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if result.FailedCount > 0 {
		return fmt.Errorf("%d of %d collections failed", result.FailedCount, result.TaskCount)
	}

	payload, err := sonic.ConfigDefault.MarshalIndent(result.Bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}

	if *out == "" {
		_, err = os.Stdout.Write(append(payload, '\n'))
		return err
	}
	if err := os.WriteFile(*out, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", *out)
	return nil
}
