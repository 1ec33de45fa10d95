package match

import "testing"

func TestScorelineHidesScoreBeforeKickoff(t *testing.T) {
	t.Parallel()

	m := Match{Status: StatusScheduled, Score1: 0, Score2: 0}
	if got := m.Scoreline(); got != "— : —" {
		t.Fatalf("scheduled match must hide the score, got=%q", got)
	}

	m.Status = StatusLive
	m.Score1, m.Score2 = 2, 1
	if got := m.Scoreline(); got != "2 : 1" {
		t.Fatalf("unexpected live scoreline: %q", got)
	}

	m.Status = StatusCompleted
	if got := m.Scoreline(); got != "2 : 1" {
		t.Fatalf("unexpected final scoreline: %q", got)
	}
}

func TestNormalizeStatusDefaultsToScheduled(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":           StatusScheduled,
		"  LIVE  ":   StatusLive,
		"Completed":  StatusCompleted,
		"scheduled":  StatusScheduled,
		"half-time?": "half-time?",
	}
	for in, want := range cases {
		if got := NormalizeStatus(in); got != want {
			t.Fatalf("NormalizeStatus(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	t.Parallel()

	for _, status := range Statuses() {
		if !IsValidStatus(status) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if IsValidStatus("postponed") {
		t.Fatalf("unknown status must be invalid")
	}
}

func TestOpponentsToleratesMissingTeams(t *testing.T) {
	t.Parallel()

	m := Match{Team1: TeamRef{Name: "Rovers"}}
	if got := m.Opponents(); got != "Rovers vs TBD" {
		t.Fatalf("unexpected opponents: %q", got)
	}
}
