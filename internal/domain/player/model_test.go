package player

import "testing"

func TestNormalizePosition(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"gk":         PositionGoalkeeper,
		"Goalkeeper": PositionGoalkeeper,
		"keeper":     PositionGoalkeeper,
		"  def ":     PositionDefender,
		"Midfielder": PositionMidfielder,
		"striker":    PositionForward,
		"FWD":        PositionForward,
		"libero":     "libero",
	}
	for in, want := range cases {
		if got := NormalizePosition(in); got != want {
			t.Fatalf("NormalizePosition(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestIsValidPositionCoversClosedSet(t *testing.T) {
	t.Parallel()

	for _, position := range Positions() {
		if !IsValidPosition(position) {
			t.Fatalf("expected %q to be valid", position)
		}
	}
	if IsValidPosition("goalkeeper") {
		t.Fatalf("positions are the short codes only")
	}
}
