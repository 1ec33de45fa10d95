package gateway

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/fieldside/tourney-admin/internal/domain/match"
)

func TestTeamsListSendsPageAndLimit(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"page":  r.URL.Query().Get("page"),
			"limit": r.URL.Query().Get("limit"),
		}
		w.Write([]byte(`{"items":[{"id":"t1","name":"Rovers"},{"id":"t2","name":"United"}],"total":27}`))
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewTeamsGateway(transport)

	page, err := gw.List(context.Background(), ListQuery{Page: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery["page"] != "3" || gotQuery["limit"] != "10" {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got=%d", len(page.Items))
	}
	if page.Total != 27 {
		t.Fatalf("expected total=27, got=%d", page.Total)
	}
	if page.Items[0].Name != "Rovers" {
		t.Fatalf("unexpected first item: %+v", page.Items[0])
	}
}

func TestListClampsPageBelowOne(t *testing.T) {
	t.Parallel()

	var gotPage string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(`{"items":[],"total":0}`))
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewTeamsGateway(transport)

	if _, err := gw.List(context.Background(), ListQuery{Page: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPage != "1" {
		t.Fatalf("expected page clamped to 1, got=%q", gotPage)
	}
}

func TestPlayersListSendsFilters(t *testing.T) {
	t.Parallel()

	var gotTeam, gotPosition string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTeam = r.URL.Query().Get("team")
		gotPosition = r.URL.Query().Get("position")
		w.Write([]byte(`{"items":[],"total":0}`))
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewPlayersGateway(transport)

	if _, err := gw.List(context.Background(), PlayerFilters{TeamID: "t9", Position: "FWD"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTeam != "t9" || gotPosition != "FWD" {
		t.Fatalf("unexpected filters team=%q position=%q", gotTeam, gotPosition)
	}
}

func TestPlayersListOmitsEmptyFilters(t *testing.T) {
	t.Parallel()

	var hadTeam, hadPosition bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hadTeam = r.URL.Query().Has("team")
		hadPosition = r.URL.Query().Has("position")
		w.Write([]byte(`{"items":[],"total":0}`))
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewPlayersGateway(transport)

	if _, err := gw.List(context.Background(), PlayerFilters{}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hadTeam || hadPosition {
		t.Fatalf("empty filters must not be sent (team=%v position=%v)", hadTeam, hadPosition)
	}
}

func TestActivityListUsesLargerPageSize(t *testing.T) {
	t.Parallel()

	var gotLimit string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"items":[],"total":0}`))
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewActivityGateway(transport)

	if _, err := gw.List(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != "20" {
		t.Fatalf("expected limit=20 for activity logs, got=%q", gotLimit)
	}
}

func TestTeamsCreateSendsMultipartWithLogo(t *testing.T) {
	t.Parallel()

	type captured struct {
		name, city, coach string
		fileName          string
		fileBytes         []byte
	}
	var got captured

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		got.name = r.FormValue("name")
		got.city = r.FormValue("city")
		got.coach = r.FormValue("coach")
		if file, header, err := r.FormFile("logo"); err == nil {
			defer file.Close()
			got.fileName = header.Filename
			got.fileBytes, _ = io.ReadAll(file)
		}
		w.Write([]byte(`{"id":"t1","name":"Rovers"}`))
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewTeamsGateway(transport)

	created, err := gw.Create(context.Background(), TeamPayload{
		Name:  "Rovers",
		City:  "Northbridge",
		Coach: "A. Keane",
		Logo:  &FileAttachment{Name: "logo.png", ContentType: "image/png", Data: []byte{0x89, 0x50, 0x4e, 0x47}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "t1" {
		t.Fatalf("expected created team id, got=%q", created.ID)
	}
	if got.name != "Rovers" || got.city != "Northbridge" || got.coach != "A. Keane" {
		t.Fatalf("unexpected form fields: %+v", got)
	}
	if got.fileName != "logo.png" {
		t.Fatalf("expected logo file, got=%q", got.fileName)
	}
	if len(got.fileBytes) != 4 {
		t.Fatalf("expected 4 file bytes, got=%d", len(got.fileBytes))
	}
}

func TestTeamsUpdateIsMultipartWithoutFile(t *testing.T) {
	t.Parallel()

	var contentType string
	var hadFile bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		_, _, err := r.FormFile("logo")
		hadFile = err == nil
		w.Write([]byte(`{"id":"t1"}`))
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewTeamsGateway(transport)

	if _, err := gw.Update(context.Background(), "t1", TeamPayload{Name: "Rovers", City: "Northbridge", Coach: "A. Keane"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType == "" || contentType == "application/json" {
		t.Fatalf("team update must be multipart, got=%q", contentType)
	}
	if hadFile {
		t.Fatalf("no logo was attached; the form must not carry a file part")
	}
}

func TestFansCreateSendsJSON(t *testing.T) {
	t.Parallel()

	var contentType string
	var body []byte
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"f1","name":"Sam"}`))
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewFansGateway(transport)

	_, err := gw.Create(context.Background(), FanPayload{
		Name:            "Sam",
		Email:           "sam@example.com",
		TeamID:          "t1",
		MembershipLevel: "premium",
		Interests:       []string{"News", "Events"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "application/json" {
		t.Fatalf("expected json body, got=%q", contentType)
	}

	var decoded map[string]any
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if decoded["team"] != "t1" {
		t.Fatalf("expected team field on the wire, got=%v", decoded["team"])
	}
	if decoded["membershipLevel"] != "premium" {
		t.Fatalf("expected membershipLevel, got=%v", decoded["membershipLevel"])
	}
}

func TestMatchUpdateScoreHitsScorePath(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	var body []byte
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"m1","score1":2,"score2":1,"status":"live"}`))
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewMatchesGateway(transport)

	updated, err := gw.UpdateScore(context.Background(), "m1", ScorePayload{
		Score1:   2,
		Score2:   1,
		Progress: 63,
		Status:   "live",
		Stats:    match.Stats{Possession1: 58, Possession2: 42, Shots1: 9, Shots2: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/matches/m1/score" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if updated.Score1 != 2 || updated.Status != "live" {
		t.Fatalf("unexpected response mapping: %+v", updated)
	}

	var decoded map[string]any
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if _, ok := decoded["matchStats"]; !ok {
		t.Fatalf("expected matchStats on the wire, got keys %v", decoded)
	}
}

func TestDeleteEscapesItemID(t *testing.T) {
	t.Parallel()

	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewTeamsGateway(transport)

	if err := gw.Delete(context.Background(), "team one"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/teams/team%20one" {
		t.Fatalf("expected escaped path, got=%q", gotPath)
	}
}

func TestMatchesListSendsStatusFilter(t *testing.T) {
	t.Parallel()

	var gotStatus string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		w.Write([]byte(`{"items":[],"total":0}`))
	})

	transport, _ := newTestTransport(t, handler, &fakeSession{token: "tok"})
	gw := NewMatchesGateway(transport)

	if _, err := gw.List(context.Background(), "live", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != "live" {
		t.Fatalf("expected status filter, got=%q", gotStatus)
	}
}
