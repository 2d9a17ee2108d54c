package history

import (
	"regexp"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGenerateSessionName(t *testing.T) {
	store := newTestStore(t)

	pattern := regexp.MustCompile(`^[a-z]+-[a-z]+-\d{2}$`)
	for i := 0; i < 10; i++ {
		name := store.GenerateSessionName()
		if !pattern.MatchString(name) {
			t.Errorf("name %q does not match adjective-animal-NN", name)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore(t)

	session := NewSession("s1", "brave-otter-42", "203.0.113.9:51234")
	if err := store.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := store.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Name != "brave-otter-42" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.RemoteAddr != "203.0.113.9:51234" {
		t.Errorf("RemoteAddr = %q", got.RemoteAddr)
	}
	if !got.IsActive {
		t.Error("new session should be active")
	}

	if err := store.EndSession("s1"); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	got, err = store.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.IsActive {
		t.Error("ended session should be inactive")
	}
}

func TestListSessionsActiveFilter(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"s1", "s2", "s3"} {
		if err := store.CreateSession(NewSession(id, "name-"+id, "")); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}
	if err := store.EndSession("s2"); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}

	all, err := store.ListSessions(false, 0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d sessions, want 3", len(all))
	}

	active, err := store.ListSessions(true, 0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("got %d active sessions, want 2", len(active))
	}
	for _, s := range active {
		if s.ID == "s2" {
			t.Error("ended session s2 should not be listed as active")
		}
	}
}

func TestListSessionsLimit(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"s1", "s2", "s3"} {
		if err := store.CreateSession(NewSession(id, "name-"+id, "")); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}

	sessions, err := store.ListSessions(false, 2)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("got %d sessions, want limit 2", len(sessions))
	}
}

func TestRecordAndListAnalysis(t *testing.T) {
	store := newTestStore(t)

	if err := store.CreateSession(NewSession("s1", "n", "")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	records := []*AnalysisRecord{
		{SessionID: "s1", Action: ActionPie, DatabasePath: "/data/flights.db", TableName: "sflight", Columns: "carrid", DurationMs: 12},
		{SessionID: "s1", Action: ActionBox, DatabasePath: "/data/flights.db", TableName: "sflight", Columns: "carrid,price", DurationMs: 30},
		{SessionID: "s1", Action: ActionPreview, DatabasePath: "/data/other.db", TableName: "scustom", Error: "no such table"},
	}
	for _, r := range records {
		if err := store.RecordAnalysis(r); err != nil {
			t.Fatalf("RecordAnalysis failed: %v", err)
		}
	}

	all, err := store.ListAnalysisLog("", "", "", time.Time{}, 0)
	if err != nil {
		t.Fatalf("ListAnalysisLog failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d records, want 3", len(all))
	}

	pies, err := store.ListAnalysisLog("", ActionPie, "", time.Time{}, 0)
	if err != nil {
		t.Fatalf("ListAnalysisLog failed: %v", err)
	}
	if len(pies) != 1 || pies[0].Columns != "carrid" {
		t.Errorf("pie filter returned %+v", pies)
	}

	flights, err := store.ListAnalysisLog("", "", "/data/flights.db", time.Time{}, 0)
	if err != nil {
		t.Fatalf("ListAnalysisLog failed: %v", err)
	}
	if len(flights) != 2 {
		t.Errorf("got %d flights records, want 2", len(flights))
	}

	failed, err := store.ListAnalysisLog("", ActionPreview, "", time.Time{}, 0)
	if err != nil {
		t.Fatalf("ListAnalysisLog failed: %v", err)
	}
	if len(failed) != 1 || failed[0].Error != "no such table" {
		t.Errorf("preview filter returned %+v", failed)
	}
}

func TestRecordAnalysisDefaultsCreatedAt(t *testing.T) {
	store := newTestStore(t)

	record := &AnalysisRecord{SessionID: "s1", Action: ActionDescribe, DatabasePath: "/x.db"}
	if err := store.RecordAnalysis(record); err != nil {
		t.Fatalf("RecordAnalysis failed: %v", err)
	}
	if record.CreatedAt.IsZero() {
		t.Error("CreatedAt should be defaulted")
	}
}
