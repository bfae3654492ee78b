package session

import (
	"testing"
)

const testPrefix = "wildcatOne_"

func newTestStore(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()

	storage := NewMemoryStorage()
	return NewStore(storage, testPrefix), storage
}

func populateValid(s *Store) {
	s.SetToken("tok-abc")
	s.SetUserData(&UserData{UserID: "U1", StudentID: "S1", Name: "Test Student"})
	s.SetStudentInfo(&StudentInfo{AcademicYear: "2024-2025", Term: "1st Sem"})
	s.SetAcademicYears([]AcademicYear{{ID: 7, Name: "2024-2025"}})
	s.SetCurrentAcademicYearID(7)
	s.SetCurrentAcademicYearName("2024-2025")
	s.SetAvailableTerms([]Term{{ID: 3, Name: "1st Sem"}})
	s.SetCurrentTermID(3)
	s.SetCurrentTermName("1st Sem")
}

func TestHasValidSessionRequiresAllSixFields(t *testing.T) {
	// The invariant depends on six fields. Walk every subset of them:
	// only the full set is a valid session.
	type field struct {
		name string
		set  func(*Store)
	}
	fields := []field{
		{"token", func(s *Store) { s.SetToken("tok") }},
		{"userData", func(s *Store) { s.SetUserData(&UserData{UserID: "U1", StudentID: "S1"}) }},
		{"studentInfo", func(s *Store) { s.SetStudentInfo(&StudentInfo{}) }},
		{"academicYears", func(s *Store) { s.SetAcademicYears([]AcademicYear{{ID: 1, Name: "y"}}) }},
		{"currentAcademicYearId", func(s *Store) { s.SetCurrentAcademicYearID(1) }},
		{"currentTermId", func(s *Store) { s.SetCurrentTermID(2) }},
	}

	for mask := 0; mask < 1<<len(fields); mask++ {
		s, _ := newTestStore(t)
		for i, f := range fields {
			if mask&(1<<i) != 0 {
				f.set(s)
			}
		}

		want := mask == 1<<len(fields)-1
		if got := s.HasValidSession(); got != want {
			t.Fatalf("mask %06b: HasValidSession() = %v, want %v", mask, got, want)
		}
	}
}

func TestResetClearsStateAndStorage(t *testing.T) {
	s, storage := newTestStore(t)
	populateValid(s)

	if !s.HasValidSession() {
		t.Fatal("expected valid session before reset")
	}
	if storage.Len() == 0 {
		t.Fatal("expected durable entries before reset")
	}

	s.Reset()

	if s.HasValidSession() {
		t.Fatal("expected invalid session after reset")
	}
	keys, err := storage.Keys(testPrefix)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected no durable keys after reset, got %v", keys)
	}

	state := s.Snapshot()
	if state.Token != "" || state.UserData != nil || state.StudentInfo != nil {
		t.Fatal("expected zeroed scalar fields after reset")
	}
	if len(state.AcademicYears) != 0 || len(state.AvailableTerms) != 0 {
		t.Fatal("expected empty lists after reset")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	populateValid(s)

	s.Reset()
	s.Reset()

	if s.HasValidSession() {
		t.Fatal("expected invalid session after double reset")
	}
}

func TestDurableLayoutAndReload(t *testing.T) {
	storage := NewMemoryStorage()
	first := NewStore(storage, testPrefix)
	populateValid(first)

	raw, ok, err := storage.Get(testPrefix + "token")
	if err != nil || !ok {
		t.Fatalf("expected persisted token entry, ok=%v err=%v", ok, err)
	}
	if raw != `"tok-abc"` {
		t.Fatalf("expected JSON-serialized token, got %q", raw)
	}

	// A second store over the same backend restores the full record.
	second := NewStore(storage, testPrefix)
	if !second.HasValidSession() {
		t.Fatal("expected reloaded store to hold a valid session")
	}
	if second.CurrentAcademicYearID() != 7 || second.CurrentTermID() != 3 {
		t.Fatalf("reloaded selection mismatch: year=%d term=%d",
			second.CurrentAcademicYearID(), second.CurrentTermID())
	}
	ud := second.UserData()
	if ud == nil || ud.UserID != "U1" {
		t.Fatalf("reloaded user data mismatch: %+v", ud)
	}
}

func TestLoadDiscardsUnparseableEntries(t *testing.T) {
	storage := NewMemoryStorage()
	_ = storage.Set(testPrefix+"token", `"tok-abc"`)
	_ = storage.Set(testPrefix+"academicYears", `{not json`)

	s := NewStore(storage, testPrefix)

	if s.Token() != "tok-abc" {
		t.Fatal("expected parseable entry to load")
	}
	if len(s.AcademicYears()) != 0 {
		t.Fatal("expected unparseable entry to be discarded")
	}
	if _, ok, _ := storage.Get(testPrefix + "academicYears"); ok {
		t.Fatal("expected unparseable entry to be removed from storage")
	}
}

func TestZeroValueSetDeletesDurableEntry(t *testing.T) {
	s, storage := newTestStore(t)

	s.SetToken("tok")
	if _, ok, _ := storage.Get(testPrefix + "token"); !ok {
		t.Fatal("expected token entry after set")
	}

	s.SetToken("")
	if _, ok, _ := storage.Get(testPrefix + "token"); ok {
		t.Fatal("expected empty token to delete the durable entry")
	}

	s.SetUserData(&UserData{UserID: "U1"})
	s.SetUserData(nil)
	if _, ok, _ := storage.Get(testPrefix + "userData"); ok {
		t.Fatal("expected nil user data to delete the durable entry")
	}
}

func TestSubscribeNotifiesEverySetAndUnsubscribesOnce(t *testing.T) {
	s, _ := newTestStore(t)

	var got []any
	unsubscribe := s.Subscribe(KeyToken, func(v any) { got = append(got, v) })

	var other int
	s.Subscribe(KeyToken, func(any) { other++ })

	s.SetToken("a")
	s.SetToken("b")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
	if other != 2 {
		t.Fatalf("expected second subscriber to see both sets, got %d", other)
	}

	unsubscribe()
	unsubscribe() // second call must not disturb remaining registrations

	s.SetToken("c")
	if len(got) != 2 {
		t.Fatalf("expected no notification after unsubscribe, got %v", got)
	}
	if other != 3 {
		t.Fatalf("expected remaining subscriber to keep firing, got %d", other)
	}
}

func TestSubscribeOtherKeyNotNotified(t *testing.T) {
	s, _ := newTestStore(t)

	fired := false
	s.Subscribe(KeyCurrentTermID, func(any) { fired = true })

	s.SetToken("tok")
	if fired {
		t.Fatal("expected no cross-key notification")
	}
}

func TestValueMirrorsTypedGetters(t *testing.T) {
	s, _ := newTestStore(t)
	populateValid(s)

	if s.Value(KeyToken) != "tok-abc" {
		t.Fatalf("Value(token) = %v", s.Value(KeyToken))
	}
	if id, ok := s.Value(KeyCurrentAcademicYearID).(int64); !ok || id != 7 {
		t.Fatalf("Value(currentAcademicYearId) = %v", s.Value(KeyCurrentAcademicYearID))
	}
	years, ok := s.Value(KeyAcademicYears).([]AcademicYear)
	if !ok || len(years) != 1 || years[0].Name != "2024-2025" {
		t.Fatalf("Value(academicYears) = %v", s.Value(KeyAcademicYears))
	}

	empty, _ := newTestStore(t)
	if empty.Value(KeyUserData) != nil {
		t.Fatal("expected nil user data on empty store")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestStore(t)
	populateValid(s)

	snap := s.Snapshot()
	snap.UserData.UserID = "mutated"
	snap.AcademicYears[0].Name = "mutated"

	if s.UserData().UserID != "U1" {
		t.Fatal("expected snapshot mutation not to affect store user data")
	}
	if s.AcademicYears()[0].Name != "2024-2025" {
		t.Fatal("expected snapshot mutation not to affect store years")
	}
}

func TestWatchTokenNoOpOnMemoryBackend(t *testing.T) {
	s, _ := newTestStore(t)

	stop, err := s.WatchToken(func() { t.Fatal("unexpected callback") })
	if err != nil {
		t.Fatalf("WatchToken failed: %v", err)
	}
	stop()
}
