package session

import (
	"encoding/json"
	"log"
	"sync"
)

// Key identifies one field of the session record. Every key is durable: it is
// persisted under the store's namespace prefix and restored on construction.
type Key string

const (
	// KeyToken is the bearer credential field.
	KeyToken Key = "token"
	// KeyUserData is the login identity field.
	KeyUserData Key = "userData"
	// KeyStudentInfo is the extended profile field.
	KeyStudentInfo Key = "studentInfo"
	// KeyAcademicYears is the academic-year list field.
	KeyAcademicYears Key = "academicYears"
	// KeyCurrentAcademicYearID is the selected year id field.
	KeyCurrentAcademicYearID Key = "currentAcademicYearId"
	// KeyCurrentAcademicYearName is the selected year name field.
	KeyCurrentAcademicYearName Key = "currentAcademicYearName"
	// KeyCurrentTermID is the selected term id field.
	KeyCurrentTermID Key = "currentTermId"
	// KeyCurrentTermName is the selected term name field.
	KeyCurrentTermName Key = "currentTermName"
	// KeyAvailableTerms is the term list field for the selected year.
	KeyAvailableTerms Key = "availableTerms"
)

var durableKeys = []Key{
	KeyToken,
	KeyUserData,
	KeyStudentInfo,
	KeyAcademicYears,
	KeyCurrentAcademicYearID,
	KeyCurrentAcademicYearName,
	KeyCurrentTermID,
	KeyCurrentTermName,
	KeyAvailableTerms,
}

type subscriber struct {
	fn func(value any)
}

// Store is the single source of truth for session and academic-context
// state. Mutations persist durably through the configured [Storage] backend
// and notify per-key subscribers. All methods are safe for concurrent use.
//
// A session is valid when the token, user data, and student info are present,
// the academic-year list is non-empty, and both the current year id and
// current term id are set. Anything less is a legal "has token, lacks
// context" state that the orchestrator recovers by re-running the bootstrap.
type Store struct {
	mu        sync.RWMutex
	prefix    string
	storage   Storage
	state     State
	listeners map[Key][]*subscriber
}

// NewStore builds a Store over the given backend and namespace prefix,
// loading every durable key. Entries that fail to parse are discarded and
// removed from the backend; backend read failures are logged and skipped.
func NewStore(storage Storage, prefix string) *Store {
	s := &Store{
		prefix:    prefix,
		storage:   storage,
		listeners: make(map[Key][]*subscriber),
	}
	s.load()
	return s
}

func (s *Store) load() {
	for _, key := range durableKeys {
		raw, ok, err := s.storage.Get(s.prefix + string(key))
		if err != nil {
			log.Print("portalclient: session load failed for key " + string(key))
			continue
		}
		if !ok {
			continue
		}
		if err := s.decode(key, raw); err != nil {
			log.Print("portalclient: discarding unparseable session entry " + string(key))
			if err := s.storage.Delete(s.prefix + string(key)); err != nil {
				log.Print("portalclient: session cleanup failed for key " + string(key))
			}
		}
	}
}

func (s *Store) decode(key Key, raw string) error {
	switch key {
	case KeyToken:
		return json.Unmarshal([]byte(raw), &s.state.Token)
	case KeyUserData:
		return json.Unmarshal([]byte(raw), &s.state.UserData)
	case KeyStudentInfo:
		return json.Unmarshal([]byte(raw), &s.state.StudentInfo)
	case KeyAcademicYears:
		return json.Unmarshal([]byte(raw), &s.state.AcademicYears)
	case KeyCurrentAcademicYearID:
		return json.Unmarshal([]byte(raw), &s.state.CurrentAcademicYearID)
	case KeyCurrentAcademicYearName:
		return json.Unmarshal([]byte(raw), &s.state.CurrentAcademicYearName)
	case KeyCurrentTermID:
		return json.Unmarshal([]byte(raw), &s.state.CurrentTermID)
	case KeyCurrentTermName:
		return json.Unmarshal([]byte(raw), &s.state.CurrentTermName)
	case KeyAvailableTerms:
		return json.Unmarshal([]byte(raw), &s.state.AvailableTerms)
	}
	return nil
}

// persistLocked writes or deletes the durable entry for key. Persistence
// failures are logged and never fail the in-memory mutation, so a full or
// broken backend degrades to a memory-only session.
func (s *Store) persistLocked(key Key, value any, absent bool) {
	storageKey := s.prefix + string(key)
	if absent {
		if err := s.storage.Delete(storageKey); err != nil {
			log.Print("portalclient: session delete failed for key " + string(key))
		}
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Print("portalclient: session encode failed for key " + string(key))
		return
	}
	if err := s.storage.Set(storageKey, string(raw)); err != nil {
		log.Print("portalclient: session persist failed for key " + string(key))
	}
}

func (s *Store) apply(key Key, mutate func(), value any, absent bool) {
	s.mu.Lock()
	mutate()
	s.persistLocked(key, value, absent)
	subs := append([]*subscriber(nil), s.listeners[key]...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(value)
	}
}

// Subscribe registers fn to run on every set of key. Multiple subscribers per
// key are permitted. The returned function removes exactly this registration.
func (s *Store) Subscribe(key Key, fn func(value any)) (unsubscribe func()) {
	sub := &subscriber{fn: fn}
	s.mu.Lock()
	s.listeners[key] = append(s.listeners[key], sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.listeners[key]
		for i, candidate := range subs {
			if candidate == sub {
				s.listeners[key] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Reset clears every in-memory field and removes all durable entries from the
// backend. It never fails; backend delete errors are logged.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	for _, key := range durableKeys {
		if err := s.storage.Delete(s.prefix + string(key)); err != nil {
			log.Print("portalclient: session reset delete failed for key " + string(key))
		}
	}
}

// HasValidSession reports whether the session satisfies the validity
// invariant and is ready for data queries.
func (s *Store) HasValidSession() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Token != "" &&
		s.state.UserData != nil &&
		s.state.StudentInfo != nil &&
		len(s.state.AcademicYears) > 0 &&
		s.state.CurrentAcademicYearID != 0 &&
		s.state.CurrentTermID != 0
}

// WatchToken arranges for onRemoved to run when the durable token entry is
// deleted by another store instance sharing the backend. Backends without
// watch support (the in-memory default) return a no-op stop function.
func (s *Store) WatchToken(onRemoved func()) (stop func(), err error) {
	w, ok := s.storage.(Watcher)
	if !ok {
		return func() {}, nil
	}
	return w.Watch(s.prefix+string(KeyToken), onRemoved)
}

// Snapshot returns a copy of the full session record. Slices and nested
// records are copied; mutating the snapshot never affects the store.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state
	if s.state.UserData != nil {
		ud := *s.state.UserData
		out.UserData = &ud
	}
	if s.state.StudentInfo != nil {
		si := *s.state.StudentInfo
		out.StudentInfo = &si
	}
	out.AcademicYears = append([]AcademicYear(nil), s.state.AcademicYears...)
	out.AvailableTerms = append([]Term(nil), s.state.AvailableTerms...)
	return out
}

// Token returns the bearer credential, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// SetToken stores the bearer credential. An empty token deletes the durable
// entry.
func (s *Store) SetToken(token string) {
	s.apply(KeyToken, func() { s.state.Token = token }, token, token == "")
}

// UserData returns the login identity, or nil when absent.
func (s *Store) UserData() *UserData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.UserData == nil {
		return nil
	}
	ud := *s.state.UserData
	return &ud
}

// SetUserData stores the login identity. nil deletes the durable entry.
func (s *Store) SetUserData(ud *UserData) {
	s.apply(KeyUserData, func() { s.state.UserData = ud }, ud, ud == nil)
}

// StudentInfo returns the extended profile, or nil when absent.
func (s *Store) StudentInfo() *StudentInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.StudentInfo == nil {
		return nil
	}
	si := *s.state.StudentInfo
	return &si
}

// SetStudentInfo stores the extended profile. nil deletes the durable entry.
func (s *Store) SetStudentInfo(si *StudentInfo) {
	s.apply(KeyStudentInfo, func() { s.state.StudentInfo = si }, si, si == nil)
}

// AcademicYears returns the academic-year list; empty when unknown.
func (s *Store) AcademicYears() []AcademicYear {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]AcademicYear(nil), s.state.AcademicYears...)
}

// SetAcademicYears stores the academic-year list. An empty list deletes the
// durable entry.
func (s *Store) SetAcademicYears(years []AcademicYear) {
	s.apply(KeyAcademicYears, func() { s.state.AcademicYears = years }, years, len(years) == 0)
}

// CurrentAcademicYearID returns the selected year id, 0 when unset.
func (s *Store) CurrentAcademicYearID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentAcademicYearID
}

// SetCurrentAcademicYearID stores the selected year id. 0 deletes the durable
// entry.
func (s *Store) SetCurrentAcademicYearID(id int64) {
	s.apply(KeyCurrentAcademicYearID, func() { s.state.CurrentAcademicYearID = id }, id, id == 0)
}

// CurrentAcademicYearName returns the selected year name, "" when unset.
func (s *Store) CurrentAcademicYearName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentAcademicYearName
}

// SetCurrentAcademicYearName stores the selected year name.
func (s *Store) SetCurrentAcademicYearName(name string) {
	s.apply(KeyCurrentAcademicYearName, func() { s.state.CurrentAcademicYearName = name }, name, name == "")
}

// CurrentTermID returns the selected term id, 0 when unset.
func (s *Store) CurrentTermID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentTermID
}

// SetCurrentTermID stores the selected term id. 0 deletes the durable entry.
func (s *Store) SetCurrentTermID(id int64) {
	s.apply(KeyCurrentTermID, func() { s.state.CurrentTermID = id }, id, id == 0)
}

// CurrentTermName returns the selected term name, "" when unset.
func (s *Store) CurrentTermName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentTermName
}

// SetCurrentTermName stores the selected term name.
func (s *Store) SetCurrentTermName(name string) {
	s.apply(KeyCurrentTermName, func() { s.state.CurrentTermName = name }, name, name == "")
}

// AvailableTerms returns the term list for the selected year.
func (s *Store) AvailableTerms() []Term {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Term(nil), s.state.AvailableTerms...)
}

// SetAvailableTerms stores the term list for the selected year. An empty list
// deletes the durable entry.
func (s *Store) SetAvailableTerms(terms []Term) {
	s.apply(KeyAvailableTerms, func() { s.state.AvailableTerms = terms }, terms, len(terms) == 0)
}

// Value returns the current value for key as stored, or nil for record
// fields that are absent. It is the generic companion to the typed getters.
func (s *Store) Value(key Key) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch key {
	case KeyToken:
		return s.state.Token
	case KeyUserData:
		if s.state.UserData == nil {
			return nil
		}
		ud := *s.state.UserData
		return &ud
	case KeyStudentInfo:
		if s.state.StudentInfo == nil {
			return nil
		}
		si := *s.state.StudentInfo
		return &si
	case KeyAcademicYears:
		return append([]AcademicYear(nil), s.state.AcademicYears...)
	case KeyCurrentAcademicYearID:
		return s.state.CurrentAcademicYearID
	case KeyCurrentAcademicYearName:
		return s.state.CurrentAcademicYearName
	case KeyCurrentTermID:
		return s.state.CurrentTermID
	case KeyCurrentTermName:
		return s.state.CurrentTermName
	case KeyAvailableTerms:
		return append([]Term(nil), s.state.AvailableTerms...)
	}
	return nil
}
