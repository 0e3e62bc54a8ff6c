// Package history persists completed rounds and derives per-session
// numbering and awards from them.
//
// The whole log lives under one key as a JSON array and is rewritten on
// every append. A log that cannot be read or does not validate is treated
// as empty.
package history

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sweet-catch/internal/games/catch"
	"github.com/vovakirdan/sweet-catch/internal/storage"
)

// Logical storage keys.
const (
	KeyUserName  = "sweetcatch:userName"
	KeyHistory   = "sweetcatch:history"
	KeySessionID = "sweetcatch:session_id"
)

// Store is the session history log.
type Store struct {
	kv     storage.KV
	kinds  catch.Kinds
	tiers  catch.Tiers
	now    func() time.Time
	logger *log.Logger

	mu      sync.Mutex
	current int64 // 0 until loaded or minted
}

var (
	_ catch.Recorder      = (*Store)(nil)
	_ catch.SessionSource = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithKinds sets the known catch kinds used to normalize counts.
func WithKinds(ks catch.Kinds) Option {
	return func(s *Store) { s.kinds = ks }
}

// WithTiers sets the award table used by profiles.
func WithTiers(ts catch.Tiers) Option {
	return func(s *Store) { s.tiers = ts.Sorted() }
}

// WithClock overrides the wall clock used to mint session ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for swallowed persistence failures.
// A nil logger keeps the silent default.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a history store on top of kv. A nil kv behaves like
// storage.Nop.
func New(kv storage.KV, opts ...Option) *Store {
	if kv == nil {
		kv = storage.Nop{}
	}
	s := &Store{
		kv:     kv,
		kinds:  catch.DefaultKinds(),
		tiers:  catch.DefaultTiers(),
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AppendRound numbers rec within its session, appends it and persists the
// whole log. The returned record carries the assigned level. A write
// failure loses the record.
func (s *Store) AppendRound(rec catch.RoundRecord) catch.RoundRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()

	maxLevel := 0
	for _, r := range records {
		if r.SessionID == rec.SessionID && r.Level > maxLevel {
			maxLevel = r.Level
		}
	}
	rec.Level = maxLevel + 1
	rec.Counts = rec.Counts.Normalize(s.kinds)
	records = append(records, rec)

	data, err := json.Marshal(records)
	if err != nil {
		s.logger.Debug("history: cannot encode log", "err", err)
		return rec
	}
	if err := s.kv.Set(KeyHistory, string(data)); err != nil {
		s.logger.Debug("history: round dropped", "level", rec.Level, "session", rec.SessionID, "err", err)
	}
	return rec
}

// All returns every stored round in append order.
func (s *Store) All() []catch.RoundRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// LatestSessionRounds returns the rounds of the highest session id,
// ordered by level.
func (s *Store) LatestSessionRounds() []catch.RoundRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return latestSession(s.load())
}

// LatestSessionID returns the highest session id in the log, or 0.
func (s *Store) LatestSessionID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maxSession(s.load())
}

func latestSession(records []catch.RoundRecord) []catch.RoundRecord {
	latest := maxSession(records)
	out := make([]catch.RoundRecord, 0, len(records))
	for _, r := range records {
		if r.SessionID == latest {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

func maxSession(records []catch.RoundRecord) int64 {
	var latest int64
	for _, r := range records {
		if r.SessionID > latest {
			latest = r.SessionID
		}
	}
	return latest
}

// StartNewSession mints a session id strictly greater than any known one,
// makes it current and persists it.
func (s *Store) StartNewSession() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startNewSession()
}

func (s *Store) startNewSession() int64 {
	last := s.current
	if persisted, ok := s.persistedSession(); ok && persisted > last {
		last = persisted
	}
	if logged := maxSession(s.load()); logged > last {
		last = logged
	}

	id := s.now().UnixMilli()
	if id <= last {
		id = last + 1
	}
	s.current = id

	if err := s.kv.Set(KeySessionID, strconv.FormatInt(id, 10)); err != nil {
		s.logger.Debug("history: cannot persist session id", "session", id, "err", err)
	}
	return id
}

// CurrentSession returns the session new rounds belong to, loading the
// persisted id or minting one when none exists.
func (s *Store) CurrentSession() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != 0 {
		return s.current
	}
	if id, ok := s.persistedSession(); ok {
		s.current = id
		return id
	}
	return s.startNewSession()
}

func (s *Store) persistedSession() (int64, bool) {
	raw, ok, err := s.kv.Get(KeySessionID)
	if err != nil {
		s.logger.Debug("history: cannot read session id", "err", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// DisplayName returns the stored player name, or "" when unset.
func (s *Store) DisplayName() string {
	name, ok, err := s.kv.Get(KeyUserName)
	if err != nil {
		s.logger.Debug("history: cannot read display name", "err", err)
		return ""
	}
	if !ok {
		return ""
	}
	return name
}

// SetDisplayName stores the player name. Failures are logged and ignored.
func (s *Store) SetDisplayName(name string) {
	if err := s.kv.Set(KeyUserName, name); err != nil {
		s.logger.Debug("history: cannot save display name", "err", err)
	}
}

// Kinds returns the catch kinds counts are normalized to.
func (s *Store) Kinds() catch.Kinds { return s.kinds }

// Tiers returns the award table.
func (s *Store) Tiers() catch.Tiers { return s.tiers }

// load reads and validates the log. Any failure yields an empty log.
func (s *Store) load() []catch.RoundRecord {
	raw, ok, err := s.kv.Get(KeyHistory)
	if err != nil {
		s.logger.Debug("history: cannot read log", "err", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	if err := ValidateLog([]byte(raw)); err != nil {
		s.logger.Debug("history: ignoring malformed log", "err", err)
		return nil
	}
	var records []catch.RoundRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Debug("history: ignoring malformed log", "err", err)
		return nil
	}
	for i := range records {
		records[i].Counts = records[i].Counts.Normalize(s.kinds)
	}
	return records
}
