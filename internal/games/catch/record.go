package catch

// RoundRecord is the immutable result of one completed round.
// Level is assigned by the history store when the record is appended.
type RoundRecord struct {
	Level     int    `json:"level"`
	Points    int    `json:"points"`
	Counts    Counts `json:"counts"`
	SessionID int64  `json:"sessionId"`
}

// Recorder receives completed rounds.
type Recorder interface {
	AppendRound(rec RoundRecord) RoundRecord
}

// SessionSource provides the session id a new round belongs to.
type SessionSource interface {
	CurrentSession() int64
}

// Result is what the engine reports when a round ends.
type Result struct {
	Record RoundRecord
	Tier   AwardTier
}

// Catch describes a successful claim.
type Catch struct {
	Kind   Kind
	Points int
}

type nopRecorder struct{}

func (nopRecorder) AppendRound(rec RoundRecord) RoundRecord { return rec }

type fixedSession int64

func (s fixedSession) CurrentSession() int64 { return int64(s) }
