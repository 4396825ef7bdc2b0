package domain

// Stage enumerates pipeline states for a single ticket.
type Stage string

const (
	StageReceived   Stage = "received"
	StageResolved   Stage = "resolved"
	StageClassified Stage = "classified"
	StagePersisted  Stage = "persisted"
	StageFailed     Stage = "failed"
)

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool {
	return s == StagePersisted || s == StageFailed
}
