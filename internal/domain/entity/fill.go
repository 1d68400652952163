package entity

import (
	"sync/atomic"
	"time"
)

type FillRequest struct {
	Text string
	// Messages overrides the configured notification texts; empty fields
	// keep the configured ones.
	Messages Messages
}

type SearchPhase int32

const (
	PhaseSearching SearchPhase = iota
	PhaseFound
	PhaseTimedOut
)

func (p SearchPhase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhaseFound:
		return "found"
	case PhaseTimedOut:
		return "timed_out"
	}
	return "unknown"
}

// SearchState tracks one fill attempt. It only ever leaves PhaseSearching
// once: whichever of MarkFound and MarkTimedOut runs first wins, the other
// returns false and must not act.
type SearchState struct {
	phase atomic.Int32
}

func NewSearchState() *SearchState {
	return &SearchState{}
}

func (s *SearchState) Phase() SearchPhase {
	return SearchPhase(s.phase.Load())
}

func (s *SearchState) Found() bool {
	return s.Phase() == PhaseFound
}

func (s *SearchState) MarkFound() bool {
	return s.phase.CompareAndSwap(int32(PhaseSearching), int32(PhaseFound))
}

func (s *SearchState) MarkTimedOut() bool {
	return s.phase.CompareAndSwap(int32(PhaseSearching), int32(PhaseTimedOut))
}

type FillStatus string

const (
	FillStatusFilled         FillStatus = "filled"
	FillStatusNotFound       FillStatus = "not_found"
	FillStatusMutationFailed FillStatus = "mutation_failed"
	FillStatusCancelled      FillStatus = "cancelled"
)

type MatchSource string

const (
	SourceFocused  MatchSource = "focused"
	SourceRule     MatchSource = "rule"
	SourceObserver MatchSource = "observer"
)

type FillOutcome struct {
	Status   FillStatus
	Source   MatchSource
	Rule     string
	Kind     ElementKind
	Duration time.Duration
	Err      error
}
