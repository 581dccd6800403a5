package models

import "github.com/Rorical/iconx/internal/export"

// Phase is the coordinator's position in Idle → InFlight → Succeeded|Failed → Idle.
type Phase int

const (
	Idle Phase = iota
	InFlight
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case InFlight:
		return "in_flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// CopyState is a snapshot of one consumer's copy/download feedback.
// IconName and Format are meaningful only outside Idle. LastError is set
// only in Failed, so an in-flight state never carries an error.
type CopyState struct {
	Phase     Phase
	IconName  string
	Format    export.Format
	LastError string
	// Location is the saved path of a finished download.
	Location string
	// Seq identifies the operation this state belongs to.
	Seq uint64
}

func (s CopyState) IsIdle() bool     { return s.Phase == Idle }
func (s CopyState) IsInFlight() bool { return s.Phase == InFlight }
func (s CopyState) HasError() bool   { return s.LastError != "" }

// Active reports whether the state refers to an operation.
func (s CopyState) Active() bool {
	return s.Phase != Idle
}
