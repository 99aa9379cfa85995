package driver

// Stage identifies one phase of unit processing.
type Stage uint8

const (
	// StageQueued means the unit is waiting for a worker.
	StageQueued Stage = iota
	// StageLoad means the unit description is being read and built.
	StageLoad
	// StageLower means declarations are being lowered.
	StageLower
	// StageValidate means lowered-module invariants are being checked.
	StageValidate
	// StageDone means the unit finished, successfully or not.
	StageDone
)

// String returns a human-readable representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageLoad:
		return "load"
	case StageLower:
		return "lower"
	case StageValidate:
		return "validate"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// Event is one progress notification.
type Event struct {
	Path   string
	Stage  Stage
	Cached bool
	Err    error
}

// ProgressSink receives progress events. Publish must be safe for
// concurrent use; the driver calls it from worker goroutines.
type ProgressSink interface {
	Publish(ev Event)
}

// ChannelSink forwards events to a channel, dropping them when the channel
// is full so slow consumers never stall lowering.
type ChannelSink struct {
	Ch chan<- Event
}

// Publish implements ProgressSink.
func (s ChannelSink) Publish(ev Event) {
	if s.Ch == nil {
		return
	}
	select {
	case s.Ch <- ev:
	default:
	}
}

type nopSink struct{}

func (nopSink) Publish(Event) {}
