package driver

import "time"

// Stage describes a front-end phase.
type Stage string

const (
	StageLoad    Stage = "load"
	StageParse   Stage = "parse"
	StageIndex   Stage = "index"
	StageResolve Stage = "resolve"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole program when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

func emitAll(sink ProgressSink, files []string, stage Stage, status Status) {
	if sink == nil {
		return
	}
	for _, f := range files {
		sink.OnEvent(Event{File: f, Stage: stage, Status: status})
	}
}
