package mirror

// Event is the interface implemented by all mirror engine events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// Estimate phase events

// EstimateStarted is emitted when the pre-walk tree estimation begins.
type EstimateStarted struct{}

func (EstimateStarted) isEvent() {}

// EstimateProgress is emitted periodically during estimation.
type EstimateProgress struct {
	Path  string
	Files int
}

func (EstimateProgress) isEvent() {}

// EstimateComplete is emitted when estimation finishes with the totals.
type EstimateComplete struct {
	Files   int
	Folders int
	Bytes   int64
}

func (EstimateComplete) isEvent() {}

// Walk phase events

// WalkStarted is emitted when the mirror walk begins.
type WalkStarted struct {
	Source      string
	Destination string
}

func (WalkStarted) isEvent() {}

// FileChecked is emitted for every file examined, whether or not it
// gets copied.
type FileChecked struct {
	Path string
}

func (FileChecked) isEvent() {}

// FileCopied is emitted when a file copy succeeds.
type FileCopied struct {
	Path string
	Size int64
}

func (FileCopied) isEvent() {}

// CopyReconciled is emitted when a failed copy was found byte-identical
// on both sides and therefore not counted as an error.
type CopyReconciled struct {
	Path string
}

func (CopyReconciled) isEvent() {}

// SubtreeSkipped is emitted when a directory cannot be created or
// listed and its whole subtree is skipped.
type SubtreeSkipped struct {
	Path string
	Err  error
}

func (SubtreeSkipped) isEvent() {}

// FileFailed is emitted when a copy fails and the fallback comparison
// could not reconcile it.
type FileFailed struct {
	Path string
	Err  error
}

func (FileFailed) isEvent() {}

// WalkComplete is emitted when the run finishes.
type WalkComplete struct {
	Summary *Summary
}

func (WalkComplete) isEvent() {}
