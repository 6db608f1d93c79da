package models

import "time"

// EventKind identifies what a session event describes.
type EventKind string

const (
	// EventScanned fires after a folder scan replaces the video list.
	EventScanned EventKind = "Scanned"

	// EventPlayed fires when a video is recorded as played.
	EventPlayed EventKind = "Played"

	// EventSkipped fires when a video is skipped without playing.
	EventSkipped EventKind = "Skipped"

	// EventRotationReset fires when played history is wiped, either by an
	// explicit reset or because every video had been played.
	EventRotationReset EventKind = "RotationReset"

	// EventStateSaved and EventStateSaveFailed report persistence outcomes.
	EventStateSaved      EventKind = "StateSaved"
	EventStateSaveFailed EventKind = "StateSaveFailed"

	// EventStateLoaded fires after a saved session is restored.
	EventStateLoaded EventKind = "StateLoaded"

	// EventStateCleared fires after the saved session file is removed.
	EventStateCleared EventKind = "StateCleared"
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	return string(k)
}

// Event describes a change made to a session. Subscribers receive events
// best-effort, a slow consumer drops events rather than blocking mutators.
type Event struct {
	Kind  EventKind
	Path  string // video or folder the event concerns, when applicable
	Count int    // videos found for EventScanned
	Err   error  // failure detail for *Failed kinds
	Time  time.Time
}
