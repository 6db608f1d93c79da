// Package contracts defines interfaces that decouple the application layer
// from the concrete player and preview implementations.
package contracts

import (
	"context"

	"vidpick/internal/models"
)

// Launcher starts playback of a video file in an external player.
type Launcher interface {
	Play(ctx context.Context, path string) error
}

// Prober returns media details for a video file. Implementations are
// best-effort and always return at least the path.
type Prober interface {
	Probe(ctx context.Context, path string) models.MediaInfo
}
