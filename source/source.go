// Package source defines the capability contract a frame source must
// satisfy to feed the batch producer, along with a seekable in-memory
// implementation.
package source

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/hivision/framebatch/frame"
)

// Type identifies the backend variant behind a Source.
type Type int

// The supported backend variants.
const (
	TypeLive Type = iota
	TypeVideoFile
	TypeImageDirectory
	TypeNetworkStream
)

// String returns a human-readable name for the variant.
func (t Type) String() string {
	switch t {
	case TypeLive:
		return "live"
	case TypeVideoFile:
		return "video_file"
	case TypeImageDirectory:
		return "image_directory"
	case TypeNetworkStream:
		return "network_stream"
	default:
		return "unknown"
	}
}

// Seekable reports whether sources of this type expose a movable cursor.
// Live capture devices do not.
func (t Type) Seekable() bool {
	return t != TypeLive
}

// Property identifies a numeric property of a source.
type Property string

const (
	// PositionFrames is the zero-based index of the next frame to be read.
	PositionFrames Property = "position_frames"
	// FrameCount is the total number of capture instants, when known.
	FrameCount Property = "frame_count"
)

// Source is a device yielding synchronized view images, one capture
// instant per read. Implementations auto-advance their cursor by one on
// every read.
type Source interface {
	// Type returns the backend variant; it is consulted only to decide
	// whether cursor seeks are legal.
	Type() Type

	// IsOpened reports whether the source can still yield data.
	IsOpened() bool

	// Release signals the source to stop. It is idempotent.
	Release() error

	// Property reads a numeric property. Setting PositionFrames on a
	// non-seekable source must be safe to ignore, but callers are
	// expected to gate on Type().Seekable() first.
	Property(key Property) (float64, error)
	SetProperty(key Property, value float64) error

	// NextFrameLabel returns the label of the frame the next read will
	// yield.
	NextFrameLabel() string

	// Frames returns the view images for the next capture instant. It
	// blocks for as long as the backend blocks. An empty result does not
	// imply the source is closed.
	Frames(ctx context.Context) ([]*frame.Frame, error)

	// CameraMatrices, Extrinsics and Intrinsics return per-view
	// calibration data as parallel slices. Each may be shorter than the
	// view count, or empty for uncalibrated sources.
	CameraMatrices() []*mat.Dense
	Extrinsics() []*mat.Dense
	Intrinsics() []*mat.Dense
}
