// Package inject provides dependency-injected frame sources for testing.
package inject

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/hivision/framebatch/frame"
	"github.com/hivision/framebatch/source"
)

// Source is an injected frame source.
type Source struct {
	source.Source
	TypeFunc           func() source.Type
	IsOpenedFunc       func() bool
	ReleaseFunc        func() error
	PropertyFunc       func(key source.Property) (float64, error)
	SetPropertyFunc    func(key source.Property, value float64) error
	NextFrameLabelFunc func() string
	FramesFunc         func(ctx context.Context) ([]*frame.Frame, error)
	CameraMatricesFunc func() []*mat.Dense
	ExtrinsicsFunc     func() []*mat.Dense
	IntrinsicsFunc     func() []*mat.Dense
}

// Type calls the injected Type or the real version.
func (s *Source) Type() source.Type {
	if s.TypeFunc == nil {
		return s.Source.Type()
	}
	return s.TypeFunc()
}

// IsOpened calls the injected IsOpened or the real version.
func (s *Source) IsOpened() bool {
	if s.IsOpenedFunc == nil {
		return s.Source.IsOpened()
	}
	return s.IsOpenedFunc()
}

// Release calls the injected Release or the real version.
func (s *Source) Release() error {
	if s.ReleaseFunc == nil {
		return s.Source.Release()
	}
	return s.ReleaseFunc()
}

// Property calls the injected Property or the real version.
func (s *Source) Property(key source.Property) (float64, error) {
	if s.PropertyFunc == nil {
		return s.Source.Property(key)
	}
	return s.PropertyFunc(key)
}

// SetProperty calls the injected SetProperty or the real version.
func (s *Source) SetProperty(key source.Property, value float64) error {
	if s.SetPropertyFunc == nil {
		return s.Source.SetProperty(key, value)
	}
	return s.SetPropertyFunc(key, value)
}

// NextFrameLabel calls the injected NextFrameLabel or the real version.
func (s *Source) NextFrameLabel() string {
	if s.NextFrameLabelFunc == nil {
		return s.Source.NextFrameLabel()
	}
	return s.NextFrameLabelFunc()
}

// Frames calls the injected Frames or the real version.
func (s *Source) Frames(ctx context.Context) ([]*frame.Frame, error) {
	if s.FramesFunc == nil {
		return s.Source.Frames(ctx)
	}
	return s.FramesFunc(ctx)
}

// CameraMatrices calls the injected CameraMatrices or the real version.
func (s *Source) CameraMatrices() []*mat.Dense {
	if s.CameraMatricesFunc == nil {
		return s.Source.CameraMatrices()
	}
	return s.CameraMatricesFunc()
}

// Extrinsics calls the injected Extrinsics or the real version.
func (s *Source) Extrinsics() []*mat.Dense {
	if s.ExtrinsicsFunc == nil {
		return s.Source.Extrinsics()
	}
	return s.ExtrinsicsFunc()
}

// Intrinsics calls the injected Intrinsics or the real version.
func (s *Source) Intrinsics() []*mat.Dense {
	if s.IntrinsicsFunc == nil {
		return s.Source.Intrinsics()
	}
	return s.IntrinsicsFunc()
}
