package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"gonum.org/v1/gonum/mat"

	"github.com/hivision/framebatch/calib"
	"github.com/hivision/framebatch/frame"
)

// StaticConfig configures a Static source.
type StaticConfig struct {
	// Name prefixes frame labels. Optional.
	Name string
	// Type is the variant the source should present itself as.
	Type Type
	// LiveInterval paces reads to simulate a capture device running at a
	// fixed frame rate. Only honored when Type is TypeLive.
	LiveInterval time.Duration
	// CloseAtEnd releases the source once the cursor moves past the last
	// instant, the way a directory enumerator finishes.
	CloseAtEnd bool
	// CameraMatrices, Extrinsics and Intrinsics are per-view calibration
	// data, each possibly shorter than the view count.
	CameraMatrices []*mat.Dense
	Extrinsics     []*mat.Dense
	Intrinsics     []*mat.Dense
}

// Validate checks the calibration matrices' dimensions.
func (cfg *StaticConfig) Validate() error {
	views := len(cfg.CameraMatrices)
	if n := len(cfg.Extrinsics); n > views {
		views = n
	}
	if n := len(cfg.Intrinsics); n > views {
		views = n
	}
	for i := 0; i < views; i++ {
		params := calib.Parameters{}
		if i < len(cfg.CameraMatrices) {
			params.CameraMatrix = cfg.CameraMatrices[i]
		}
		if i < len(cfg.Extrinsics) {
			params.Extrinsics = cfg.Extrinsics[i]
		}
		if i < len(cfg.Intrinsics) {
			params.Intrinsics = cfg.Intrinsics[i]
		}
		if err := params.Validate(); err != nil {
			return errors.Wrapf(err, "view %d", i)
		}
	}
	return nil
}

// Static is a seekable Source backed by a fixed in-memory sequence of
// capture instants. It is useful in tests and for replaying pre-decoded
// footage.
type Static struct {
	cfg    StaticConfig
	logger golog.Logger

	mu       sync.Mutex
	instants [][]*frame.Frame
	pos      int64
	released bool
}

// NewStatic returns a source that yields the given capture instants in
// order. Each instant is the set of synchronized views for one read.
func NewStatic(cfg StaticConfig, instants [][]*frame.Frame, logger golog.Logger) (*Static, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Static{cfg: cfg, logger: logger, instants: instants}, nil
}

// Type returns the configured variant.
func (s *Static) Type() Type { return s.cfg.Type }

// IsOpened reports whether the source has been released.
func (s *Static) IsOpened() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.released
}

// Release stops the source. Subsequent reads yield nothing.
func (s *Static) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
	return nil
}

// Property reads the cursor position or the total instant count.
func (s *Static) Property(key Property) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case PositionFrames:
		return float64(s.pos), nil
	case FrameCount:
		return float64(len(s.instants)), nil
	default:
		return 0, errors.Errorf("unknown property %q", key)
	}
}

// SetProperty moves the cursor; out-of-range positions are clamped.
func (s *Static) SetProperty(key Property, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key != PositionFrames {
		return errors.Errorf("cannot set property %q", key)
	}
	pos := int64(value)
	if pos < 0 {
		pos = 0
	}
	if max := int64(len(s.instants)); pos > max {
		pos = max
	}
	if float64(pos) != value {
		s.logger.Debugw("clamping cursor position", "requested", value, "clamped", pos)
	}
	s.pos = pos
	return nil
}

// NextFrameLabel returns the zero-padded position of the next read,
// prefixed with the configured name.
func (s *Static) NextFrameLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Name != "" {
		return fmt.Sprintf("%s_%012d", s.cfg.Name, s.pos)
	}
	return fmt.Sprintf("%012d", s.pos)
}

// Frames yields the views at the cursor and advances it by one. Reads
// past the end yield nothing; with CloseAtEnd set they also release the
// source.
func (s *Static) Frames(ctx context.Context) ([]*frame.Frame, error) {
	if s.cfg.Type == TypeLive && s.cfg.LiveInterval > 0 {
		if !goutils.SelectContextOrWait(ctx, s.cfg.LiveInterval) {
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil, nil
	}
	if s.pos >= int64(len(s.instants)) {
		if s.cfg.CloseAtEnd {
			s.released = true
		}
		return nil, nil
	}
	views := s.instants[s.pos]
	s.pos++
	return views, nil
}

// CameraMatrices returns the per-view projection matrices.
func (s *Static) CameraMatrices() []*mat.Dense { return s.cfg.CameraMatrices }

// Extrinsics returns the per-view extrinsic matrices.
func (s *Static) Extrinsics() []*mat.Dense { return s.cfg.Extrinsics }

// Intrinsics returns the per-view intrinsic matrices.
func (s *Static) Intrinsics() []*mat.Dense { return s.cfg.Intrinsics }
