// Package producer pulls synchronized frame batches from a Source, one
// batch per call, in source order.
package producer

import (
	"context"
	"math"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/hivision/framebatch/calib"
	"github.com/hivision/framebatch/frame"
	"github.com/hivision/framebatch/source"
)

// UnboundedFrame leaves the upper end of a frame range open.
const UnboundedFrame = math.MaxUint64

// stallThreshold is the number of consecutive empty reads tolerated
// before the source is declared stalled.
const stallThreshold = 500

var (
	// ErrStalled reports a source that stays open but has yielded no data
	// for stallThreshold consecutive reads.
	ErrStalled = errors.New("frame source stalled")
	// ErrUnsupportedChannels reports a primary view whose channel count is
	// neither 1 nor 3.
	ErrUnsupportedChannels = errors.New("input frames must be 3-channel BGR")
)

// Config bounds the frames a Producer will deliver and optionally wires
// in external playback control.
type Config struct {
	// FrameFirst is the cursor position seekable sources start at.
	FrameFirst uint64 `json:"frame_first"`
	// FrameLast is the exclusive upper bound of the frame range, measured
	// in frames delivered. UnboundedFrame never stops.
	FrameLast uint64 `json:"frame_last"`
	// Seek, when non-nil, is consumed once per batch.
	Seek *SeekState `json:"-"`
}

// Validate checks the frame range.
func (c *Config) Validate() error {
	if c.FrameLast != UnboundedFrame && c.FrameLast < c.FrameFirst {
		return errors.Errorf("frame range [%d, %d) is inverted", c.FrameFirst, c.FrameLast)
	}
	return nil
}

// Producer owns the acquisition loop state for one source. It is not
// safe for concurrent use; the pull loop is expected to be a single
// goroutine.
type Producer struct {
	src    source.Source
	seek   *SeekState
	logger golog.Logger

	framesToProcess  uint64
	processed        uint64
	consecutiveEmpty uint64
}

// New returns a producer over src. If the source is seekable, the cursor
// is moved to cfg.FrameFirst; a failure to do so is logged but does not
// abort construction, so the first Next call may fail instead.
func New(src source.Source, cfg Config, logger golog.Logger) (*Producer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	framesToProcess := uint64(UnboundedFrame)
	if cfg.FrameLast != UnboundedFrame {
		framesToProcess = cfg.FrameLast - cfg.FrameFirst
	}
	p := &Producer{
		src:             src,
		seek:            cfg.Seek,
		logger:          logger,
		framesToProcess: framesToProcess,
	}
	if src.Type().Seekable() {
		if err := src.SetProperty(source.PositionFrames, float64(cfg.FrameFirst)); err != nil {
			logger.Errorw("cannot seek source to first frame", "frame", cfg.FrameFirst, "error", err)
		}
	}
	return p, nil
}

// Processed returns the number of batches delivered so far.
func (p *Producer) Processed() uint64 {
	return p.processed
}

// Next pulls the next synchronized batch. The returned bool reports
// whether the source is still open; false together with a nil batch is
// the normal end-of-stream signal. A nil batch from an open source means
// no usable data was available this cycle and the caller should pull
// again. Terminal conditions (stall, unsupported channel layout, source
// I/O failure) come back as errors and fail only the current call.
func (p *Producer) Next(ctx context.Context) (bool, Batch, error) {
	if p.framesToProcess != UnboundedFrame && p.processed >= p.framesToProcess {
		if err := p.src.Release(); err != nil {
			return false, nil, errors.Wrap(err, "releasing frame source")
		}
	}
	open := p.src.IsOpened()
	if !open {
		return false, nil, nil
	}

	if p.seek != nil {
		// The increment is reset inside Consume even if the move below
		// fails; a stale request must never leak into the next cycle.
		if delta := p.seek.Consume(); delta != 0 {
			if err := p.moveCursor(delta); err != nil {
				return open, nil, err
			}
		}
	}

	label := p.src.NextFrameLabel()
	pos, err := p.src.Property(source.PositionFrames)
	if err != nil {
		return open, nil, errors.Wrap(err, "reading cursor position")
	}
	frameNumber := uint64(pos)
	views, err := p.src.Frames(ctx)
	if err != nil {
		return open, nil, errors.Wrap(err, "reading frames")
	}
	matrices := p.src.CameraMatrices()
	extrinsics := p.src.Extrinsics()
	intrinsics := p.src.Intrinsics()

	emptyRead := len(views) == 0 || views[0].Empty()
	if err := p.observeEmpty(emptyRead); err != nil {
		return open, nil, err
	}
	if len(views) == 0 {
		return open, nil, nil
	}

	batch := make(Batch, len(views))
	primary := &batch[0]
	primary.Name = label
	primary.FrameNumber = frameNumber
	primary.Input = views[0]
	primary.Calib = calibAt(0, matrices, extrinsics, intrinsics)
	if err := p.normalizeChannels(primary); err != nil {
		return open, nil, err
	}
	primary.Output = primary.Input.Clone()
	for i := 1; i < len(views); i++ {
		d := &batch[i]
		d.Name = primary.Name
		d.FrameNumber = primary.FrameNumber
		d.Input = views[i]
		d.Output = views[i].Clone()
		d.Calib = calibAt(i, matrices, extrinsics, intrinsics)
	}

	if !open || batch[0].Input.Empty() {
		return open, nil, nil
	}
	p.processed++
	return open, batch, nil
}

func (p *Producer) moveCursor(delta int64) error {
	pos, err := p.src.Property(source.PositionFrames)
	if err != nil {
		return errors.Wrap(err, "reading cursor position for seek")
	}
	if err := p.src.SetProperty(source.PositionFrames, pos+float64(delta)); err != nil {
		return errors.Wrapf(err, "moving cursor by %d", delta)
	}
	return nil
}

// observeEmpty tracks consecutive empty reads and turns a long run into
// the terminal stall error.
func (p *Producer) observeEmpty(emptyRead bool) error {
	if !emptyRead {
		p.consecutiveEmpty = 0
		return nil
	}
	p.consecutiveEmpty++
	if p.consecutiveEmpty >= stallThreshold {
		return errors.Wrapf(ErrStalled, "detected too many (%d) empty frames in a row", p.consecutiveEmpty)
	}
	return nil
}

// normalizeChannels enforces the 3-channel convention on the primary
// view. Single-channel frames are converted; empty frames are left for
// the discard check.
func (p *Producer) normalizeChannels(d *Datum) error {
	if d.Input.Empty() {
		return nil
	}
	switch d.Input.Channels() {
	case 3:
		return nil
	case 1:
		p.logger.Infow("input frame is not 3-channel BGR; converting gray frame", "frame", d.Name)
		converted, err := frame.ConvertGrayToBGR(d.Input)
		if err != nil {
			return errors.Wrap(err, "converting gray frame")
		}
		d.Input = converted
		return nil
	default:
		return errors.Wrapf(ErrUnsupportedChannels, "got %d channels", d.Input.Channels())
	}
}

// calibAt assembles the calibration triple for view i from parallel
// slices that may each be shorter than the view count. Views beyond the
// camera matrix slice carry no calibration at all.
func calibAt(i int, matrices, extrinsics, intrinsics []*mat.Dense) *calib.Parameters {
	if i >= len(matrices) {
		return nil
	}
	params := &calib.Parameters{CameraMatrix: matrices[i]}
	if i < len(extrinsics) {
		params.Extrinsics = extrinsics[i]
	}
	if i < len(intrinsics) {
		params.Intrinsics = intrinsics[i]
	}
	return params
}
