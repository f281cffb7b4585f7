package producer

import (
	"github.com/hivision/framebatch/calib"
	"github.com/hivision/framebatch/frame"
)

// Datum is one view's record for a single capture instant.
type Datum struct {
	// Name labels the capture instant; all views of one batch share it.
	Name string
	// FrameNumber is the source cursor position the instant was read at.
	FrameNumber uint64
	// Input is the captured image, normalized to 3 channels for view 0.
	Input *frame.Frame
	// Output starts as a copy of Input and is owned by downstream stages.
	Output *frame.Frame
	// Calib is the view's calibration triple, when the source provides one.
	Calib *calib.Parameters
}

// Batch is the set of per-view datums for one capture instant. Element 0
// is populated first and acts as the identity template for the rest.
type Batch []Datum
