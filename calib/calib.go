// Package calib holds per-view camera calibration data.
package calib

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

// Parameters is the calibration triple for a single view. Any field may
// be nil when the source does not provide it.
type Parameters struct {
	// CameraMatrix is the full 3x4 projection matrix.
	CameraMatrix *mat.Dense
	// Extrinsics is the 3x4 [R|t] world-to-camera transform.
	Extrinsics *mat.Dense
	// Intrinsics is the 3x3 pinhole matrix.
	Intrinsics *mat.Dense
}

// Validate checks the dimensions of every matrix that is present.
func (p *Parameters) Validate() error {
	var err error
	err = multierr.Append(err, checkDims(p.CameraMatrix, "camera matrix", 3, 4))
	err = multierr.Append(err, checkDims(p.Extrinsics, "extrinsics", 3, 4))
	err = multierr.Append(err, checkDims(p.Intrinsics, "intrinsics", 3, 3))
	return err
}

func checkDims(m *mat.Dense, name string, wantRows, wantCols int) error {
	if m == nil {
		return nil
	}
	r, c := m.Dims()
	if r != wantRows || c != wantCols {
		return errors.Errorf("%s must be %dx%d, got %dx%d", name, wantRows, wantCols, r, c)
	}
	return nil
}

// Translation extracts the camera position column from a 3x4 extrinsics
// matrix.
func Translation(extrinsics *mat.Dense) (r3.Vector, error) {
	if err := checkDims(extrinsics, "extrinsics", 3, 4); err != nil {
		return r3.Vector{}, err
	}
	if extrinsics == nil {
		return r3.Vector{}, errors.New("extrinsics matrix is nil")
	}
	return r3.Vector{
		X: extrinsics.At(0, 3),
		Y: extrinsics.At(1, 3),
		Z: extrinsics.At(2, 3),
	}, nil
}
