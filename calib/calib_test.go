package calib

import (
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestValidate(t *testing.T) {
	empty := &Parameters{}
	test.That(t, empty.Validate(), test.ShouldBeNil)

	good := &Parameters{
		CameraMatrix: mat.NewDense(3, 4, nil),
		Extrinsics:   mat.NewDense(3, 4, nil),
		Intrinsics:   mat.NewDense(3, 3, nil),
	}
	test.That(t, good.Validate(), test.ShouldBeNil)

	bad := &Parameters{Intrinsics: mat.NewDense(4, 4, nil)}
	err := bad.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "intrinsics must be 3x3")
}

func TestTranslation(t *testing.T) {
	ext := mat.NewDense(3, 4, []float64{
		1, 0, 0, 10,
		0, 1, 0, -20,
		0, 0, 1, 30,
	})
	v, err := Translation(ext)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v.X, test.ShouldEqual, 10.0)
	test.That(t, v.Y, test.ShouldEqual, -20.0)
	test.That(t, v.Z, test.ShouldEqual, 30.0)

	_, err = Translation(nil)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = Translation(mat.NewDense(3, 3, nil))
	test.That(t, err, test.ShouldNotBeNil)
}
