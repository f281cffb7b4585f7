package frame

import (
	"image"
	"image/color"
	"testing"

	"go.viam.com/test"
)

func TestNewFromBytes(t *testing.T) {
	f, err := NewFromBytes(2, 2, 3, make([]byte, 12))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, f.Width(), test.ShouldEqual, 2)
	test.That(t, f.Height(), test.ShouldEqual, 2)
	test.That(t, f.Channels(), test.ShouldEqual, 3)
	test.That(t, f.Empty(), test.ShouldBeFalse)

	_, err = NewFromBytes(2, 2, 3, make([]byte, 11))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "11 bytes")
}

func TestEmpty(t *testing.T) {
	var nilFrame *Frame
	test.That(t, nilFrame.Empty(), test.ShouldBeTrue)
	test.That(t, New(0, 0, 3).Empty(), test.ShouldBeTrue)
	test.That(t, New(4, 4, 1).Empty(), test.ShouldBeFalse)
}

func TestCloneIsIndependent(t *testing.T) {
	f := New(2, 1, 3)
	copy(f.At(0, 0), []byte{10, 20, 30})

	c := f.Clone()
	test.That(t, c.Pix(), test.ShouldResemble, f.Pix())

	c.At(0, 0)[0] = 99
	test.That(t, f.At(0, 0)[0], test.ShouldEqual, byte(10))

	var nilFrame *Frame
	test.That(t, nilFrame.Clone(), test.ShouldBeNil)
}

func TestNewFromImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(1, 1, color.Gray{Y: 77})
	f := NewFromImage(gray)
	test.That(t, f.Channels(), test.ShouldEqual, 1)
	test.That(t, f.At(1, 1)[0], test.ShouldEqual, byte(77))

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	f = NewFromImage(rgba)
	test.That(t, f.Channels(), test.ShouldEqual, 3)
	// BGR order
	test.That(t, f.At(0, 0), test.ShouldResemble, []byte{3, 2, 1})
}

func TestConvertGrayToBGR(t *testing.T) {
	f := New(2, 1, 1)
	f.Pix()[0] = 5
	f.Pix()[1] = 9

	out, err := ConvertGrayToBGR(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.Channels(), test.ShouldEqual, 3)
	test.That(t, out.Pix(), test.ShouldResemble, []byte{5, 5, 5, 9, 9, 9})

	_, err = ConvertGrayToBGR(New(0, 0, 1))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = ConvertGrayToBGR(New(2, 2, 3))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "1-channel")
}
