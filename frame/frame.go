// Package frame provides the interleaved pixel buffer type shared by
// frame sources and the batch producer.
package frame

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Frame is an interleaved 8-bit pixel buffer. Three-channel frames are
// stored in BGR order, matching the convention of most capture backends.
type Frame struct {
	width, height, channels int
	pix                     []byte
}

// New allocates a zeroed frame of the given dimensions.
func New(width, height, channels int) *Frame {
	return &Frame{
		width:    width,
		height:   height,
		channels: channels,
		pix:      make([]byte, width*height*channels),
	}
}

// NewFromBytes wraps an existing interleaved buffer without copying it.
func NewFromBytes(width, height, channels int, pix []byte) (*Frame, error) {
	if want := width * height * channels; len(pix) != want {
		return nil, errors.Errorf("pixel buffer has %d bytes; %dx%dx%d frame needs %d",
			len(pix), width, height, channels, want)
	}
	return &Frame{width: width, height: height, channels: channels, pix: pix}, nil
}

// NewFromImage converts a stdlib image into a frame. A *image.Gray stays
// single-channel; everything else becomes 3-channel BGR.
func NewFromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if gray, ok := img.(*image.Gray); ok {
		f := New(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				f.pix[y*w+x] = gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			}
		}
		return f
	}
	f := New(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			k := (y*w + x) * 3
			f.pix[k] = c.B
			f.pix[k+1] = c.G
			f.pix[k+2] = c.R
		}
	}
	return f
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Channels returns the number of interleaved channels per pixel.
func (f *Frame) Channels() int { return f.channels }

// Bounds returns the frame's pixel rectangle.
func (f *Frame) Bounds() image.Rectangle {
	if f == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, f.width, f.height)
}

// Pix exposes the underlying interleaved buffer.
func (f *Frame) Pix() []byte { return f.pix }

// At returns the channel values of the pixel at (x, y) as a subslice of
// the underlying buffer; mutating it mutates the frame.
func (f *Frame) At(x, y int) []byte {
	k := (y*f.width + x) * f.channels
	return f.pix[k : k+f.channels]
}

// Empty reports whether the frame holds no pixel data.
func (f *Frame) Empty() bool {
	return f == nil || f.width <= 0 || f.height <= 0 || len(f.pix) == 0
}

// Clone returns a deep copy of the frame. Cloning a nil frame yields nil.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	pix := make([]byte, len(f.pix))
	copy(pix, f.pix)
	return &Frame{width: f.width, height: f.height, channels: f.channels, pix: pix}
}

// ConvertGrayToBGR replicates a single-channel frame into a new 3-channel
// BGR frame.
func ConvertGrayToBGR(f *Frame) (*Frame, error) {
	if f.Empty() {
		return nil, errors.New("cannot convert an empty frame")
	}
	if f.channels != 1 {
		return nil, errors.Errorf("expected a 1-channel frame, got %d channels", f.channels)
	}
	out := New(f.width, f.height, 3)
	for i, v := range f.pix {
		out.pix[i*3] = v
		out.pix[i*3+1] = v
		out.pix[i*3+2] = v
	}
	return out, nil
}
