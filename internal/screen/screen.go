// Package screen captures the primary display.
package screen

import (
	"errors"
	"image"

	"github.com/kbinani/screenshot"
	"golang.org/x/image/draw"
)

// Grabber captures the primary display and scales the frame by the quality
// factor, trading resolution for upload size.
type Grabber struct {
	quality float64
}

func New(quality float64) *Grabber {
	return &Grabber{quality: quality}
}

func (g *Grabber) Capture() (image.Image, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, errors.New("no active display")
	}

	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return nil, err
	}
	if g.quality >= 1 {
		return img, nil
	}

	b := img.Bounds()
	w := int(float64(b.Dx()) * g.quality)
	h := int(float64(b.Dy()) * g.quality)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, draw.Over, nil)
	return scaled, nil
}
