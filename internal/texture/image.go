// Package texture converts between image files and RGBA8 bitmaps.
//
// Imports accept PNG, JPEG, BMP, WebP and true-color TGA and always produce tightly
// packed, straight-alpha RGBA8. Exports write PNG.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // register decoder
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// Decode reads PNG, JPEG, BMP, WebP or TGA data. TGA has no signature, so anything
// the standard decoders do not recognize is tried as TGA.
func Decode(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return DecodeTGA(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return ToNRGBA(img), nil
}

// ToNRGBA converts img to straight-alpha RGBA8 with a zero origin and no row padding.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// IsMagentaKey checks if an RGB color matches the magenta transparency key.
// The tolerance (R >= 250, G <= 10, B >= 250) absorbs lossy encoder drift.
func IsMagentaKey(r, g, b uint8) bool {
	return r >= 250 && g <= 10 && b >= 250
}

// ApplyMagentaKey makes magenta pixels transparent black in place, so
// filtering does not bleed the key color into neighbors.
func ApplyMagentaKey(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			if IsMagentaKey(img.Pix[i], img.Pix[i+1], img.Pix[i+2]) {
				clear(img.Pix[i : i+4])
			}
		}
	}
}

// EncodePNG writes tightly packed RGBA8 pixels as a PNG.
func EncodePNG(w io.Writer, width, height int, pix []byte) error {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return fmt.Errorf("encoding PNG: %d bytes for a %dx%d RGBA8 image", len(pix), width, height)
	}
	img := &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	return png.Encode(w, img)
}
