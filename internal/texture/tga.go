package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// ErrInvalidTGA is returned for TGA data that is malformed or uses an unsupported variant.
var ErrInvalidTGA = errors.New("invalid TGA image")

const tgaHeaderSize = 18

// DecodeTGA decodes uncompressed (type 2) or RLE (type 10) true-color TGA
// data with 24 or 32 bits per pixel. Alpha is straight, as TGA stores it.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrInvalidTGA, len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped images are not supported", ErrInvalidTGA)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: image type %d (only uncompressed/RLE true-color)", ErrInvalidTGA, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: bit depth %d (only 24/32)", ErrInvalidTGA, bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrInvalidTGA, width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: image ID runs past the end", ErrInvalidTGA)
	}

	d := tgaDecoder{
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		pixelSize:   bpp / 8,
		topToBottom: descriptor&0x20 != 0, // bit 5 selects top-left origin
	}
	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.NRGBA
	src         []byte
	pos         int
	width       int
	height      int
	pixelSize   int
	topToBottom bool
}

// next reads one BGR(A) pixel from the source.
func (d *tgaDecoder) next() ([4]byte, bool) {
	if d.pos+d.pixelSize > len(d.src) {
		return [4]byte{}, false
	}
	p := d.src[d.pos:]
	px := [4]byte{p[2], p[1], p[0], 255}
	if d.pixelSize == 4 {
		px[3] = p[3]
	}
	d.pos += d.pixelSize
	return px, true
}

// put stores pixel i, counted in file order.
func (d *tgaDecoder) put(i int, px [4]byte) {
	x, y := i%d.width, i/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	copy(d.img.Pix[d.img.PixOffset(x, y):], px[:])
}

func (d *tgaDecoder) raw() error {
	total := d.width * d.height
	for i := 0; i < total; i++ {
		px, ok := d.next()
		if !ok {
			return fmt.Errorf("%w: pixel data truncated at pixel %d of %d", ErrInvalidTGA, i, total)
		}
		d.put(i, px)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	total := d.width * d.height
	i := 0
	for i < total {
		if d.pos >= len(d.src) {
			return fmt.Errorf("%w: RLE data truncated at pixel %d of %d", ErrInvalidTGA, i, total)
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated.
			px, ok := d.next()
			if !ok {
				return fmt.Errorf("%w: run packet truncated at pixel %d", ErrInvalidTGA, i)
			}
			for ; count > 0 && i < total; count-- {
				d.put(i, px)
				i++
			}
			continue
		}

		for ; count > 0 && i < total; count-- {
			px, ok := d.next()
			if !ok {
				return fmt.Errorf("%w: raw packet truncated at pixel %d", ErrInvalidTGA, i)
			}
			d.put(i, px)
			i++
		}
	}
	return nil
}
