package texture

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeGrayscale    = 3  // Uncompressed grayscale
	TGATypeRLE          = 10 // RLE compressed true-color
	TGATypeRLEGrayscale = 11 // RLE compressed grayscale
)

const (
	tgaHeaderSize            = 18
	tgaDescriptorTopToBottom = 0x20
)

// TGAHeader holds the fields of a TGA header needed to size the image.
type TGAHeader struct {
	ImageType   uint8
	Width       int
	Height      int
	BitsPerPix  int
	TopToBottom bool
}

// ReadTGAHeader reads and validates the 18-byte TGA header.
// TGA has no magic number, so the image type and bit depth are the only sanity checks.
func ReadTGAHeader(r io.Reader) (TGAHeader, error) {
	var data [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, data[:]); err != nil {
		return TGAHeader{}, fmt.Errorf("TGA data too short: %w", err)
	}

	colorMapType := data[1]
	h := TGAHeader{
		ImageType:   data[2],
		Width:       int(data[12]) | int(data[13])<<8,
		Height:      int(data[14]) | int(data[15])<<8,
		BitsPerPix:  int(data[16]),
		TopToBottom: data[17]&tgaDescriptorTopToBottom != 0,
	}

	if colorMapType != 0 {
		return TGAHeader{}, fmt.Errorf("color-mapped TGA not supported")
	}
	switch h.ImageType {
	case TGATypeUncompressed, TGATypeRLE:
		if h.BitsPerPix != 24 && h.BitsPerPix != 32 {
			return TGAHeader{}, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", h.BitsPerPix)
		}
	case TGATypeGrayscale, TGATypeRLEGrayscale:
		if h.BitsPerPix != 8 {
			return TGAHeader{}, fmt.Errorf("unsupported grayscale TGA bit depth %d", h.BitsPerPix)
		}
	default:
		return TGAHeader{}, fmt.Errorf("unsupported TGA type %d", h.ImageType)
	}

	return h, nil
}

// DecodeTGAConfig returns the dimensions and color model of a TGA image without decoding pixels.
func DecodeTGAConfig(r io.Reader) (image.Config, error) {
	h, err := ReadTGAHeader(r)
	if err != nil {
		return image.Config{}, err
	}

	model := color.RGBAModel
	if h.ImageType == TGATypeGrayscale || h.ImageType == TGATypeRLEGrayscale {
		model = color.GrayModel
	}
	return image.Config{ColorModel: model, Width: h.Width, Height: h.Height}, nil
}
