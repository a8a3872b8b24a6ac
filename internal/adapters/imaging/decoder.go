package imaging

import (
	"bytes"
	"fmt"
	"image"

	// Register the supported attachment formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/kamal-hamza/fc-cli/internal/core/ports"
)

// Decoder probes image headers for display metadata. It is the
// optional imaging capability of the system: when data cannot be
// decoded the caller falls back to filename-only display and the
// operation continues text-only.
type Decoder struct{}

// NewDecoder creates a stdlib-backed image decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

var _ ports.ImageDecoder = (*Decoder)(nil)

// Probe decodes the image header without decoding pixel data.
func (d *Decoder) Probe(data []byte) (ports.ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ports.ImageInfo{}, fmt.Errorf("unsupported image data: %w", err)
	}
	return ports.ImageInfo{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}
