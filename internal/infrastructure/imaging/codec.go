// Package imaging normalizes inbound data-URI image payloads into the single
// canonical stored format (webp). Animated gif sources stay animated; every
// other raster source becomes a single still frame.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/gif"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "image/jpeg"
	_ "image/png"

	"github.com/teamsite/content-api/internal/core/domain"
	"github.com/teamsite/content-api/internal/core/ports"
)

const (
	uriPrefix    = "data:image/"
	uriSeparator = ";base64,"
	webpSubtype  = "webp"
	gifSubtype   = "gif"
)

// Codec implements ports.ImageCodec. It is stateless and safe for concurrent
// use.
type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

// Decode parses a data:image/<subtype>;base64,<payload> URI and transcodes it
// to webp. Payloads already declared as webp pass through without re-encoding.
func (c *Codec) Decode(dataURI string) (*ports.DecodedImage, error) {
	subtype, payload, err := splitDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: base64 payload: %v", domain.ErrInvalidImage, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrInvalidImage)
	}

	switch subtype {
	case webpSubtype:
		// Already canonical, skip the decode/encode round trip.
		return &ports.DecodedImage{Data: raw, SourceFormat: webpSubtype}, nil
	case gifSubtype:
		return transcodeAnimated(raw)
	default:
		return transcodeStill(raw, subtype)
	}
}

func splitDataURI(dataURI string) (subtype, payload string, err error) {
	rest, ok := strings.CutPrefix(dataURI, uriPrefix)
	if !ok {
		return "", "", fmt.Errorf("%w: not an image data URI", domain.ErrInvalidImage)
	}
	subtype, payload, ok = strings.Cut(rest, uriSeparator)
	if !ok || subtype == "" {
		return "", "", fmt.Errorf("%w: malformed data URI", domain.ErrInvalidImage)
	}
	if payload == "" {
		return "", "", fmt.Errorf("%w: empty payload", domain.ErrInvalidImage)
	}
	return strings.ToLower(subtype), payload, nil
}

func transcodeStill(raw []byte, subtype string) (*ports.DecodedImage, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrInvalidImage, subtype, err)
	}

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("%w: encode webp: %v", domain.ErrInvalidImage, err)
	}
	return &ports.DecodedImage{Data: buf.Bytes(), SourceFormat: subtype}, nil
}

// transcodeAnimated converts every gif frame so multi-frame sources stay
// animated in the canonical format.
func transcodeAnimated(raw []byte) (*ports.DecodedImage, error) {
	src, err := gif.DecodeAll(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode gif: %v", domain.ErrInvalidImage, err)
	}
	if len(src.Image) == 0 {
		return nil, fmt.Errorf("%w: gif without frames", domain.ErrInvalidImage)
	}

	ani := nativewebp.Animation{
		Images:    make([]image.Image, 0, len(src.Image)),
		Durations: make([]uint, 0, len(src.Image)),
		Disposals: make([]uint, 0, len(src.Image)),
		LoopCount: loopCount(src.LoopCount),
	}
	for i, frame := range src.Image {
		ani.Images = append(ani.Images, frame)
		ani.Durations = append(ani.Durations, frameDuration(src.Delay, i))
		ani.Disposals = append(ani.Disposals, frameDisposal(src.Disposal, i))
	}

	var buf bytes.Buffer
	if err := nativewebp.EncodeAll(&buf, &ani, nil); err != nil {
		return nil, fmt.Errorf("%w: encode animated webp: %v", domain.ErrInvalidImage, err)
	}
	return &ports.DecodedImage{Data: buf.Bytes(), SourceFormat: gifSubtype, Animated: len(src.Image) > 1}, nil
}

// frameDuration converts a gif delay (hundredths of a second) to webp
// milliseconds, defaulting to 100ms when the gif omits timing.
func frameDuration(delays []int, i int) uint {
	if i >= len(delays) || delays[i] <= 0 {
		return 100
	}
	return uint(delays[i]) * 10
}

// frameDisposal maps gif disposal modes onto webp's keep (0) / background (1).
func frameDisposal(disposals []byte, i int) uint {
	if i >= len(disposals) {
		return 0
	}
	switch disposals[i] {
	case gif.DisposalBackground, gif.DisposalPrevious:
		return 1
	default:
		return 0
	}
}

// loopCount maps gif loop semantics (0 = forever, -1 = once) onto webp's
// (0 = forever).
func loopCount(n int) uint16 {
	if n < 0 {
		return 1
	}
	return uint16(n)
}
