package storage

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/barber-hub/internal/httperr"
)

const (
	MaxLogoBytes = 5 << 20
	LogoMaxSide  = 512
	logoQuality  = 85
)

var logoFormats = map[string]bool{"png": true, "jpeg": true, "gif": true, "webp": true}

// NormalizeLogo decodes an uploaded image, shrinks it to fit
// LogoMaxSide x LogoMaxSide and re-encodes it as WebP.
func NormalizeLogo(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxLogoBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxLogoBytes {
		return nil, httperr.ErrBusiness("image_too_large")
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil || !logoFormats[format] {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	img := fit(src, LogoMaxSide)

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: logoQuality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// fit scales src down, keeping the aspect ratio. Smaller images are kept.
func fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	nw, nh := maxSide, maxSide
	if w > h {
		nh = max(1, h*maxSide/w)
	} else {
		nw = max(1, w*maxSide/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
