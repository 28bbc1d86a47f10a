package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-hub/internal/config"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeLogoDownscalesToWebP(t *testing.T) {
	out, err := NormalizeLogo(bytes.NewReader(pngOf(t, 1024, 256)))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestNormalizeLogoKeepsSmallImages(t *testing.T) {
	out, err := NormalizeLogo(bytes.NewReader(pngOf(t, 40, 60)))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
}

func TestNormalizeLogoRejectsGarbage(t *testing.T) {
	_, err := NormalizeLogo(strings.NewReader("definitely not an image"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}

func TestNormalizeLogoRejectsLargeUploads(t *testing.T) {
	_, err := NormalizeLogo(bytes.NewReader(make([]byte, MaxLogoBytes+1)))
	assert.True(t, httperr.IsBusiness(err, "image_too_large"))
}

func TestLogoKey(t *testing.T) {
	k1 := LogoKey(42)
	k2 := LogoKey(42)

	assert.True(t, strings.HasPrefix(k1, "logos/42/"))
	assert.True(t, strings.HasSuffix(k1, ".webp"))
	assert.NotEqual(t, k1, k2)
}

func TestNewS3Store(t *testing.T) {
	assert.Nil(t, NewS3Store(&config.Config{}))

	s := NewS3Store(&config.Config{
		S3Endpoint:  "http://localhost:9000/",
		S3Region:    "us-east-1",
		S3Bucket:    "barberhub",
		S3AccessKey: "key",
		S3SecretKey: "secret",
	})
	require.NotNil(t, s)
	assert.Equal(t, "http://localhost:9000/barberhub/logos/1/a.webp", s.URL("logos/1/a.webp"))

	s = NewS3Store(&config.Config{
		S3Region:    "sa-east-1",
		S3Bucket:    "barberhub",
		S3AccessKey: "key",
		S3SecretKey: "secret",
		S3PublicURL: "https://cdn.example.com/",
	})
	require.NotNil(t, s)
	assert.Equal(t, "https://cdn.example.com/logos/1/a.webp", s.URL("logos/1/a.webp"))
}
