package lawsite

import (
	"bytes"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessImage(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("wide image is scaled down", func(t *testing.T) {
		img, data, err := processImage(bytes.NewReader(pngBytes(t, 2400, 1000)), "Signing Day.PNG", now)
		require.NoError(t, err)
		assert.Equal(t, "signing-day.jpg", img.Filename)
		assert.Equal(t, "Signing Day.PNG", img.OriginalName)
		assert.Equal(t, maxImageWidth, img.Width)
		assert.Equal(t, 500, img.Height)
		assert.Equal(t, len(data), img.Size)
		assert.Equal(t, "2024-06-01T12:00:00Z", img.UploadedAt)

		cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, maxImageWidth, cfg.Width)
	})

	t.Run("small image keeps its size", func(t *testing.T) {
		img, _, err := processImage(bytes.NewReader(pngBytes(t, 40, 30)), "???.png", now)
		require.NoError(t, err)
		assert.Equal(t, "image.jpg", img.Filename)
		assert.Equal(t, 40, img.Width)
		assert.Equal(t, 30, img.Height)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := processImage(bytes.NewReader([]byte("nope")), "x.png", now)
		assert.Error(t, err)
	})
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "/public/uploads/a.jpg", Image{Filename: "a.jpg"}.URL())
}
