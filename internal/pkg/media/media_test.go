package media

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(w, h, color.White), imaging.PNG))
	return buf.Bytes()
}

func TestNormalize_ResizesLargeImage(t *testing.T) {
	out, changed, err := Normalize(encodePNG(t, 400, 100), "image/png", Options{MaxWidth: 200, MaxHeight: 200})
	require.NoError(t, err)
	assert.True(t, changed)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestNormalize_SmallImageUntouched(t *testing.T) {
	in := encodePNG(t, 50, 50)
	out, changed, err := Normalize(in, "image/png", Options{MaxWidth: 200, MaxHeight: 200})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, in, out)
}

func TestNormalize_OtherTypesPassThrough(t *testing.T) {
	in := []byte("GIF89a...")
	out, changed, err := Normalize(in, "image/gif", Options{MaxWidth: 10, MaxHeight: 10})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, in, out)
}

func TestNormalize_CorruptImage(t *testing.T) {
	_, _, err := Normalize([]byte("not a png"), "image/png", Options{MaxWidth: 10})
	assert.Error(t, err)
}
