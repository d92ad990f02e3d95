package storage

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h)))
	return buf.Bytes()
}

func TestValidateImage_Formats(t *testing.T) {
	p := NewImageProcessor()

	info, err := p.ValidateImage(encodePNG(t, 4, 3))
	require.NoError(t, err)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, 4, info.Width)

	var jb bytes.Buffer
	require.NoError(t, jpeg.Encode(&jb, solid(2, 2), nil))
	info, err = p.ValidateImage(jb.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "jpg", info.Ext)

	var gb bytes.Buffer
	require.NoError(t, gif.Encode(&gb, solid(2, 2), nil))
	info, err = p.ValidateImage(gb.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "gif", info.Format)
}

func TestValidateImage_RejectsNonImage(t *testing.T) {
	_, err := NewImageProcessor().ValidateImage([]byte("definitely not an image, just text"))
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, err = NewImageProcessor().ValidateImage(nil)
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestValidateImage_RejectsTruncatedHeader(t *testing.T) {
	data := encodePNG(t, 4, 4)
	_, err := NewImageProcessor().ValidateImage(data[:10])
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestValidateImage_RejectsCorruptPixelData(t *testing.T) {
	data := encodePNG(t, 64, 64)
	// signature + IHDR survive, the pixel data does not
	corrupt := append(append([]byte{}, data[:33]...), []byte("junk where IDAT should be")...)

	_, _, err := image.DecodeConfig(bytes.NewReader(corrupt))
	require.NoError(t, err, "header alone still parses")

	_, err = NewImageProcessor().ValidateImage(corrupt)
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestValidateImage_RejectsTooManyPixels(t *testing.T) {
	data := encodePNG(t, 4, 4)
	binary.BigEndian.PutUint32(data[16:20], 50000)
	binary.BigEndian.PutUint32(data[20:24], 50000)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 50000, cfg.Width)

	_, err = NewImageProcessor().ValidateImage(data)
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestValidateImage_TooLarge(t *testing.T) {
	p := &ImageProcessor{MaxSize: 16}
	_, err := p.ValidateImage(encodePNG(t, 8, 8))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestThumbnail_Size(t *testing.T) {
	thumb, err := NewImageProcessor().Thumbnail(encodePNG(t, 1200, 800))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, ThumbnailWidth, cfg.Width)
	assert.Equal(t, ThumbnailHeight, cfg.Height)
}

func TestThumbnail_Garbage(t *testing.T) {
	_, err := NewImageProcessor().Thumbnail([]byte("nope"))
	assert.Error(t, err)
}
