package api

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageRejectsNonImage(t *testing.T) {
	_, err := NewImage("notes.txt", []byte("plain text, definitely not an image"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestNewImageSizeBoundary(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	header := buf.Bytes()

	pad := func(total int) []byte {
		data := make([]byte, total)
		copy(data, header)
		return data
	}

	// exactly 5 MB fails: the check is strictly less-than
	_, err := NewImage("big.png", pad(MaxImageBytes))
	assert.ErrorIs(t, err, ErrImageTooLarge)

	// one byte under passes
	img, err := NewImage("ok.png", pad(MaxImageBytes-1))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
}

func TestPreviewDataURL(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	img, err := NewImage("p.png", buf.Bytes())
	require.NoError(t, err)
	url := img.PreviewDataURL()
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"), url)
}

func TestHumanizeByteCounts(t *testing.T) {
	msg := humanizeByteCounts("file size 6291456 exceeds limit 5242880")
	assert.Equal(t, "file size 6.00 MB exceeds limit 5.00 MB", msg)

	// untouched when it is not a range error
	same := humanizeByteCounts("order 6291456 not found")
	assert.Equal(t, "order 6291456 not found", same)

	kb := humanizeByteCounts("chunk offset 2048 is out of range")
	assert.Equal(t, "chunk offset 2.00 KB is out of range", kb)
}
