package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryObjectStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemoryObjectStore() *memoryObjectStore {
	return &memoryObjectStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *memoryObjectStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	m.objects[key] = data
	m.types[key] = contentType
	return "https://cdn.test/" + key, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestStoreReencodesAsJPEG(t *testing.T) {
	store := newMemoryObjectStore()
	svc := NewService(store, zerolog.Nop())

	result, err := svc.Store(context.Background(), "categories", pngBytes(t, 32, 24))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Key, "categories/"))
	assert.True(t, strings.HasSuffix(result.Key, ".jpg"))
	assert.Equal(t, "https://cdn.test/"+result.Key, result.URL)
	assert.Equal(t, 32, result.Width)
	assert.Equal(t, 24, result.Height)
	assert.Equal(t, "image/jpeg", store.types[result.Key])

	_, format, err := image.Decode(bytes.NewReader(store.objects[result.Key]))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestStoreScalesDownLargeImages(t *testing.T) {
	svc := NewService(newMemoryObjectStore(), zerolog.Nop())

	result, err := svc.Store(context.Background(), "images", pngBytes(t, 2048, 512))
	require.NoError(t, err)

	assert.Equal(t, 1024, result.Width)
	assert.Equal(t, 256, result.Height)
}

func TestStoreDefaultsFolder(t *testing.T) {
	svc := NewService(newMemoryObjectStore(), zerolog.Nop())

	result, err := svc.Store(context.Background(), "", pngBytes(t, 8, 8))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "images/"))
}

func TestStoreRejectsBadFolder(t *testing.T) {
	svc := NewService(newMemoryObjectStore(), zerolog.Nop())

	_, err := svc.Store(context.Background(), "../escape", pngBytes(t, 8, 8))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestStoreRejectsNonImages(t *testing.T) {
	svc := NewService(newMemoryObjectStore(), zerolog.Nop())

	_, err := svc.Store(context.Background(), "images", []byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestStoreRejectsOversizedUploads(t *testing.T) {
	svc := NewService(newMemoryObjectStore(), zerolog.Nop())

	_, err := svc.Store(context.Background(), "images", make([]byte, MaxFileSize+1))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
