package vision

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/kedare/lens/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFile(t *testing.T, w, h int) search.ImageFile {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))

	return search.ImageFile{Name: "shot.png", Data: buf.Bytes()}
}

type brokenAnalyzer struct{ Mock }

type offlineTranslator struct{ Mock }

func (offlineTranslator) Translate(context.Context, string, string) (string, error) {
	return "", errors.New("quota exceeded")
}

type silentImage struct{ Mock }

func (silentImage) DetectText(context.Context, search.ImageFile) (string, error) {
	return "", nil
}

func (silentImage) Translate(context.Context, string, string) (string, error) {
	return "", errors.New("should not be called")
}

func (brokenAnalyzer) DetectText(context.Context, search.ImageFile) (string, error) {
	return "", errors.New("ocr offline")
}

func TestAnalyze(t *testing.T) {
	a, err := Analyze(context.Background(), Mock{}, pngFile(t, 4, 4), "")
	require.NoError(t, err)

	require.Len(t, a.Objects, 2)
	assert.Equal(t, "Person", a.Objects[0].Label)
	assert.InDelta(t, 0.95, a.Objects[0].Confidence, 1e-9)
	assert.Equal(t, search.BoundingBox{X: 300, Y: 200, Width: 300, Height: 200}, a.Objects[1].BoundingBox)
	assert.Equal(t, "This is some sample text detected in the image.", a.Text)
	assert.Empty(t, a.Translation)
}

func TestAnalyzeFailure(t *testing.T) {
	_, err := Analyze(context.Background(), brokenAnalyzer{}, pngFile(t, 1, 1), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text detection failed: ocr offline")
}

func TestMockHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Mock{Delay: time.Hour}.DetectObjects(ctx, search.ImageFile{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeTranslatesDetectedText(t *testing.T) {
	a, err := Analyze(context.Background(), Mock{}, pngFile(t, 2, 2), "en")
	require.NoError(t, err)
	assert.Equal(t, "This is some sample text detected in the image.", a.Text)
	assert.Equal(t, "This is the translated text.", a.Translation)
}

func TestAnalyzeTranslationFailure(t *testing.T) {
	_, err := Analyze(context.Background(), offlineTranslator{}, pngFile(t, 2, 2), "fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "translation to fr failed: quota exceeded")
}

func TestAnalyzeSkipsTranslationWithoutText(t *testing.T) {
	a, err := Analyze(context.Background(), silentImage{}, pngFile(t, 2, 2), "fr")
	require.NoError(t, err)
	assert.Empty(t, a.Text)
	assert.Empty(t, a.Translation)
}

func TestInspect(t *testing.T) {
	file := pngFile(t, 64, 32)

	info, err := Inspect(file)
	require.NoError(t, err)
	assert.Equal(t, 64, info.Width)
	assert.Equal(t, 32, info.Height)
	assert.Equal(t, "image/png", info.Type)
	assert.Contains(t, info.Size, "B")
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect(search.ImageFile{Name: "notes.txt", Data: []byte("hello")})
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
