// Package vision analyses uploaded images: object detection, text
// recognition and translation.
package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kedare/lens/internal/logger"
	"github.com/kedare/lens/internal/search"
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedImage is returned when the image format cannot be decoded.
var ErrUnsupportedImage = errors.New("unsupported image format")

// Analyzer inspects image contents.
type Analyzer interface {
	DetectObjects(ctx context.Context, file search.ImageFile) ([]search.DetectedObject, error)
	DetectText(ctx context.Context, file search.ImageFile) (string, error)
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Analysis combines the results of a full image analysis.
type Analysis struct {
	Objects []search.DetectedObject
	Text    string
	// Translation is Text in the requested language, empty when no
	// language was requested or no text was found.
	Translation string
}

// Analyze runs object and text detection concurrently, then translates the
// detected text into targetLanguage when one is given.
func Analyze(ctx context.Context, a Analyzer, file search.ImageFile, targetLanguage string) (Analysis, error) {
	var result Analysis

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		objects, err := a.DetectObjects(gctx, file)
		if err != nil {
			return fmt.Errorf("object detection failed: %w", err)
		}
		result.Objects = objects

		return nil
	})

	g.Go(func() error {
		text, err := a.DetectText(gctx, file)
		if err != nil {
			return fmt.Errorf("text detection failed: %w", err)
		}
		result.Text = text

		return nil
	})

	if err := g.Wait(); err != nil {
		return Analysis{}, err
	}

	if targetLanguage != "" && result.Text != "" {
		translated, err := a.Translate(ctx, result.Text, targetLanguage)
		if err != nil {
			return Analysis{}, fmt.Errorf("translation to %s failed: %w", targetLanguage, err)
		}
		result.Translation = translated
	}

	logger.Log.Debugf("Analyzed %s: %d objects, %d chars of text", file.Name, len(result.Objects), len(result.Text))

	return result, nil
}

// Inspect decodes the image header and describes the upload.
func Inspect(file search.ImageFile) (search.UploadedImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return search.UploadedImage{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, file.Name, err)
	}

	return search.UploadedImage{
		Width:  cfg.Width,
		Height: cfg.Height,
		Type:   "image/" + format,
		Size:   humanize.IBytes(uint64(len(file.Data))),
	}, nil
}

// Mock returns fixed detections after an optional delay.
type Mock struct {
	Delay time.Duration
}

func (m Mock) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(m.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m Mock) DetectObjects(ctx context.Context, _ search.ImageFile) ([]search.DetectedObject, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	return []search.DetectedObject{
		{Label: "Person", Confidence: 0.95, BoundingBox: search.BoundingBox{X: 100, Y: 100, Width: 200, Height: 400}},
		{Label: "Car", Confidence: 0.85, BoundingBox: search.BoundingBox{X: 300, Y: 200, Width: 300, Height: 200}},
	}, nil
}

func (m Mock) DetectText(ctx context.Context, _ search.ImageFile) (string, error) {
	if err := m.wait(ctx); err != nil {
		return "", err
	}

	return "This is some sample text detected in the image.", nil
}

func (m Mock) Translate(ctx context.Context, _, _ string) (string, error) {
	if err := m.wait(ctx); err != nil {
		return "", err
	}

	return "This is the translated text.", nil
}
