package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"validocs/internal/docimage"
	"validocs/internal/models"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestPreprocessService(gen *fakeGenerator) *PreprocessService {
	renderer := docimage.NewRenderer(docimage.DefaultMaxDimension)
	return NewPreprocessService(gen, renderer, time.Second, testLogger())
}

func TestProcessUnsupportedFormat(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestPreprocessService(gen)

	result := svc.Process(context.Background(), []byte("whatever"), "application/msword")

	assert.Equal(t, models.PreprocessUnsupported, result.Status)
	assert.NotEmpty(t, result.Err)

	// an unsupported format never reaches the model
	text, vision := gen.calls()
	assert.Zero(t, text)
	assert.Zero(t, vision)
}

func TestProcessImageOCR(t *testing.T) {
	gen := &fakeGenerator{visionReply: "  CERTIFICADO \n DE   RESIDENCIA  "}
	svc := newTestPreprocessService(gen)

	result := svc.Process(context.Background(), testPNG(t, 100, 60), models.ContentTypePNG)

	assert.Equal(t, models.PreprocessLLMOCR, result.Status)
	assert.Equal(t, "CERTIFICADO DE RESIDENCIA", result.RawText)

	_, vision := gen.calls()
	assert.Equal(t, 1, vision)
	assert.Equal(t, 1, gen.lastImageLen)
}

func TestProcessImageNoTextFound(t *testing.T) {
	gen := &fakeGenerator{visionReply: "   \n  "}
	svc := newTestPreprocessService(gen)

	result := svc.Process(context.Background(), testPNG(t, 100, 60), models.ContentTypePNG)

	assert.Equal(t, models.PreprocessNoTextFound, result.Status)
	assert.Empty(t, result.RawText)
	assert.NotEmpty(t, result.Err)
}

func TestProcessImageModelError(t *testing.T) {
	gen := &fakeGenerator{visionErr: errors.New("backend unavailable")}
	svc := newTestPreprocessService(gen)

	result := svc.Process(context.Background(), testPNG(t, 100, 60), models.ContentTypeJPEG)

	assert.Equal(t, models.PreprocessFailed, result.Status)
	assert.NotEmpty(t, result.Err)
}

func TestProcessCorruptImage(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestPreprocessService(gen)

	result := svc.Process(context.Background(), []byte("not an image at all"), models.ContentTypePNG)

	assert.Equal(t, models.PreprocessFailed, result.Status)

	_, vision := gen.calls()
	assert.Zero(t, vision)
}
