package docimage

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
)

// DefaultMaxDimension caps the longest side of page images sent to the model.
const DefaultMaxDimension = 900

// Renderer converts document bytes into model-ready PNG page images and
// extracts digital text from PDFs.
type Renderer struct {
	maxDimension int
}

func NewRenderer(maxDimension int) *Renderer {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Renderer{maxDimension: maxDimension}
}

// PDFContent is the per-page outcome of scanning a PDF: digital text from
// pages that carry any, and downscaled PNG rasters for the pages that do not.
type PDFContent struct {
	PageTexts  []string
	PageImages [][]byte
}

// HasDigitalText reports whether any page yielded non-blank digital text.
func (c PDFContent) HasDigitalText() bool {
	return len(c.PageTexts) > 0
}

// DigitalText concatenates the digital text of all pages that had any.
func (c PDFContent) DigitalText() string {
	return strings.Join(c.PageTexts, "\n")
}

// ScanPDF walks every page of a PDF: pages with digital text contribute to
// PageTexts, text-less pages are rasterized and downscaled into PageImages.
func (r *Renderer) ScanPDF(data []byte) (PDFContent, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return PDFContent{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var content PDFContent
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err == nil && strings.TrimSpace(pageText) != "" {
			content.PageTexts = append(content.PageTexts, pageText)
			continue
		}

		img, err := doc.Image(i)
		if err != nil {
			return PDFContent{}, fmt.Errorf("failed to rasterize page %d: %w", i+1, err)
		}
		png, err := r.encodePNG(r.downscale(img))
		if err != nil {
			return PDFContent{}, fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}
		content.PageImages = append(content.PageImages, png)
	}

	return content, nil
}

// RenderPDF rasterizes every page of a PDF to a downscaled PNG, regardless
// of digital text. Used by the extractor, which always works on images.
func (r *Renderer) RenderPDF(data []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("failed to rasterize page %d: %w", i+1, err)
		}
		png, err := r.encodePNG(r.downscale(img))
		if err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}
		pages = append(pages, png)
	}

	return pages, nil
}

// RenderImage decodes a raster image (JPEG/PNG), downscales it and re-encodes
// it as PNG.
func (r *Renderer) RenderImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return r.encodePNG(r.downscale(img))
}

// downscale caps the longest side at maxDimension, preserving aspect ratio.
// Smaller images pass through untouched.
func (r *Renderer) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= r.maxDimension && bounds.Dy() <= r.maxDimension {
		return img
	}
	return imaging.Fit(img, r.maxDimension, r.maxDimension, imaging.Lanczos)
}

func (r *Renderer) encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
