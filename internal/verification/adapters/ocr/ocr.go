// Package ocr extracts ID card fields through the OCR sidecar. The sidecar only
// reads text lines; field parsing happens here.
package ocr

import (
	"context"

	"kycverify/internal/verification/adapters/sidecar"
	"kycverify/internal/verification/models"
)

const (
	adapterName  = "ocr"
	readTextPath = "/v1/readtext"
)

type readTextResponse struct {
	Lines []string `json:"lines"`
}

// Extractor implements ports.OCRExtractor.
type Extractor struct {
	client *sidecar.Client
	parser *Parser
}

// New returns an extractor talking to the sidecar at baseURL.
func New(baseURL string, opts ...sidecar.Option) *Extractor {
	return &Extractor{
		client: sidecar.New(adapterName, baseURL, opts...),
		parser: NewParser(),
	}
}

// ExtractIDFields reads the card's text lines and parses them.
func (e *Extractor) ExtractIDFields(ctx context.Context, image []byte) (*models.ExtractedIDData, error) {
	lines, err := e.ReadLines(ctx, image)
	if err != nil {
		return nil, err
	}
	return e.parser.Parse(lines), nil
}

// ReadLines returns the raw text lines the sidecar recognized. Errors do not
// name the image; callers know which side of the card they sent.
func (e *Extractor) ReadLines(ctx context.Context, image []byte) ([]string, error) {
	var resp readTextResponse
	if err := e.client.PostImage(ctx, readTextPath, "", image, &resp); err != nil {
		return nil, err
	}
	return resp.Lines, nil
}

func (e *Extractor) Health(ctx context.Context) error {
	return e.client.Health(ctx)
}
