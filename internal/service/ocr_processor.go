package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// OCRProcessor recognizes text in uploaded images with Tesseract.
// The underlying client is not safe for concurrent use, so calls are
// serialized.
type OCRProcessor struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewOCRProcessor creates a Tesseract client for the given language(s),
// e.g. "eng" or "eng+fra". Close must be called to release it.
func NewOCRProcessor(language string) (*OCRProcessor, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set OCR language: %w", err)
		}
	}
	return &OCRProcessor{client: client}, nil
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.)
func (o *OCRProcessor) RecognizeImage(imageData []byte) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := o.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// Close releases OCR resources
func (o *OCRProcessor) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.client != nil {
		err := o.client.Close()
		o.client = nil
		return err
	}
	return nil
}
