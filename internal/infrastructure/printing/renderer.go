// Package printing renders receipts as PDF documents through headless Chrome.
package printing

import (
	"context"
	"time"
)

// Receipt paper is 80mm wide; height grows with content
const (
	ReceiptWidthMM  = 80.0
	ReceiptMarginMM = 4.0
	letterWidthMM   = 215.9
	letterHeightMM  = 279.4
)

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	HTML  string
	Title string
	// WidthMM and HeightMM are the page size; a zero height means continuous paper
	WidthMM  float64
	HeightMM float64
	MarginMM float64
	// Timeout overrides the default rendering timeout
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	PDFData        []byte
	RenderDuration time.Duration
}

// PDFRenderer converts HTML to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}
