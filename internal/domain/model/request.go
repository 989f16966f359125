package model

import (
	"fmt"
	"strings"
)

// RawRequest carries an estimation request as it arrives from untyped
// collaborators (CLI arguments, JSON bodies). Parse turns it into a Request.
type RawRequest struct {
	Industry   string `json:"industry"`
	Size       string `json:"size"`
	Complexity string `json:"complexity"`
	PrevIssues int    `json:"prev_issues"`
	AddDelay   int    `json:"add_delay"`
}

// Request is a validated estimation request for a new engagement.
type Request struct {
	Industry   string
	Size       Size
	Complexity Complexity
	PrevIssues int
	AddDelay   int
}

// Parse validates every field that can be checked without reference data.
// Industry membership is checked by the encoder against the history.
func (r RawRequest) Parse() (Request, error) {
	industry := strings.TrimSpace(r.Industry)
	if industry == "" {
		return Request{}, fmt.Errorf("industry is empty: %w", ErrUnknownCategory)
	}
	size, err := ParseSize(r.Size)
	if err != nil {
		return Request{}, err
	}
	complexity, err := ParseComplexity(r.Complexity)
	if err != nil {
		return Request{}, err
	}
	if r.PrevIssues < 0 {
		return Request{}, fmt.Errorf("prev_issues %d must be non-negative: %w", r.PrevIssues, ErrInvalidInput)
	}
	if r.AddDelay < 0 {
		return Request{}, fmt.Errorf("add_delay %d must be non-negative: %w", r.AddDelay, ErrInvalidInput)
	}
	return Request{
		Industry:   industry,
		Size:       size,
		Complexity: complexity,
		PrevIssues: r.PrevIssues,
		AddDelay:   r.AddDelay,
	}, nil
}
