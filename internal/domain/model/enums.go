package model

import (
	"fmt"
	"strings"
)

// Size is the client size bucket of an engagement.
type Size int

// Client sizes. The numeric value is the encoded feature.
const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

// Sizes lists every recognised size in encoding order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// String returns the canonical label.
func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	}
	return fmt.Sprintf("Size(%d)", int(s))
}

// Index returns the encoded feature value for s.
func (s Size) Index() (int, error) {
	switch s {
	case SizeSmall:
		return 0, nil
	case SizeMedium:
		return 1, nil
	case SizeLarge:
		return 2, nil
	}
	return 0, fmt.Errorf("size %d: %w", int(s), ErrUnknownCategory)
}

// MarshalText renders the label so JSON and YAML carry "Small" rather than 0.
func (s Size) MarshalText() ([]byte, error) {
	if _, err := s.Index(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses a label produced by MarshalText.
func (s *Size) UnmarshalText(b []byte) error {
	v, err := ParseSize(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSize maps an untyped label to a Size. Matching is exact after trimming.
func ParseSize(label string) (Size, error) {
	switch strings.TrimSpace(label) {
	case "Small":
		return SizeSmall, nil
	case "Medium":
		return SizeMedium, nil
	case "Large":
		return SizeLarge, nil
	}
	return 0, fmt.Errorf("size %q: %w", label, ErrUnknownCategory)
}

// Complexity is the assessed complexity of an engagement.
type Complexity int

// Complexity levels. The numeric value is the encoded feature.
const (
	ComplexityLow Complexity = iota
	ComplexityMedium
	ComplexityHigh
)

// Complexities lists every recognised complexity in encoding order.
var Complexities = []Complexity{ComplexityLow, ComplexityMedium, ComplexityHigh}

// String returns the canonical label.
func (c Complexity) String() string {
	switch c {
	case ComplexityLow:
		return "Low"
	case ComplexityMedium:
		return "Medium"
	case ComplexityHigh:
		return "High"
	}
	return fmt.Sprintf("Complexity(%d)", int(c))
}

// Index returns the encoded feature value for c.
func (c Complexity) Index() (int, error) {
	switch c {
	case ComplexityLow:
		return 0, nil
	case ComplexityMedium:
		return 1, nil
	case ComplexityHigh:
		return 2, nil
	}
	return 0, fmt.Errorf("complexity %d: %w", int(c), ErrUnknownCategory)
}

// MarshalText renders the label.
func (c Complexity) MarshalText() ([]byte, error) {
	if _, err := c.Index(); err != nil {
		return nil, err
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses a label produced by MarshalText.
func (c *Complexity) UnmarshalText(b []byte) error {
	v, err := ParseComplexity(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseComplexity maps an untyped label to a Complexity.
func ParseComplexity(label string) (Complexity, error) {
	switch strings.TrimSpace(label) {
	case "Low":
		return ComplexityLow, nil
	case "Medium":
		return ComplexityMedium, nil
	case "High":
		return ComplexityHigh, nil
	}
	return 0, fmt.Errorf("complexity %q: %w", label, ErrUnknownCategory)
}

// Level is a staff seniority label. It stays a string so rosters carrying
// levels outside the known set still load; those score as Junior.
type Level string

// Known seniority levels.
const (
	LevelJunior    Level = "Junior"
	LevelAssociate Level = "Associate"
	LevelSenior    Level = "Senior"
	LevelManager   Level = "Manager"
)

// Weight returns the seniority weight. Unrecognised levels weigh 1.
func (l Level) Weight() int {
	switch l {
	case LevelJunior:
		return 1
	case LevelAssociate:
		return 2
	case LevelSenior:
		return 3
	case LevelManager:
		return 4
	}
	return 1
}

// Known reports whether l is one of the four recognised levels.
func (l Level) Known() bool {
	switch l {
	case LevelJunior, LevelAssociate, LevelSenior, LevelManager:
		return true
	}
	return false
}
