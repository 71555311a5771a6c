package models

import (
	"fmt"
	"strings"
)

// ExhibitType distinguishes wall-mounted images from free-standing models
type ExhibitType string

const (
	// ExhibitTypeImage is a 2D image, placed on walls
	ExhibitTypeImage ExhibitType = "IMAGE"
	// ExhibitTypeModel is a 3D model, placed in rooms
	ExhibitTypeModel ExhibitType = "MODEL"
)

// ParseExhibitType parses the wire name of an exhibit type, case-insensitively.
func ParseExhibitType(s string) (ExhibitType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ExhibitTypeImage):
		return ExhibitTypeImage, nil
	case string(ExhibitTypeModel):
		return ExhibitTypeModel, nil
	default:
		return "", fmt.Errorf("unknown exhibit type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (t ExhibitType) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ExhibitType) UnmarshalText(b []byte) error {
	parsed, err := ParseExhibitType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Exhibit is a displayable cultural heritage object. Path is relative to the
// directory that contains the exhibition folder and always uses '/'; it is the
// key used to carry curated metadata across imports.
type Exhibit struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Path        string      `json:"path"`
	Type        ExhibitType `json:"type"`
	Position    Vector3f    `json:"position"`
	Size        Vector3f    `json:"size"`
}

// NewExhibit creates an exhibit, normalising the path separators.
func NewExhibit(name, description, path string, typ ExhibitType, position, size Vector3f) Exhibit {
	return Exhibit{
		Name:        name,
		Description: description,
		Path:        NormalizePath(path),
		Type:        typ,
		Position:    position,
		Size:        size,
	}
}

// Equal compares exhibits by value
func (e Exhibit) Equal(o Exhibit) bool {
	return e.Name == o.Name &&
		e.Description == o.Description &&
		e.Path == o.Path &&
		e.Type == o.Type &&
		e.Position.Equal(o.Position) &&
		e.Size.Equal(o.Size)
}

func (e Exhibit) String() string {
	return fmt.Sprintf("Exhibit{name=%q, path=%q, type=%s, position=%s, size=%s}",
		e.Name, e.Path, e.Type, e.Position, e.Size)
}

// NormalizePath replaces backslashes with forward slashes
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

func containsExhibit(list []Exhibit, e Exhibit) bool {
	for _, existing := range list {
		if existing.Equal(e) {
			return true
		}
	}
	return false
}

func exhibitsEqual(a, b []Exhibit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
