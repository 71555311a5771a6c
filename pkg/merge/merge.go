// Package merge fills gaps in freshly imported exhibits from a reference
// exhibition, such as a previously stored version of the same exhibition.
package merge

import (
	"strings"

	"github.com/ajitpratap0/vrem/pkg/models"
)

// FindExhibitForPath returns the first exhibit in ref with the given path.
// A nil reference finds nothing.
func FindExhibitForPath(ref *models.Exhibition, path string) (*models.Exhibit, bool) {
	if ref == nil {
		return nil, false
	}
	e, ok := ref.FindExhibit(models.NormalizePath(path))
	if !ok {
		return nil, false
	}
	return &e, true
}

// Name copies src's name into dst when dst's is blank and src's is not
func Name(src models.Exhibit, dst *models.Exhibit) {
	if !blank(src.Name) && blank(dst.Name) {
		dst.Name = src.Name
	}
}

// Description copies src's description into dst when dst's is blank and
// src's is not
func Description(src models.Exhibit, dst *models.Exhibit) {
	if !blank(src.Description) && blank(dst.Description) {
		dst.Description = src.Description
	}
}

// Exhibit applies Name and Description
func Exhibit(src models.Exhibit, dst *models.Exhibit) {
	Name(src, dst)
	Description(src, dst)
}

// FromReference merges the exhibit in ref with dst's path into dst. It
// reports whether a match was found.
func FromReference(ref *models.Exhibition, dst *models.Exhibit) bool {
	src, ok := FindExhibitForPath(ref, dst.Path)
	if !ok {
		return false
	}
	Exhibit(*src, dst)
	return true
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
