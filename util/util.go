// Package util is a set of utility variables or methods
package util

import (
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"
)

// SupportedExt lists the image extensions served from the asset library.
var SupportedExt = mapset.NewSet(
	".jpeg", ".jpg", ".JPEG", ".JPG",
	".png", ".PNG",
	".svg", ".SVG",
	".webp", ".WEBP",
	".gif", ".GIF",
)

// IsImage reports whether name has a supported image extension.
func IsImage(name string) bool {
	return SupportedExt.Contains(filepath.Ext(name))
}
