// Package mimetypes holds the extension-to-content-type defaults used when
// a Flat OPC part element omits its contentType attribute, and when emitting
// Default entries in [Content_Types].xml.
package mimetypes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults returns the built-in table of well-known OPC content types,
// keyed by lower-case file extension without the dot.
func Defaults() map[string]string {
	return map[string]string{
		"rels": "application/vnd.openxmlformats-package.relationships+xml",
		"xml":  "application/xml",
		"png":  "image/png",
		"jpeg": "image/jpeg",
		"jpg":  "image/jpeg",
		"gif":  "image/gif",
		"bmp":  "image/bmp",
		"tiff": "image/tiff",
		"emf":  "image/x-emf",
		"wmf":  "image/x-wmf",
		"bin":  "application/vnd.openxmlformats-officedocument.oleObject",
	}
}

// Load reads a YAML mapping of extension to content type from path and
// merges it over the built-in defaults, with the file winning on conflicts.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content-type map: %w", err)
	}

	extra := make(map[string]string)
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parsing content-type map %s: %w", path, err)
	}

	merged := Defaults()
	for ext, ct := range extra {
		merged[ext] = ct
	}
	return merged, nil
}
