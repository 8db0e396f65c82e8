// Package opc writes OOXML packages: zip archives of parts plus the
// [Content_Types].xml manifest required at the package root.
package opc

import (
	"encoding/xml"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Namespace of the [Content_Types].xml document.
const ContentTypesNamespace = "http://schemas.openxmlformats.org/package/2006/content-types"

// OctetStream is the fallback content type for parts that declare no type
// and whose extension has no default.
const OctetStream = "application/octet-stream"

// ContentTypes accumulates the Default and Override entries for a package.
// A part whose type matches the known default for its extension is covered
// by a single Default entry; every other part gets an Override. Every part
// added is therefore represented in the manifest.
type ContentTypes struct {
	known     map[string]string // candidate defaults by extension
	defaults  map[string]string // emitted Default entries
	overrides map[string]string // emitted Override entries, by part name
	partOrder []string
}

// NewContentTypes returns a registry using known as the candidate Default
// table (extension, without dot, to content type). A nil map disables
// Default entries entirely; every part becomes an Override.
func NewContentTypes(known map[string]string) *ContentTypes {
	return &ContentTypes{
		known:     known,
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}
}

// Add registers a part. An empty contentType resolves through the known
// extension defaults and then falls back to application/octet-stream, so
// the package stays structurally valid. Returns the resolved type.
func (ct *ContentTypes) Add(partName, contentType string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(partName)), ".")

	if contentType == "" {
		if d, ok := ct.known[ext]; ok && ext != "" {
			contentType = d
		} else {
			contentType = OctetStream
		}
	}

	if ext != "" {
		if cur, ok := ct.defaults[ext]; ok && cur == contentType {
			return contentType
		}
		if _, ok := ct.defaults[ext]; !ok {
			if known, ok := ct.known[ext]; ok && known == contentType {
				ct.defaults[ext] = contentType
				return contentType
			}
		}
	}

	if _, ok := ct.overrides[partName]; !ok {
		ct.partOrder = append(ct.partOrder, partName)
	}
	ct.overrides[partName] = contentType
	return contentType
}

type xmlTypes struct {
	XMLName   xml.Name      `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []xmlDefault  `xml:"Default"`
	Overrides []xmlOverride `xml:"Override"`
}

type xmlDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// XML renders the [Content_Types].xml document: Default entries sorted by
// extension, then Override entries in part order.
func (ct *ContentTypes) XML() ([]byte, error) {
	doc := xmlTypes{}

	exts := make([]string, 0, len(ct.defaults))
	for ext := range ct.defaults {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		doc.Defaults = append(doc.Defaults, xmlDefault{Extension: ext, ContentType: ct.defaults[ext]})
	}

	for _, name := range ct.partOrder {
		doc.Overrides = append(doc.Overrides, xmlOverride{PartName: name, ContentType: ct.overrides[name]})
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling content types: %w", err)
	}
	return append([]byte(xmlDeclaration), body...), nil
}
