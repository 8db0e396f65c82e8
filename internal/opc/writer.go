package opc

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPackageWrite reports an I/O failure while writing the output archive.
var ErrPackageWrite = errors.New("package write failed")

// Name of the content-types manifest entry at the package root.
const contentTypesEntry = "[Content_Types].xml"

const xmlDeclaration = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\r\n"

// PackageWriter writes package parts into a zip archive over any sink.
// Close writes the content-types manifest last and finalizes the archive;
// it must be called exactly once on the success path. The caller owns the
// underlying writer and is responsible for discarding partial output when
// any method fails.
type PackageWriter struct {
	zw     *zip.Writer
	types  *ContentTypes
	parts  int
	closed bool
}

// NewPackageWriter returns a PackageWriter targeting w. defaults is the
// candidate Default content-type table, see NewContentTypes.
func NewPackageWriter(w io.Writer, defaults map[string]string) *PackageWriter {
	return &PackageWriter{
		zw:    zip.NewWriter(w),
		types: NewContentTypes(defaults),
	}
}

// WritePart writes one part at its package-relative path (leading slash
// stripped) and records its content type in the manifest.
func (pw *PackageWriter) WritePart(name, contentType string, data []byte) error {
	entry := strings.TrimPrefix(name, "/")
	f, err := pw.zw.Create(entry)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPackageWrite, name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPackageWrite, name, err)
	}
	pw.types.Add(name, contentType)
	pw.parts++
	return nil
}

// Parts returns the number of parts written so far.
func (pw *PackageWriter) Parts() int {
	return pw.parts
}

// Close writes [Content_Types].xml and finalizes the archive. Further
// calls are no-ops.
func (pw *PackageWriter) Close() error {
	if pw.closed {
		return nil
	}
	pw.closed = true

	manifest, err := pw.types.XML()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPackageWrite, err)
	}
	f, err := pw.zw.Create(contentTypesEntry)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPackageWrite, contentTypesEntry, err)
	}
	if _, err := f.Write(manifest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPackageWrite, contentTypesEntry, err)
	}
	if err := pw.zw.Close(); err != nil {
		return fmt.Errorf("%w: closing archive: %v", ErrPackageWrite, err)
	}
	return nil
}
