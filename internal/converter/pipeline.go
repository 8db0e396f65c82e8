// Package converter runs the Flat OPC to OOXML package pipeline:
// resolve the input, stream parts out of the XML, and assemble the zip.
package converter

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/yuanying/flat2opc/internal/flatopc"
	"github.com/yuanying/flat2opc/internal/mimetypes"
	"github.com/yuanying/flat2opc/internal/opc"
)

// Options holds conversion settings.
type Options struct {
	// Defaults maps file extensions to content types, used for parts
	// that omit contentType and for Default manifest entries. Nil means
	// the built-in table.
	Defaults map[string]string
}

// Pipeline converts Flat OPC documents into OOXML packages. The zero
// value uses built-in defaults; one Pipeline may serve concurrent calls
// as long as they target distinct outputs.
type Pipeline struct {
	Options Options
}

// NewPipeline creates a Pipeline with the given options.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{Options: opts}
}

// Convert writes the converted package to outputPath. On any failure the
// partially-written file is removed, so outputPath either holds a complete
// package or does not exist.
func (p *Pipeline) Convert(src flatopc.Source, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", opc.ErrPackageWrite, outputPath, err)
	}

	if err := p.run(src, f); err != nil {
		f.Close()
		os.Remove(outputPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("%w: %s: %v", opc.ErrPackageWrite, outputPath, err)
	}
	return nil
}

// ConvertBytes returns the converted package as a byte slice. No file is
// touched; on failure the partial buffer is discarded.
func (p *Pipeline) ConvertBytes(src flatopc.Source) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.run(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// run is the single conversion routine behind both entry points; only the
// sink differs.
func (p *Pipeline) run(src flatopc.Source, w io.Writer) error {
	in, err := src.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	parser := flatopc.NewParser(in)
	pw := opc.NewPackageWriter(w, p.defaults())

	for {
		part, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := pw.WritePart(part.Name, part.ContentType, part.Data); err != nil {
			return err
		}
	}
	return pw.Close()
}

func (p *Pipeline) defaults() map[string]string {
	if p.Options.Defaults != nil {
		return p.Options.Defaults
	}
	return mimetypes.Defaults()
}

// Convert converts src to a package file at outputPath using default
// options.
func Convert(src flatopc.Source, outputPath string) error {
	return NewPipeline(Options{}).Convert(src, outputPath)
}

// ConvertBytes converts src to an in-memory package using default options.
func ConvertBytes(src flatopc.Source) ([]byte, error) {
	return NewPipeline(Options{}).ConvertBytes(src)
}

// OutputExt guesses a file extension for a finished package from its main
// document part: .docx, .xlsx or .pptx for Office packages, .zip otherwise.
func OutputExt(pkg []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		return ".zip"
	}
	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			return ".docx"
		case "xl/workbook.xml":
			return ".xlsx"
		case "ppt/presentation.xml":
			return ".pptx"
		}
	}
	return ".zip"
}
