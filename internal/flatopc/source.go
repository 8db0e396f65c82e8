package flatopc

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrInputNotFound   = errors.New("input not found")
	ErrMalformedInput  = errors.New("malformed flat opc document")
	ErrInvalidEncoding = errors.New("invalid part encoding")
)

// Source is the input to a conversion: either a filesystem path or an
// already-open reader. The zero value is not usable; construct with
// FromFile or FromReader.
type Source struct {
	path string
	r    io.Reader
}

// FromFile returns a Source that reads the Flat OPC document at path.
func FromFile(path string) Source {
	return Source{path: path}
}

// FromReader returns a Source that reads the Flat OPC document from r.
// The caller keeps ownership of r; closing the resolved stream is a no-op.
func FromReader(r io.Reader) Source {
	return Source{r: r}
}

// Open resolves the source to a readable stream. For a file source the
// returned closer closes the file; for a reader source it does nothing.
// A path that does not exist or cannot be read fails with ErrInputNotFound.
func (s Source) Open() (io.ReadCloser, error) {
	if s.r != nil {
		return io.NopCloser(s.r), nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, s.path, err)
	}
	return f, nil
}
