package flatopc

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Namespace of Flat OPC package documents, per the ECMA-376 transform
// convention used by Word's "XML Document" format.
const PackageNamespace = "http://schemas.microsoft.com/office/2006/xmlPackage"

// Declaration prepended to XML part payloads, matching the one Word writes
// at the top of each package part.
const xmlDeclaration = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\r\n"

// Parser streams package parts out of a Flat OPC document in document
// order. It is single-pass: once Next returns io.EOF or an error the
// parser is exhausted, and restarting requires a fresh reader.
type Parser struct {
	dec     *xml.Decoder
	seen    map[string]bool
	started bool
	done    bool
}

// NewParser returns a Parser reading from r. The decoder honors the
// document's declared encoding, so non-UTF-8 input is accepted.
func NewParser(r io.Reader) *Parser {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return &Parser{
		dec:  dec,
		seen: make(map[string]bool),
	}
}

// partElement mirrors a pkg:part element. XML-typed parts embed their
// payload as nested markup in pkg:xmlData; binary parts carry base64 text
// in pkg:binaryData.
type partElement struct {
	Name        string   `xml:"name,attr"`
	ContentType string   `xml:"contentType,attr"`
	XMLData     *xmlData `xml:"xmlData"`
	BinaryData  string   `xml:"binaryData"`
}

type xmlData struct {
	Inner []byte `xml:",innerxml"`
}

// Next returns the next part in document order, or io.EOF after the last
// one. Structural problems (bad XML, wrong root namespace, missing or
// duplicate part names) fail with ErrMalformedInput; a base64 body that
// does not decode fails with ErrInvalidEncoding.
func (p *Parser) Next() (*Part, error) {
	if p.done {
		return nil, io.EOF
	}
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			if !p.started {
				return nil, fmt.Errorf("%w: document has no root element", ErrMalformedInput)
			}
			p.done = true
			return nil, io.EOF
		}
		if err != nil {
			p.done = true
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !p.started {
			p.started = true
			if se.Name.Space != PackageNamespace || se.Name.Local != "package" {
				p.done = true
				return nil, fmt.Errorf("%w: root element is {%s}%s, want {%s}package",
					ErrMalformedInput, se.Name.Space, se.Name.Local, PackageNamespace)
			}
			continue
		}

		if se.Name.Space == PackageNamespace && se.Name.Local == "part" {
			part, err := p.decodePart(se)
			if err != nil {
				p.done = true
				return nil, err
			}
			return part, nil
		}

		// Unknown child of the package root; skip its whole subtree.
		if err := p.dec.Skip(); err != nil {
			p.done = true
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
	}
}

func (p *Parser) decodePart(se xml.StartElement) (*Part, error) {
	var pe partElement
	if err := p.dec.DecodeElement(&pe, &se); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	if pe.Name == "" {
		return nil, fmt.Errorf("%w: part element missing name attribute", ErrMalformedInput)
	}
	if !strings.HasPrefix(pe.Name, "/") {
		return nil, fmt.Errorf("%w: part name %q does not start with /", ErrMalformedInput, pe.Name)
	}
	if p.seen[pe.Name] {
		return nil, fmt.Errorf("%w: duplicate part name %q", ErrMalformedInput, pe.Name)
	}
	p.seen[pe.Name] = true

	part := &Part{Name: pe.Name, ContentType: pe.ContentType}

	if pe.XMLData != nil {
		inner := strings.TrimSpace(string(pe.XMLData.Inner))
		part.Data = []byte(xmlDeclaration + inner)
		return part, nil
	}

	// Word wraps base64 bodies at a fixed column; strip the line breaks
	// (and any other whitespace) before decoding.
	clean := strings.Map(dropSpace, pe.BinaryData)
	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: part %s: %v", ErrInvalidEncoding, pe.Name, err)
	}
	part.Data = data
	return part, nil
}

func dropSpace(r rune) rune {
	switch r {
	case ' ', '\t', '\r', '\n':
		return -1
	}
	return r
}
