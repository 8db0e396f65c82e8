// Package flatopc reads Flat OPC documents: single-XML-file serializations
// of an OPC package in the Microsoft xmlPackage namespace, as produced by
// Word's "XML Document" save format.
package flatopc

// Part is one package part extracted from a Flat OPC document.
// Data holds the decoded payload and is not modified after parsing.
type Part struct {
	// Name is the package-relative part URI, always starting with "/",
	// e.g. "/word/document.xml".
	Name string

	// ContentType is the MIME type declared on the part element.
	// Empty when the document omits the contentType attribute; the
	// package writer resolves it from extension defaults.
	ContentType string

	Data []byte
}
