package msbuild

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
)

const (
	packageReferenceElement = "PackageReference"
	versionElement          = "Version"
	includeAttribute        = "Include"
	versionAttribute        = "Version"
)

// span is a half-open byte range of the project body.
type span struct {
	start int
	end   int
}

// declaration is one PackageReference element as written in the project,
// whichever of the two version syntaxes it uses.
type declaration struct {
	name         xml.Name
	include      string
	hasAttr      bool
	attrVersion  string
	childVersion string
	line         int

	// tag covers the start tag, children covers every <Version> child element.
	tag      span
	children []span
}

// version returns the declared version, preferring the attribute form. The
// second result is false when neither form is present; an empty value that is
// present still counts.
func (d declaration) version() (string, bool) {
	if d.hasAttr {
		return strings.TrimSpace(d.attrVersion), true
	}
	if len(d.children) > 0 {
		return strings.TrimSpace(d.childVersion), true
	}
	return "", false
}

// document is the result of one pass over a project body.
type document struct {
	decls []declaration
	// transcoded is set when the declared encoding was not UTF-8, in which
	// case offsets are only byte-accurate for ASCII content.
	transcoded bool
}

// parseDeclarations streams the document and returns every PackageReference
// element in document order, with the byte ranges the rewrite needs. Nested
// references are not expected in MSBuild files and are ignored.
func parseDeclarations(path string, body []byte) (*document, error) {
	doc := &document{}

	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		doc.transcoded = true
		return charset.NewReaderLabel(label, input)
	}

	var (
		current      = -1
		refDepth     int
		depth        int
		inVersion    bool
		versionStart int
		sawRoot      bool
		text         strings.Builder
	)

	for {
		start := int(decoder.InputOffset())
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &entities.ParseError{Path: path, Err: err}
		}
		end := int(decoder.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			sawRoot = true
			switch {
			case current < 0 && t.Name.Local == packageReferenceElement:
				line, _ := decoder.InputPos()
				doc.decls = append(doc.decls, newDeclaration(t, line, span{start: start, end: end}))
				current = len(doc.decls) - 1
				refDepth = depth
			case current >= 0 && depth == refDepth+1 &&
				t.Name.Local == versionElement && t.Name.Space == doc.decls[current].name.Space:
				inVersion = true
				versionStart = start
				text.Reset()
			}
		case xml.CharData:
			if inVersion {
				text.Write(t)
			}
		case xml.EndElement:
			if inVersion && depth == refDepth+1 {
				decl := &doc.decls[current]
				decl.childVersion = text.String()
				decl.children = append(decl.children, span{start: versionStart, end: end})
				inVersion = false
			}
			if current >= 0 && depth == refDepth {
				current = -1
			}
			depth--
		}
	}

	if !sawRoot {
		return nil, &entities.ParseError{Path: path, Err: errors.New("document has no root element")}
	}

	return doc, nil
}

func newDeclaration(start xml.StartElement, line int, tag span) declaration {
	decl := declaration{name: start.Name, line: line, tag: tag}
	for _, attr := range start.Attr {
		if attr.Name.Space != "" {
			continue
		}
		switch attr.Name.Local {
		case includeAttribute:
			decl.include = strings.TrimSpace(attr.Value)
		case versionAttribute:
			decl.hasAttr = true
			decl.attrVersion = attr.Value
		}
	}
	return decl
}

// selectDeclarations keeps the unnamespaced references; when there are none,
// references of the same local name in any namespace are used instead, which
// covers projects declaring a default xmlns. Reading and rewriting both go
// through it so they always agree on the set of references.
func selectDeclarations(decls []declaration) []declaration {
	var plain []declaration
	for _, decl := range decls {
		if decl.name.Space == "" {
			plain = append(plain, decl)
		}
	}
	if len(plain) > 0 {
		return plain
	}
	return decls
}
