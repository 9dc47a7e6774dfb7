package entities

import "fmt"

// PathError reports a migration root that cannot be used.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid root path %q: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// ParseError reports a project file that is not well-formed XML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a package declaration missing a required attribute.
type SchemaError struct {
	Path      string
	Element   string
	Attribute string
	Line      int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf(
		"%s:%d: <%s> is missing the required %q attribute",
		e.Path, e.Line, e.Element, e.Attribute,
	)
}
