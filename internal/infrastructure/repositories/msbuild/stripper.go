package msbuild

import (
	"bytes"
	"cmp"
	"slices"
)

// stripVersions removes the Version attribute and every <Version> child of the
// given declarations from body. Only the recorded ranges are cut, so the rest
// of the file stays byte-identical. A child element alone on its line takes
// the whole line with it.
func stripVersions(body []byte, decls []declaration) []byte {
	var cuts []span
	for _, decl := range decls {
		if attr, ok := attributeSpan(body[decl.tag.start:decl.tag.end], versionAttribute); ok {
			cuts = append(cuts, span{start: decl.tag.start + attr.start, end: decl.tag.start + attr.end})
		}
		for _, child := range decl.children {
			cuts = append(cuts, wholeLine(body, child))
		}
	}
	if len(cuts) == 0 {
		return body
	}

	slices.SortFunc(cuts, func(a, b span) int { return cmp.Compare(a.start, b.start) })

	out := make([]byte, 0, len(body))
	last := 0
	for _, cut := range cuts {
		if cut.end <= last {
			continue
		}
		cut.start = max(cut.start, last)
		out = append(out, body[last:cut.start]...)
		last = cut.end
	}
	return append(out, body[last:]...)
}

// attributeSpan finds the named unprefixed attribute in a well-formed start
// tag. The range includes the whitespace before the attribute name.
func attributeSpan(tag []byte, name string) (span, bool) {
	i := 1
	for i < len(tag) && !isSpace(tag[i]) && tag[i] != '/' && tag[i] != '>' {
		i++
	}

	for i < len(tag) {
		lead := i
		i = skipSpace(tag, i)
		if i >= len(tag) || tag[i] == '/' || tag[i] == '>' {
			return span{}, false
		}

		nameStart := i
		for i < len(tag) && !isSpace(tag[i]) && tag[i] != '=' {
			i++
		}
		attr := string(tag[nameStart:i])

		i = skipSpace(tag, i)
		if i >= len(tag) || tag[i] != '=' {
			return span{}, false
		}
		i = skipSpace(tag, i+1)
		if i >= len(tag) {
			return span{}, false
		}

		// values cannot contain their own quote character, '>' is allowed
		closing := bytes.IndexByte(tag[i+1:], tag[i])
		if closing < 0 {
			return span{}, false
		}
		i += closing + 2

		if attr == name {
			return span{start: lead, end: i}, true
		}
	}
	return span{}, false
}

// wholeLine widens s to its full line, line break included, when nothing but
// blanks shares the line with it.
func wholeLine(body []byte, s span) span {
	start := s.start
	for start > 0 && isBlank(body[start-1]) {
		start--
	}
	if start > 0 && body[start-1] != '\n' {
		return s
	}

	end := s.end
	for end < len(body) && isBlank(body[end]) {
		end++
	}
	switch {
	case end == len(body):
	case body[end] == '\n':
		end++
	case body[end] == '\r' && end+1 < len(body) && body[end+1] == '\n':
		end += 2
	default:
		return s
	}
	return span{start: start, end: end}
}

func skipSpace(b []byte, i int) int {
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	return i
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
