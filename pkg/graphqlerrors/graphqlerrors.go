// Package graphqlerrors is the boundary-facing rendering layer of spec.md
// §6: turning a Report's structured ExternalErrors into the two shapes a
// caller at the edge actually wants — a caret-style terminal rendering
// (format_errors) and the standard GraphQL response error shape
// (to_graphql_errors). Grounded on the teacher's own
// v2/pkg/operationreport, which both graphql-go-tools' CLI tooling and its
// HTTP handlers render from the same way: locate the error's span in the
// original source, then format.
package graphqlerrors

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// Location is a 1-indexed line/column position, the shape the GraphQL
// response spec's `locations` array uses.
type Location struct {
	Line   int
	Column int
}

// locationAt converts a byte offset into source into a 1-indexed
// line/column pair, counting newlines the way every GraphQL reference
// implementation's SourceLocation does.
func locationAt(source string, offset int) Location {
	if offset > len(source) {
		offset = len(source)
	}
	line := 1
	col := 1
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Location{Line: line, Column: col}
}

// FormatErrors renders errs as caret-style multiline text for a terminal:
// the message, followed by the offending source line with a caret under
// the primary annotation's starting column, then any secondary
// annotations' messages.
func FormatErrors(source string, errs []operationreport.ExternalError) string {
	var b strings.Builder
	for i, e := range errs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeCaretError(&b, source, e.Message, e.PrimaryAnnotation)
		for _, a := range e.SecondaryAnnotations {
			b.WriteByte('\n')
			loc := locationAt(source, a.Span.Start)
			fmt.Fprintf(&b, "  also: %s (line %d, column %d)", a.Message, loc.Line, loc.Column)
		}
	}
	return b.String()
}

func writeCaretError(b *strings.Builder, source, message string, primary *operationreport.Annotation) {
	if primary == nil {
		b.WriteString(message)
		return
	}
	loc := locationAt(source, primary.Span.Start)
	fmt.Fprintf(b, "%s (line %d, column %d)\n", message, loc.Line, loc.Column)
	lineText := sourceLine(source, loc.Line)
	b.WriteString(lineText)
	b.WriteByte('\n')
	for i := 1; i < loc.Column; i++ {
		b.WriteByte(' ')
	}
	b.WriteByte('^')
}

// sourceLine returns the 1-indexed line's text, without its terminator.
func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[line-1], "\r")
}

// ToGraphQLErrors renders errs as the standard GraphQL response error
// array: `[{"message": "...", "locations": [{"line": .., "column": ..}]}]`.
// tidwall/sjson builds the JSON incrementally rather than hand-assembling
// strings, matching the DOMAIN STACK's "error payload shaping" wiring.
func ToGraphQLErrors(source string, errs []operationreport.ExternalError) ([]byte, error) {
	json := "[]"
	var err error
	for i, e := range errs {
		prefix := fmt.Sprintf("%d", i)
		json, err = sjson.Set(json, prefix+".message", e.Message)
		if err != nil {
			return nil, err
		}
		annotations := primaryAndSecondary(e)
		for j, a := range annotations {
			loc := locationAt(source, a.Span.Start)
			locPrefix := fmt.Sprintf("%s.locations.%d", prefix, j)
			json, err = sjson.Set(json, locPrefix+".line", loc.Line)
			if err != nil {
				return nil, err
			}
			json, err = sjson.Set(json, locPrefix+".column", loc.Column)
			if err != nil {
				return nil, err
			}
		}
	}
	return []byte(json), nil
}

func primaryAndSecondary(e operationreport.ExternalError) []operationreport.Annotation {
	var out []operationreport.Annotation
	if e.PrimaryAnnotation != nil {
		out = append(out, *e.PrimaryAnnotation)
	}
	out = append(out, e.SecondaryAnnotations...)
	return out
}
