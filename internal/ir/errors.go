package ir

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"

	language "github.com/hzsweers/apollo-android/internal/language"
)

// ParseException is the base error raised by any stage of the build pipeline
// that rejects a single, specific position in a document. Unlike the
// teacher's ValidationError, Build never accumulates these: the first one
// raised aborts the whole run and is returned as-is (or wrapped, see below).
type ParseException struct {
	Message  string
	Line     int
	Position int
}

func (e *ParseException) Error() string {
	return fmt.Sprintf("%s (line %d, position %d)", e.Message, e.Line, e.Position)
}

func newParseException(message string, pos *language.Position) *ParseException {
	if pos == nil {
		return &ParseException{Message: message}
	}
	return &ParseException{Message: message, Line: pos.Line, Position: pos.Column}
}

// GraphQLDocumentParseException wraps a ParseException with the file it came
// from and a short framed preview of the offending source line, the way a
// human reading a compiler error expects to see it.
type GraphQLDocumentParseException struct {
	Cause    *ParseException
	Filepath string
	Preview  string
}

func (e *GraphQLDocumentParseException) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Filepath, e.Cause.Error())
	if e.Preview != "" {
		msg += "\n" + e.Preview
	}
	return msg
}

func (e *GraphQLDocumentParseException) Unwrap() error { return e.Cause }

// newDocumentParseException builds a GraphQLDocumentParseException for a
// single offending position, framing it with its line and the one line
// immediately before and after for context.
func newDocumentParseException(message string, pos *language.Position) *GraphQLDocumentParseException {
	cause := newParseException(message, pos)
	exc := &GraphQLDocumentParseException{Cause: cause}
	if pos == nil || pos.Src == nil {
		return exc
	}
	exc.Filepath = pos.Src.Name
	exc.Preview = framePreview(pos.Src.Input, pos.Line)
	return exc
}

// framePreview renders the offending line plus one neighbor on either side,
// each prefixed with its 1-based line number, with the offending line marked.
func framePreview(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	start := line - 2
	if start < 0 {
		start = 0
	}
	end := line + 1
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		marker := "  "
		if i+1 == line {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%d: %s\n", marker, i+1, lines[i])
	}
	return strings.TrimRight(b.String(), "\n")
}

// GraphQLParseException reports a document-wide problem that is not anchored
// to a single token: a duplicate operation or fragment name, an unresolved
// fragment spread, a response-key conflict spanning a merge. These carry no
// file/line of their own because they only make sense once two or more
// documents have been correlated.
type GraphQLParseException struct {
	Message string
}

func (e *GraphQLParseException) Error() string { return e.Message }

func newGraphQLParseException(format string, args ...any) *GraphQLParseException {
	return &GraphQLParseException{Message: fmt.Sprintf(format, args...)}
}

// wrapParseError turns a raw grammar-level error from the parser into a
// GraphQLDocumentParseException carrying the offending file and a framed
// preview, recovering line/column from the underlying gqlerror when
// possible. When the parser reports no location at all, the exception still
// carries the file and the cause's message, just without a preview.
func wrapParseError(filePath, content string, err error) *GraphQLDocumentParseException {
	message := err.Error()
	line, col := 0, 0
	if gqlErr, ok := err.(*gqlerror.Error); ok {
		message = gqlErr.Message
		if len(gqlErr.Locations) > 0 {
			line = gqlErr.Locations[0].Line
			col = gqlErr.Locations[0].Column
		}
	}
	exc := &GraphQLDocumentParseException{
		Cause:    &ParseException{Message: message, Line: line, Position: col},
		Filepath: filePath,
	}
	if line > 0 {
		exc.Preview = framePreview(content, line)
	}
	return exc
}
