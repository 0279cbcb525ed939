package ir

import (
	"strings"
	"testing"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

func TestWrapParseErrorCarriesPreview(t *testing.T) {
	content := "query Bad {\n  hero {\n    id\n  }\n"
	src := &gqlerror.Error{
		Message:   "unexpected end of file",
		Locations: []gqlerror.Location{{Line: 4, Column: 1}},
	}
	err := wrapParseError("bad.graphql", content, src)

	if err.Filepath != "bad.graphql" {
		t.Errorf("Filepath = %q, want bad.graphql", err.Filepath)
	}
	if !strings.Contains(err.Error(), "unexpected end of file") {
		t.Errorf("Error() = %q, missing message", err.Error())
	}
	if !strings.Contains(err.Preview, "> 4:") {
		t.Errorf("Preview = %q, missing marked offending line", err.Preview)
	}
}

func TestWrapParseErrorNoLocation(t *testing.T) {
	err := wrapParseError("bad.graphql", "content", &gqlerror.Error{Message: "boom"})
	if err.Preview != "" {
		t.Errorf("Preview = %q, want empty when no location reported", err.Preview)
	}
}

func TestFramePreviewOutOfRange(t *testing.T) {
	if got := framePreview("a\nb\n", 0); got != "" {
		t.Errorf("framePreview(line=0) = %q, want empty", got)
	}
	if got := framePreview("a\nb\n", 99); got != "" {
		t.Errorf("framePreview(out of range) = %q, want empty", got)
	}
}
