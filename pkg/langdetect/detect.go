// Package langdetect guesses the language of a code fence that has no info
// string. It combines go-enry's shebang and classifier strategies with a few
// unambiguous content markers.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned by Detect when no language can be told.
const Unknown = "text"

// classifierCandidates limits the enry classifier to languages that commonly
// appear in documentation.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// marker is a content check that identifies a language on its own.
type marker struct {
	lang  string
	match func(src []byte, trimmed []byte, text string) bool
}

// markers run in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only marker table.
var markers = []marker{
	{"go", func(_, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", isPython},
	{"html", func(_, trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
	}},
	{"json", func(_, trimmed []byte, _ string) bool {
		return len(trimmed) > 1 && (trimmed[0] == '{' || trimmed[0] == '[') &&
			bytes.ContainsRune(trimmed, '"')
	}},
	{"dockerfile", func(src, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(bytes.Contains(src, []byte("WORKDIR ")) && bytes.Contains(src, []byte("COPY ")))
	}},
	{"sql", func(_ []byte, _ []byte, text string) bool {
		upper := strings.ToUpper(strings.TrimSpace(text))
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(_ []byte, _ []byte, text string) bool {
		return strings.Contains(text, "fn main()") || strings.Contains(text, "println!")
	}},
	{"javascript", func(_ []byte, _ []byte, text string) bool {
		return strings.Contains(text, "=>") || strings.Contains(text, "console.log") ||
			strings.HasPrefix(text, "const ")
	}},
	{"yaml", isYAML},
}

// Detect returns a lowercase fence tag for content, or Unknown.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}

	trimmed := bytes.TrimSpace(content)
	text := string(content)
	for _, m := range markers {
		if m.match(content, trimmed, text) {
			return m.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fenceTag(lang)
	}

	return Unknown
}

// FenceLanguage is Detect for the HTML renderer: it returns "" instead of
// Unknown so unlabeled fences without a confident match stay unlabeled.
func FenceLanguage(content []byte) string {
	lang := Detect(content)
	if lang == Unknown {
		return ""
	}
	return lang
}

func isPython(_ []byte, _ []byte, text string) bool {
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return true
	}
	if strings.Contains(text, "__name__") {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(text), "import ") && !strings.Contains(text, "import (")
}

// isYAML looks for at least two "key: value" or "- item" lines.
func isYAML(src []byte, _ []byte, _ string) bool {
	count := 0
	for line := range bytes.SplitSeq(src, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0 || line[0] == '#':
			continue
		case bytes.HasPrefix(line, []byte("- ")):
			count++
		case bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({\""):
			count++
		}
	}
	return count >= 2
}

// fenceTag converts a go-enry language name to the tag used after "```".
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
