// Package media recognizes embedded media in Markdown and renders audio and
// video tokens as HTML5 elements.
//
// Destinations are classified by file extension only. Unrecognized or missing
// extensions are treated as images.
package media

import (
	"strings"

	"github.com/yaklabco/figmark/pkg/token"
)

// Type is the media classification of a destination URL.
type Type uint8

const (
	// TypeImage is the default for every unrecognized destination.
	TypeImage Type = iota
	// TypeAudio marks destinations with an audio extension.
	TypeAudio
	// TypeVideo marks destinations with a video extension.
	TypeVideo
)

// MP1 and MP2 are left out (not in active use). Ambiguous containers such as
// MPG and MP4 default to video.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	audioExtensions = map[string]struct{}{
		"aac": {}, "m4a": {}, "mp3": {}, "oga": {}, "ogg": {}, "wav": {},
	}
	videoExtensions = map[string]struct{}{
		"mp4": {}, "m4v": {}, "ogv": {}, "webm": {}, "mpg": {}, "mpeg": {},
	}
)

// String returns "image", "audio" or "video".
func (t Type) String() string {
	switch t {
	case TypeAudio:
		return "audio"
	case TypeVideo:
		return "video"
	default:
		return "image"
	}
}

// Tag returns the HTML element name for the type.
func (t Type) Tag() string {
	switch t {
	case TypeAudio:
		return "audio"
	case TypeVideo:
		return "video"
	default:
		return "img"
	}
}

// Kind returns the token kind emitted for the type.
func (t Type) Kind() token.Kind {
	switch t {
	case TypeAudio:
		return token.KindAudio
	case TypeVideo:
		return token.KindVideo
	default:
		return token.KindImage
	}
}

// Guess classifies a URL by its file extension.
func Guess(url string) Type {
	ext := Extension(url)
	if ext == "" {
		return TypeImage
	}
	if _, ok := audioExtensions[ext]; ok {
		return TypeAudio
	}
	if _, ok := videoExtensions[ext]; ok {
		return TypeVideo
	}
	return TypeImage
}

// Extension returns the lowercased extension of the last path segment of url,
// ignoring any query string or fragment. It returns "" when there is none.
// The fragment is cut first, so a '?' after '#' belongs to the fragment and
// "a#b?c.mp4" has no extension.
func Extension(url string) string {
	if idx := strings.IndexByte(url, '#'); idx >= 0 {
		url = url[:idx]
	}
	if idx := strings.IndexByte(url, '?'); idx >= 0 {
		url = url[:idx]
	}
	dot := strings.LastIndexByte(url, '.')
	if dot < 0 {
		return ""
	}
	ext := url[dot+1:]
	if ext == "" || strings.ContainsRune(ext, '/') {
		return ""
	}
	return strings.ToLower(ext)
}
