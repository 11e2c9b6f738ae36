package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/figmark/pkg/media"
	"github.com/yaklabco/figmark/pkg/token"
)

func TestGuess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		expected media.Type
	}{
		{"png image", "fig.png", media.TypeImage},
		{"no extension", "https://example.com/figure", media.TypeImage},
		{"empty url", "", media.TypeImage},
		{"mp4 video", "fig.mp4", media.TypeVideo},
		{"webm video", "clips/intro.webm", media.TypeVideo},
		{"mpeg video", "a.mpeg", media.TypeVideo},
		{"ogv video", "a.ogv", media.TypeVideo},
		{"ogg audio", "a.ogg", media.TypeAudio},
		{"mp3 audio", "song.mp3", media.TypeAudio},
		{"wav uppercase", "SONG.WAV", media.TypeAudio},
		{"query string ignored", "movie.mp4?t=10", media.TypeVideo},
		{"fragment ignored", "movie.m4v#t=10", media.TypeVideo},
		{"query and fragment", "track.m4a?x=1#y", media.TypeAudio},
		{"dot in directory only", "media.d/video", media.TypeImage},
		{"trailing dot", "file.", media.TypeImage},
		{"unknown extension", "doc.pdf", media.TypeImage},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, media.Guess(testCase.url))
		})
	}
}

func TestType_Mapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  media.Type
		name string
		tag  string
		kind token.Kind
	}{
		{media.TypeImage, "image", "img", token.KindImage},
		{media.TypeAudio, "audio", "audio", token.KindAudio},
		{media.TypeVideo, "video", "video", token.KindVideo},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.name, testCase.typ.String())
			assert.Equal(t, testCase.tag, testCase.typ.Tag())
			assert.Equal(t, testCase.kind, testCase.typ.Kind())
		})
	}
}

func TestExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mp4", media.Extension("a/b.c/d.MP4"))
	assert.Empty(t, media.Extension("a.b/c"))
	assert.Equal(t, "gz", media.Extension("archive.tar.gz"))

	// Everything after the first '#' is fragment, a '?' in it included.
	assert.Empty(t, media.Extension("a#b?c.mp4"))
	assert.Equal(t, media.TypeImage, media.Guess("a#b?c.mp4"))
	assert.Equal(t, "mp4", media.Extension("a.mp4#b?c.png"))
}
