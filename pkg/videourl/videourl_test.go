package videourl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnwrapsVideoParam(t *testing.T) {
	url := Normalize("https://site.com/player?url=https%3A%2F%2Fx.com%2Fv.mp4")
	assert.Equal(t, "https://x.com/v.mp4", url)
}

func TestNormalizeParamPriority(t *testing.T) {
	// "url" wins over "src" even when both qualify
	url := Normalize("https://site.com/p?src=https%3A%2F%2Fb.com%2Fb.webm&url=https%3A%2F%2Fa.com%2Fa.mp4")
	assert.Equal(t, "https://a.com/a.mp4", url)
}

func TestNormalizeSkipsNonVideoParam(t *testing.T) {
	// "url" points at a page, "video" points at a file
	url := Normalize("https://site.com/p?url=https%3A%2F%2Fa.com%2Fpage.html&video=https%3A%2F%2Fb.com%2Fb.mp4")
	assert.Equal(t, "https://b.com/b.mp4", url)
}

func TestNormalizeNoQualifyingParam(t *testing.T) {
	input := "https://site.com/player?id=42"
	assert.Equal(t, input, Normalize(input))
}

func TestNormalizeUnparsableInput(t *testing.T) {
	input := "http://%zz invalid"
	assert.Equal(t, input, Normalize(input))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"https://site.com/player?url=https%3A%2F%2Fx.com%2Fv.mp4",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://x.com/v.mp4",
		"not a url at all",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", input)
	}
}

func TestIsVideoFileUrl(t *testing.T) {
	assert.True(t, IsVideoFileUrl("https://x.com/v.mp4"))
	assert.True(t, IsVideoFileUrl("https://x.com/V.MKV"))
	assert.True(t, IsVideoFileUrl("https://x.com/a/b/clip.m4v?sig=abc"))
	assert.False(t, IsVideoFileUrl("https://x.com/v.mp3"))
	assert.False(t, IsVideoFileUrl("https://x.com/watch?v=v.mp4"))
}

func TestExtractYouTubeID(t *testing.T) {
	id, ok := ExtractYouTubeID("https://youtu.be/dQw4w9WgXcQ")
	assert.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)

	id, ok = ExtractYouTubeID("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	assert.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)

	id, ok = ExtractYouTubeID("https://www.youtube.com/embed/dQw4w9WgXcQ")
	assert.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)

	// token not 11 characters
	_, ok = ExtractYouTubeID("https://youtu.be/short")
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindYouTube, Classify("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, KindDirectFile, Classify("https://x.com/v.mp4"))
	assert.Equal(t, KindUnknown, Classify("https://x.com/stream"))

	// youtube domain with malformed id is not youtube for adapter selection
	assert.NotEqual(t, KindYouTube, Classify("https://youtu.be/short"))
}

func TestClassifyAfterNormalize(t *testing.T) {
	input := "https://youtu.be/dQw4w9WgXcQ"
	assert.Equal(t, input, Normalize(input))
	assert.Equal(t, KindYouTube, Classify(input))
}
