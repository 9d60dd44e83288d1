// Package videourl resolves the playable media resource behind an arbitrary
// input URL. Player pages often carry the real video as a query parameter,
// so normalization unwraps those before the URL is used as a lookup key.
package videourl

import (
	"net/url"
	"regexp"
	"strings"
)

type Kind string

const (
	KindYouTube    Kind = "youtube"
	KindDirectFile Kind = "direct_file"
	KindUnknown    Kind = "unknown"
)

// Query parameters that commonly wrap the real video URL, in priority order.
var wrapperParams = []string{"url", "src", "video", "file", "media"}

var videoExtensions = []string{
	".mp4", ".webm", ".ogg", ".ogv", ".avi", ".mov",
	".wmv", ".flv", ".mkv", ".m4v", ".3gp",
}

var (
	youtubeHostRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)`)
	youtubeIdRe   = regexp.MustCompile(`(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*)`)
)

// Normalize returns the canonical playable URL for inputUrl. If inputUrl
// wraps the real video in a query parameter whose decoded value points at a
// video file, that value becomes the canonical URL. In every other case,
// including unparsable input, inputUrl is returned unchanged.
//
// Normalize is pure and idempotent.
func Normalize(inputUrl string) string {
	u, err := url.Parse(inputUrl)
	if err != nil {
		return inputUrl
	}

	query := u.Query()
	for _, param := range wrapperParams {
		wrapped := query.Get(param)
		if wrapped == "" {
			continue
		}

		decoded, err := url.QueryUnescape(wrapped)
		if err != nil {
			decoded = wrapped
		}
		if IsVideoFileUrl(decoded) {
			return decoded
		}
	}

	return inputUrl
}

// IsVideoFileUrl reports whether the URL's path ends in a known video file
// extension.
func IsVideoFileUrl(rawUrl string) bool {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return false
	}

	path := strings.ToLower(u.Path)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}

// IsYouTubeUrl reports whether the URL matches a known YouTube watch, short
// or embed pattern.
func IsYouTubeUrl(rawUrl string) bool {
	return youtubeHostRe.MatchString(rawUrl)
}

// ExtractYouTubeID returns the 11-character video id embedded in a YouTube
// URL. Extraction fails if the captured token is not exactly 11 characters,
// even when the domain pattern matched.
func ExtractYouTubeID(rawUrl string) (string, bool) {
	match := youtubeIdRe.FindStringSubmatch(rawUrl)
	if match == nil || len(match[2]) != 11 {
		return "", false
	}

	return match[2], true
}

// Classify determines which playback backend should handle the URL. A URL
// only classifies as YouTube if an id actually extracts; a matching domain
// with a malformed id falls through so the player can still attempt it as a
// direct source.
func Classify(rawUrl string) Kind {
	if IsYouTubeUrl(rawUrl) {
		if _, ok := ExtractYouTubeID(rawUrl); ok {
			return KindYouTube
		}
	}

	if IsVideoFileUrl(rawUrl) {
		return KindDirectFile
	}

	return KindUnknown
}
