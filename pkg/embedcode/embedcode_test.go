package embedcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIframe(t *testing.T) {
	code := Iframe(IframeConfig{
		BaseURL:         "https://player.example.com",
		VideoURL:        "https://x.com/v.mp4",
		PlayButtonColor: "#ff0000",
		PlayButtonSize:  96,
	})

	assert.Contains(t, code, `<iframe src="https://player.example.com/embed?`)
	assert.Contains(t, code, "video=https%3A%2F%2Fx.com%2Fv.mp4")
	assert.Contains(t, code, "playButtonColor=%23ff0000")
	assert.Contains(t, code, "playButtonSize=96")
	assert.Contains(t, code, "allowfullscreen")
}

func TestIframeOmitsUnsetOptions(t *testing.T) {
	code := Iframe(IframeConfig{
		BaseURL:  "https://player.example.com",
		VideoURL: "https://x.com/v.mp4",
	})

	assert.NotContains(t, code, "playButtonColor")
	assert.NotContains(t, code, "playButtonSize")
}

func TestOverlayScript(t *testing.T) {
	code, err := OverlayScript(OverlayButtonConfig{
		Text:         "Click Here!",
		URL:          "https://example.com",
		DelaySeconds: 3,
		Position:     PositionBottomLeft,
	})
	require.NoError(t, err)

	assert.Contains(t, code, `"Click Here!"`)
	assert.Contains(t, code, `"https://example.com"`)
	assert.Contains(t, code, "delay: 3")
	assert.Contains(t, code, "bottom: 20px; left: 20px;")
	// defaults applied
	assert.Contains(t, code, "width: 200px")
	assert.Contains(t, code, "background-color: #3b82f6")
}

func TestOverlayScriptUnknownPositionFallsBack(t *testing.T) {
	code, err := OverlayScript(OverlayButtonConfig{
		Text:     "Go",
		URL:      "https://example.com",
		Position: Position("diagonal"),
	})
	require.NoError(t, err)

	assert.Contains(t, code, StyleForPosition(PositionTopRight))
}

func TestTimedButtonHTML(t *testing.T) {
	code, err := TimedButtonHTML(TimedButtonConfig{
		Text:         "Buy now",
		URL:          "https://example.com/shop",
		DelaySeconds: 5,
		Alignment:    AlignRight,
	})
	require.NoError(t, err)

	assert.Contains(t, code, "text-align: right;")
	assert.Contains(t, code, `href="https://example.com/shop"`)
	assert.Contains(t, code, "}, 5000);")
	assert.True(t, strings.HasPrefix(code, `<div class="timed-button-container"`))
}

func TestStyleForPositionCoversAllPositions(t *testing.T) {
	positions := []Position{
		PositionTopLeft, PositionTopCenter, PositionTopRight,
		PositionCenterLeft, PositionCenter, PositionCenterRight,
		PositionBottomLeft, PositionBottomCenter, PositionBottomRight,
	}
	seen := make(map[string]bool)
	for _, pos := range positions {
		style := StyleForPosition(pos)
		assert.NotEmpty(t, style)
		seen[style] = true
	}
	assert.Len(t, seen, len(positions), "every position must map to a distinct style")
}
