// Package embedcode generates static HTML/CSS/JS snippets that users paste
// into their own pages: an iframe embed for the player, an overlay button
// script for third-party video containers, and a timed call-to-action
// button. Generators are pure functions from a config struct to a string
// and have no runtime dependency on the player itself.
package embedcode

import (
	"bytes"
	"fmt"
	"net/url"
	"text/template"
)

type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopCenter    Position = "top-center"
	PositionTopRight     Position = "top-right"
	PositionCenterLeft   Position = "center-left"
	PositionCenter       Position = "center"
	PositionCenterRight  Position = "center-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomCenter Position = "bottom-center"
	PositionBottomRight  Position = "bottom-right"
)

// positionStyles maps each position to its absolute-placement CSS.
var positionStyles = map[Position]string{
	PositionTopLeft:      "top: 20px; left: 20px;",
	PositionTopCenter:    "top: 20px; left: 50%; transform: translateX(-50%);",
	PositionTopRight:     "top: 20px; right: 20px;",
	PositionCenterLeft:   "top: 50%; left: 20px; transform: translateY(-50%);",
	PositionCenter:       "top: 50%; left: 50%; transform: translate(-50%, -50%);",
	PositionCenterRight:  "top: 50%; right: 20px; transform: translateY(-50%);",
	PositionBottomLeft:   "bottom: 20px; left: 20px;",
	PositionBottomCenter: "bottom: 20px; left: 50%; transform: translateX(-50%);",
	PositionBottomRight:  "bottom: 20px; right: 20px;",
}

// StyleForPosition returns the CSS for pos, falling back to top-right for
// unrecognized values.
func StyleForPosition(pos Position) string {
	style, ok := positionStyles[pos]
	if !ok {
		return positionStyles[PositionTopRight]
	}

	return style
}

type IframeConfig struct {
	BaseURL         string `json:"base_url" validate:"required,url"`
	VideoURL        string `json:"video_url" validate:"required"`
	PlayButtonColor string `json:"play_button_color" validate:"omitempty,hexcolor"`
	PlayButtonSize  int    `json:"play_button_size" validate:"omitempty,gte=64,lte=160"`
}

// Iframe returns the embed snippet pointing at the hosted player page with
// the video and display options carried in the query string.
func Iframe(cfg IframeConfig) string {
	query := url.Values{}
	query.Set("video", cfg.VideoURL)
	if cfg.PlayButtonColor != "" {
		query.Set("playButtonColor", cfg.PlayButtonColor)
	}
	if cfg.PlayButtonSize > 0 {
		query.Set("playButtonSize", fmt.Sprintf("%d", cfg.PlayButtonSize))
	}

	src := cfg.BaseURL + "/embed?" + query.Encode()

	return fmt.Sprintf(`<iframe src="%s" width="800" height="450" frameborder="0" allowfullscreen style="max-width: 100%%; height: auto; aspect-ratio: 16/9;"></iframe>`, src)
}

type OverlayButtonConfig struct {
	Text            string   `json:"text" validate:"required,max=64"`
	URL             string   `json:"url" validate:"required,url"`
	DelaySeconds    int      `json:"delay" validate:"gte=0,lte=3600"`
	Position        Position `json:"position" validate:"omitempty,oneof=top-left top-center top-right center-left center center-right bottom-left bottom-center bottom-right"`
	Width           string   `json:"width"`
	Height          string   `json:"height"`
	BackgroundColor string   `json:"background_color" validate:"omitempty,hexcolor"`
	TextColor       string   `json:"text_color" validate:"omitempty,hexcolor"`
	FontSize        string   `json:"font_size"`
}

func (cfg *OverlayButtonConfig) applyDefaults() {
	if cfg.Position == "" {
		cfg.Position = PositionTopRight
	}
	if cfg.Width == "" {
		cfg.Width = "200px"
	}
	if cfg.Height == "" {
		cfg.Height = "50px"
	}
	if cfg.BackgroundColor == "" {
		cfg.BackgroundColor = "#3b82f6"
	}
	if cfg.TextColor == "" {
		cfg.TextColor = "#ffffff"
	}
	if cfg.FontSize == "" {
		cfg.FontSize = "16px"
	}
}

var overlayScriptTemplate = template.Must(template.New("overlay-script").Parse(`<script>
(function() {
  'use strict';

  var config = {
    text: {{printf "%q" .Text}},
    url: {{printf "%q" .URL}},
    delay: {{.DelaySeconds}}
  };

  function createOverlayButton(videoContainer) {
    if (videoContainer.querySelector('.video-overlay-btn')) {
      return;
    }

    var button = document.createElement('a');
    button.href = config.url;
    button.target = '_blank';
    button.className = 'video-overlay-btn';
    button.textContent = config.text;
    button.style.cssText = 'position: absolute; {{.PositionStyle}} width: {{.Width}}; height: {{.Height}};' +
      ' background-color: {{.BackgroundColor}}; color: {{.TextColor}}; font-size: {{.FontSize}};' +
      ' font-weight: 600; text-decoration: none; border-radius: 8px; display: none;' +
      ' align-items: center; justify-content: center; z-index: 9999; cursor: pointer;' +
      ' box-shadow: 0 4px 12px rgba(0,0,0,0.25); transition: all 0.3s ease;';

    if (getComputedStyle(videoContainer).position === 'static') {
      videoContainer.style.position = 'relative';
    }
    videoContainer.appendChild(button);

    setTimeout(function() {
      button.style.display = 'flex';
    }, config.delay * 1000);
  }

  function scan() {
    var containers = document.querySelectorAll('iframe[src*="youtube"], iframe[src*="vimeo"], video');
    for (var i = 0; i < containers.length; i++) {
      var parent = containers[i].parentElement;
      if (parent) {
        createOverlayButton(parent);
      }
    }
  }

  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', scan);
  } else {
    scan();
  }
})();
</script>`))

type overlayScriptData struct {
	OverlayButtonConfig
	PositionStyle string
}

// OverlayScript returns a self-contained script that attaches the configured
// button to every video container it finds on the hosting page.
func OverlayScript(cfg OverlayButtonConfig) (string, error) {
	cfg.applyDefaults()

	var buf bytes.Buffer
	if err := overlayScriptTemplate.Execute(&buf, overlayScriptData{
		OverlayButtonConfig: cfg,
		PositionStyle:       StyleForPosition(cfg.Position),
	}); err != nil {
		return "", fmt.Errorf("failed to execute overlay script template: %w", err)
	}

	return buf.String(), nil
}

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

type TimedButtonConfig struct {
	Text            string    `json:"text" validate:"required,max=64"`
	URL             string    `json:"url" validate:"required,url"`
	DelaySeconds    int       `json:"delay" validate:"gte=0,lte=3600"`
	Width           string    `json:"width"`
	Height          string    `json:"height"`
	BackgroundColor string    `json:"background_color" validate:"omitempty,hexcolor"`
	TextColor       string    `json:"text_color" validate:"omitempty,hexcolor"`
	FontSize        string    `json:"font_size"`
	Alignment       Alignment `json:"alignment" validate:"omitempty,oneof=left center right"`
}

func (cfg *TimedButtonConfig) applyDefaults() {
	if cfg.Width == "" {
		cfg.Width = "200px"
	}
	if cfg.Height == "" {
		cfg.Height = "50px"
	}
	if cfg.BackgroundColor == "" {
		cfg.BackgroundColor = "#3b82f6"
	}
	if cfg.TextColor == "" {
		cfg.TextColor = "#ffffff"
	}
	if cfg.FontSize == "" {
		cfg.FontSize = "16px"
	}
	if cfg.Alignment == "" {
		cfg.Alignment = AlignCenter
	}
}

var timedButtonTemplate = template.Must(template.New("timed-button").Parse(`<div class="timed-button-container" style="text-align: {{.Alignment}};">
  <div class="timed-button" style="display: none;">
    <a href="{{.URL}}" target="_blank" style="display: inline-block; width: {{.Width}}; height: {{.Height}}; background-color: {{.BackgroundColor}}; color: {{.TextColor}}; font-size: {{.FontSize}}; text-decoration: none; border-radius: 8px; line-height: {{.Height}}; text-align: center; font-weight: 600; box-shadow: 0 4px 12px rgba(0,0,0,0.15);">{{.Text}}</a>
  </div>
</div>

<script>
setTimeout(function() {
  var el = document.querySelector('.timed-button');
  if (el) { el.style.display = 'block'; }
}, {{.DelayMs}});
</script>`))

type timedButtonData struct {
	TimedButtonConfig
	DelayMs int
}

// TimedButtonHTML returns a snippet that reveals a call-to-action button
// after the configured delay.
func TimedButtonHTML(cfg TimedButtonConfig) (string, error) {
	cfg.applyDefaults()

	var buf bytes.Buffer
	if err := timedButtonTemplate.Execute(&buf, timedButtonData{
		TimedButtonConfig: cfg,
		DelayMs:           cfg.DelaySeconds * 1000,
	}); err != nil {
		return "", fmt.Errorf("failed to execute timed button template: %w", err)
	}

	return buf.String(), nil
}
