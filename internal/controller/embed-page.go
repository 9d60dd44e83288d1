package controller

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/embedplay/server/pkg/videourl"
)

type embedPageData struct {
	VideoURL        string
	Kind            string
	YouTubeId       string
	PlayButtonColor string
	PlayButtonSize  int
	ClientId        string
}

var embedPageTemplate = template.Must(template.New("embed").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Video Player</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        html, body { width: 100%; height: 100%; overflow: hidden; background: #000; }
        .player-wrapper { position: relative; width: 100%; height: 100%; }
        video, #yt-player { width: 100%; height: 100%; }
        .play-button {
            position: absolute; top: 50%; left: 50%; transform: translate(-50%, -50%);
            width: {{.PlayButtonSize}}px; height: {{.PlayButtonSize}}px;
            background-color: {{.PlayButtonColor}};
            border: 0; border-radius: 50%; cursor: pointer;
            box-shadow: 0 4px 16px rgba(0,0,0,0.4);
        }
        .resume-modal {
            position: absolute; inset: 0; display: none;
            align-items: center; justify-content: center;
            background: rgba(0,0,0,0.7); color: #fff;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
        }
        .resume-modal .box { background: #1e293b; padding: 24px; border-radius: 12px; text-align: center; }
        .resume-modal button { margin: 12px 6px 0; padding: 8px 16px; border: 0; border-radius: 6px; cursor: pointer; }
        .player-error {
            position: absolute; inset: 0; display: none;
            align-items: center; justify-content: center;
            color: #f87171; background: #0f172a;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
        }
    </style>
</head>
<body>
    <div class="player-wrapper" id="wrapper">
        {{if eq .Kind "youtube"}}
        <div id="yt-player"></div>
        {{else}}
        <video id="player" playsinline src="{{.VideoURL}}"></video>
        {{end}}
        <button class="play-button" id="play-btn"></button>
        <div class="resume-modal" id="resume-modal">
            <div class="box">
                <p>Resume from <span id="resume-pos"></span>?</p>
                <button id="resume-yes">Resume</button>
                <button id="resume-no">Start over</button>
            </div>
        </div>
        <div class="player-error" id="player-error"></div>
    </div>
    <script>
    (function() {
        'use strict';

        var clientId = {{.ClientId}};
        var videoUrl = {{.VideoURL}};
        var kind = {{.Kind}};
        var youtubeId = {{.YouTubeId}};

        var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
        var ws = new WebSocket(proto + location.host + '/ws/player?client_id=' + encodeURIComponent(clientId));

        function send(type, payload) {
            ws.send(JSON.stringify({type: type, payload: payload || {}}));
        }

        function forward(name, extra) {
            var payload = {name: name};
            for (var k in (extra || {})) { payload[k] = extra[k]; }
            send('PLAYER_EVENT', payload);
        }

        var media = document.getElementById('player');
        var ytPlayer = null;

        function execCommand(cmd) {
            if (kind === 'youtube') {
                if (!ytPlayer) { return; }
                switch (cmd.action) {
                case 'play': ytPlayer.playVideo(); break;
                case 'pause': ytPlayer.pauseVideo(); break;
                case 'mute': ytPlayer.mute(); break;
                case 'unmute': ytPlayer.unMute(); break;
                case 'set_volume': ytPlayer.setVolume(cmd.value); break;
                case 'seek': ytPlayer.seekTo(cmd.value, true); break;
                case 'report_time': forward('current_time', {position: ytPlayer.getCurrentTime()}); break;
                case 'request_fullscreen': document.getElementById('wrapper').requestFullscreen(); break;
                }
                return;
            }
            if (!media) { return; }
            switch (cmd.action) {
            case 'play': media.play(); break;
            case 'pause': media.pause(); break;
            case 'mute': media.muted = true; break;
            case 'unmute': media.muted = false; break;
            case 'set_volume': media.volume = cmd.value; break;
            case 'seek': media.currentTime = cmd.value; break;
            case 'request_fullscreen': document.getElementById('wrapper').requestFullscreen(); break;
            }
        }

        ws.onopen = function() {
            send('LOAD_VIDEO', {video_url: videoUrl});
        };

        ws.onmessage = function(raw) {
            var msg = JSON.parse(raw.data);
            switch (msg.type) {
            case 'RESUME_PROMPT':
                var pos = Math.floor(msg.payload.position_seconds);
                document.getElementById('resume-pos').textContent =
                    Math.floor(pos / 60) + ':' + String(pos % 60).padStart(2, '0');
                document.getElementById('resume-modal').style.display = 'flex';
                break;
            case 'PLAYER_COMMAND':
                execCommand(msg.payload);
                break;
            case 'PLAYER_ERROR':
                var el = document.getElementById('player-error');
                el.textContent = msg.payload.message;
                el.style.display = 'flex';
                break;
            }
        };

        document.getElementById('resume-yes').onclick = function() {
            send('RESOLVE_RESUME', {choice: 'resume_from_saved'});
            document.getElementById('resume-modal').style.display = 'none';
        };
        document.getElementById('resume-no').onclick = function() {
            send('RESOLVE_RESUME', {choice: 'start_from_beginning'});
            document.getElementById('resume-modal').style.display = 'none';
        };
        document.getElementById('play-btn').onclick = function() {
            send('PLAYER_CONTROL', {action: 'play'});
            this.style.display = 'none';
        };

        if (kind === 'youtube') {
            var tag = document.createElement('script');
            tag.src = 'https://www.youtube.com/iframe_api';
            document.head.appendChild(tag);
            window.onYouTubeIframeAPIReady = function() {
                ytPlayer = new YT.Player('yt-player', {
                    videoId: youtubeId,
                    playerVars: {controls: 0, rel: 0, playsinline: 1, enablejsapi: 1},
                    events: {
                        onReady: function() { forward('ready'); },
                        onStateChange: function(e) { forward('state_change', {code: e.data}); },
                        onError: function(e) { forward('error', {code: e.data}); }
                    }
                });
            };
        } else if (media) {
            media.addEventListener('loadstart', function() { forward('loadstart'); });
            media.addEventListener('canplay', function() { forward('canplay'); });
            media.addEventListener('play', function() { forward('play'); });
            media.addEventListener('pause', function() { forward('pause'); });
            media.addEventListener('ended', function() { forward('ended'); });
            media.addEventListener('timeupdate', function() { forward('timeupdate', {position: media.currentTime}); });
            media.addEventListener('volumechange', function() { forward('volumechange', {volume: media.volume, muted: media.muted}); });
            media.addEventListener('error', function() {
                forward('error', {code: media.error ? media.error.code : 0});
            });
        }
    })();
    </script>
</body>
</html>`))

// embedPage serves the embeddable player. The video URL and display options
// arrive in the page's own query string, exactly like a manually entered
// URL would.
func (c Controller) embedPage(w http.ResponseWriter, r *http.Request) {
	videoParam := r.URL.Query().Get("video")
	if videoParam == "" {
		http.Error(w, "no video specified", http.StatusBadRequest)
		return
	}

	playButtonColor := r.URL.Query().Get("playButtonColor")
	if playButtonColor == "" {
		playButtonColor = "#ff0000"
	}

	playButtonSize := 96
	if sizeParam := r.URL.Query().Get("playButtonSize"); sizeParam != "" {
		if size, err := strconv.Atoi(sizeParam); err == nil && size > 0 {
			playButtonSize = size
		}
	}

	clientId := ""
	if cookie, err := r.Cookie("ep-client-id"); err == nil {
		clientId = cookie.Value
	}
	if clientId == "" {
		clientId = c.clientIdGen.GenerateRandomString(clientIdLength)
		http.SetCookie(w, &http.Cookie{
			Name:     "ep-client-id",
			Value:    clientId,
			Path:     "/",
			MaxAge:   int(365 * 24 * 3600),
			HttpOnly: false,
		})
	}

	canonical := videourl.Normalize(videoParam)
	kind := videourl.Classify(canonical)
	youtubeId, _ := videourl.ExtractYouTubeID(canonical)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := embedPageTemplate.Execute(w, embedPageData{
		VideoURL:        canonical,
		Kind:            string(kind),
		YouTubeId:       youtubeId,
		PlayButtonColor: playButtonColor,
		PlayButtonSize:  playButtonSize,
		ClientId:        clientId,
	}); err != nil {
		c.logger.ErrorContext(r.Context(), "embedPage", "template err", err)
	}
}
