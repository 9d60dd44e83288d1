package controller

import (
	"net/http"

	"github.com/embedplay/server/pkg/embedcode"
	"github.com/embedplay/server/pkg/rest"
	"github.com/embedplay/server/pkg/videourl"
)

type validateURLInput struct {
	URL string `json:"url" validate:"required,max=2048"`
}

type validateURLResponse struct {
	Valid        bool   `json:"valid"`
	Type         string `json:"type"`
	CanonicalURL string `json:"canonical_url"`
	YouTubeId    string `json:"youtube_id,omitempty"`
}

func (c Controller) validateURL(w http.ResponseWriter, r *http.Request) {
	var req validateURLInput

	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.InfoContext(r.Context(), "validateURL", "read json err", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.InfoContext(r.Context(), "validateURL", "validate err", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	canonical := videourl.Normalize(req.URL)
	kind := videourl.Classify(canonical)
	youtubeId, _ := videourl.ExtractYouTubeID(canonical)

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": validateURLResponse{
		Valid:        true,
		Type:         string(kind),
		CanonicalURL: canonical,
		YouTubeId:    youtubeId,
	}})
}

func (c Controller) embedCode(w http.ResponseWriter, r *http.Request) {
	var req embedcode.IframeConfig

	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.InfoContext(r.Context(), "embedCode", "read json err", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if req.BaseURL == "" {
		req.BaseURL = c.baseURL
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.InfoContext(r.Context(), "embedCode", "validate err", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": rest.Envelope{
		"code": embedcode.Iframe(req),
	}})
}

func (c Controller) overlayScript(w http.ResponseWriter, r *http.Request) {
	var req embedcode.OverlayButtonConfig

	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.InfoContext(r.Context(), "overlayScript", "read json err", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.InfoContext(r.Context(), "overlayScript", "validate err", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	code, err := embedcode.OverlayScript(req)
	if err != nil {
		c.logger.ErrorContext(r.Context(), "overlayScript", "generate err", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "failed to generate script"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": rest.Envelope{"code": code}})
}

func (c Controller) timedButton(w http.ResponseWriter, r *http.Request) {
	var req embedcode.TimedButtonConfig

	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.InfoContext(r.Context(), "timedButton", "read json err", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.InfoContext(r.Context(), "timedButton", "validate err", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	code, err := embedcode.TimedButtonHTML(req)
	if err != nil {
		c.logger.ErrorContext(r.Context(), "timedButton", "generate err", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "failed to generate snippet"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": rest.Envelope{"code": code}})
}
