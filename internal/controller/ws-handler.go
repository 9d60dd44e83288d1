package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/embedplay/server/internal/adapter"
	"github.com/embedplay/server/internal/service/session"
	"github.com/embedplay/server/pkg/rest"
	"github.com/embedplay/server/pkg/wsrouter"
)

// Output is the envelope for every message the server pushes to the page.
type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// commandSender bridges the adapter's command channel onto the websocket.
// wsrouter.Conn serializes writes, so the adapter's polling goroutine can
// send without coordinating with handlers.
type commandSender struct {
	conn *wsrouter.Conn
}

func (s commandSender) SendCommand(cmd adapter.Command) error {
	return s.conn.WriteJSON(Output{Type: "PLAYER_COMMAND", Payload: cmd})
}

func (c Controller) playerWS(w http.ResponseWriter, r *http.Request) {
	clientId := r.URL.Query().Get("client_id")
	if clientId == "" {
		clientId = c.clientIdGen.GenerateRandomString(clientIdLength)
	}

	ws, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	conn := wsrouter.NewConn(ws)
	ctx := setClientIdToCtx(r.Context(), clientId)

	router := wsrouter.New()
	router.ErrorHandler = c.handleWSError
	router.Handle("LOAD_VIDEO", wsrouter.Typed(c.loadVideo))
	router.Handle("PLAYER_EVENT", wsrouter.Typed(c.playerEvent))
	router.Handle("RESOLVE_RESUME", wsrouter.Typed(c.resolveResume))
	router.Handle("CLEAR_PROGRESS", wsrouter.Typed(c.clearProgress))
	router.Handle("PLAYER_CONTROL", wsrouter.Typed(c.playerControl))
	router.Handle("ALIVE", wsrouter.Typed(c.alive))

	if err := router.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(ctx, "playerWS", "serve conn ended", err)
	}

	c.cleanupConn(ctx, conn)
}

// cleanupConn unloads whatever session the connection was driving. The page
// going away means nobody is left to emit events or receive commands.
func (c Controller) cleanupConn(ctx context.Context, conn *wsrouter.Conn) {
	sessionId, err := c.connRepo.GetSessionId(conn)
	if err != nil {
		return
	}

	if err := c.sessionService.UnloadSession(ctx, &session.UnloadSessionParams{
		SessionId: sessionId,
	}); err != nil {
		c.logger.InfoContext(ctx, "cleanupConn", "unload session err", err)
	}

	if err := c.connRepo.RemoveByConn(conn); err != nil {
		c.logger.InfoContext(ctx, "cleanupConn", "remove conn err", err)
	}
}

func (c Controller) handleWSError(ctx context.Context, conn *wsrouter.Conn, err error) {
	c.logger.InfoContext(ctx, "handleWSError", "message type", wsrouter.GetMessageTypeFromCtx(ctx), "err", err)

	message := "internal error"
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		message = "no video loaded"
	case errors.Is(err, session.ErrResumeNotPending):
		message = "no resume prompt to resolve"
	case errors.Is(err, session.ErrUnknownControlAction):
		message = "unknown control action"
	}

	conn.WriteJSON(Output{Type: "ERROR", Payload: rest.Envelope{"message": message}})
}

type loadVideoInput struct {
	VideoURL string `json:"video_url" validate:"required,max=2048"`
}

func (c Controller) loadVideo(ctx context.Context, conn *wsrouter.Conn, input loadVideoInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.InfoContext(ctx, "loadVideo", "validate err", validationErrors)
		return conn.WriteJSON(Output{Type: "ERROR", Payload: rest.Envelope{"errors": validationErrors}})
	}

	// a connection drives at most one session at a time
	if prevSessionId, err := c.connRepo.GetSessionId(conn); err == nil {
		if err := c.sessionService.UnloadSession(ctx, &session.UnloadSessionParams{
			SessionId: prevSessionId,
		}); err != nil {
			c.logger.InfoContext(ctx, "loadVideo", "unload previous session err", err)
		}
		if err := c.connRepo.RemoveByConn(conn); err != nil {
			c.logger.InfoContext(ctx, "loadVideo", "remove previous conn err", err)
		}
	}

	resp, err := c.sessionService.LoadVideo(ctx, &session.LoadVideoParams{
		ClientId: c.getClientIdFromCtx(ctx),
		VideoURL: input.VideoURL,
		Sender:   commandSender{conn: conn},
	})
	if err != nil {
		return err
	}

	if err := c.connRepo.Add(conn, resp.SessionId); err != nil {
		return err
	}

	if err := conn.WriteJSON(Output{Type: "VIDEO_LOADED", Payload: rest.Envelope{
		"session_id": resp.SessionId,
		"video_url":  resp.VideoURL,
		"kind":       resp.Kind,
		"youtube_id": resp.YouTubeId,
	}}); err != nil {
		return err
	}

	if resp.ResumePrompt != nil {
		return conn.WriteJSON(Output{Type: "RESUME_PROMPT", Payload: resp.ResumePrompt})
	}

	return nil
}

func (c Controller) playerEvent(ctx context.Context, conn *wsrouter.Conn, input adapter.RawEvent) error {
	sessionId, err := c.connRepo.GetSessionId(conn)
	if err != nil {
		return session.ErrSessionNotFound
	}

	resp, err := c.sessionService.HandlePlayerEvent(ctx, &session.HandlePlayerEventParams{
		SessionId: sessionId,
		Raw:       input,
	})
	if err != nil {
		return err
	}

	if resp.ErrorMessage != "" {
		return conn.WriteJSON(Output{Type: "PLAYER_ERROR", Payload: rest.Envelope{
			"message": resp.ErrorMessage,
		}})
	}

	return nil
}

type resolveResumeInput struct {
	Choice session.ResumeChoice `json:"choice" validate:"required,oneof=resume_from_saved start_from_beginning"`
}

func (c Controller) resolveResume(ctx context.Context, conn *wsrouter.Conn, input resolveResumeInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.InfoContext(ctx, "resolveResume", "validate err", validationErrors)
		return conn.WriteJSON(Output{Type: "ERROR", Payload: rest.Envelope{"errors": validationErrors}})
	}

	sessionId, err := c.connRepo.GetSessionId(conn)
	if err != nil {
		return session.ErrSessionNotFound
	}

	resp, err := c.sessionService.ResolveResume(ctx, &session.ResolveResumeParams{
		SessionId: sessionId,
		Choice:    input.Choice,
	})
	if err != nil {
		return err
	}

	return conn.WriteJSON(Output{Type: "RESUME_RESOLVED", Payload: rest.Envelope{
		"seek_deferred": resp.SeekDeferred,
	}})
}

type clearProgressInput struct{}

func (c Controller) clearProgress(ctx context.Context, conn *wsrouter.Conn, _ clearProgressInput) error {
	sessionId, err := c.connRepo.GetSessionId(conn)
	if err != nil {
		return session.ErrSessionNotFound
	}

	if err := c.sessionService.ClearProgress(ctx, &session.ClearProgressParams{
		SessionId: sessionId,
	}); err != nil {
		return err
	}

	return conn.WriteJSON(Output{Type: "PROGRESS_CLEARED"})
}

type playerControlInput struct {
	Action string  `json:"action" validate:"required"`
	Value  float64 `json:"value"`
}

func (c Controller) playerControl(ctx context.Context, conn *wsrouter.Conn, input playerControlInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.InfoContext(ctx, "playerControl", "validate err", validationErrors)
		return conn.WriteJSON(Output{Type: "ERROR", Payload: rest.Envelope{"errors": validationErrors}})
	}

	sessionId, err := c.connRepo.GetSessionId(conn)
	if err != nil {
		return session.ErrSessionNotFound
	}

	return c.sessionService.ControlPlayer(ctx, &session.ControlPlayerParams{
		SessionId: sessionId,
		Action:    input.Action,
		Value:     input.Value,
	})
}

type aliveInput struct{}

func (c Controller) alive(ctx context.Context, conn *wsrouter.Conn, _ aliveInput) error {
	return nil
}
