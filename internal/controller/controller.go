package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/embedplay/server/internal/service/session"
	"github.com/embedplay/server/pkg/randstr"
	"github.com/embedplay/server/pkg/validator"
	"github.com/embedplay/server/pkg/wsrouter"
)

const clientIdLength = 21

var clientIdAlphabet = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

type iSessionService interface {
	LoadVideo(context.Context, *session.LoadVideoParams) (session.LoadVideoResponse, error)
	UnloadSession(context.Context, *session.UnloadSessionParams) error
	SaveProgress(context.Context, *session.SaveProgressParams) error
	ClearProgress(context.Context, *session.ClearProgressParams) error
	ResolveResume(context.Context, *session.ResolveResumeParams) (session.ResolveResumeResponse, error)
	HandlePlayerEvent(context.Context, *session.HandlePlayerEventParams) (session.HandlePlayerEventResponse, error)
	ControlPlayer(context.Context, *session.ControlPlayerParams) error
	GetState(context.Context, *session.GetStateParams) (session.PlaybackState, error)
}

type iConnRepo interface {
	Add(conn *wsrouter.Conn, sessionId string) error
	RemoveBySessionId(sessionId string) error
	RemoveByConn(conn *wsrouter.Conn) error
	GetConn(sessionId string) (*wsrouter.Conn, error)
	GetSessionId(conn *wsrouter.Conn) (string, error)
}

type Controller struct {
	sessionService iSessionService
	connRepo       iConnRepo
	upgrader       websocket.Upgrader
	validate       *validator.Validator
	clientIdGen    *randstr.Generator
	logger         *slog.Logger
	baseURL        string
}

type Config struct {
	// BaseURL is the public origin used inside generated embed snippets.
	BaseURL string
}

func NewController(sessionService iSessionService, connRepo iConnRepo, logger *slog.Logger, cfg *Config) *Controller {
	baseURL := ""
	if cfg != nil {
		baseURL = cfg.BaseURL
	}

	return &Controller{
		sessionService: sessionService,
		connRepo:       connRepo,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate:    validator.NewValidator(),
		clientIdGen: randstr.New(clientIdAlphabet),
		logger:      logger,
		baseURL:     baseURL,
	}
}
