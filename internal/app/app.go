package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/embedplay/server/internal/controller"
	"github.com/embedplay/server/internal/repository/connection/inmemory"
	progressfile "github.com/embedplay/server/internal/repository/progress/file"
	progressredis "github.com/embedplay/server/internal/repository/progress/redis"
	"github.com/embedplay/server/internal/service/session"
	"github.com/embedplay/server/pkg/ctxlogger"
	"github.com/embedplay/server/pkg/redisclient"
	"github.com/embedplay/server/pkg/ytvideodata"
)

const (
	StorageRedis = "redis"
	StorageFile  = "file"
)

type AppConfig struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	BaseURL       string `json:"base_url"`
	LogLevel      string `json:"log_level"`
	Storage       string `json:"storage"`
	StorageDir    string `json:"storage_dir"`
	RedisHost     string `json:"redis_host"`
	RedisPort     int    `json:"redis_port"`
	RedisPassword string `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	switch cfg.Storage {
	case StorageRedis:
	case StorageFile:
		if cfg.StorageDir == "" {
			return fmt.Errorf("storage dir is required for file storage")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", cfg.Storage)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be in 1-65535")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	logger := slog.New(&h)
	slog.SetDefault(logger)

	svc, closeStorage, err := buildSessionService(cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	connectionRepo := inmemory.NewRepo()
	ctrl := controller.NewController(svc, connectionRepo, logger, &controller.Config{
		BaseURL: cfg.BaseURL,
	})
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: ctrl.GetMux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	slog.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}

type sessionService interface {
	LoadVideo(context.Context, *session.LoadVideoParams) (session.LoadVideoResponse, error)
	UnloadSession(context.Context, *session.UnloadSessionParams) error
	SaveProgress(context.Context, *session.SaveProgressParams) error
	ClearProgress(context.Context, *session.ClearProgressParams) error
	ResolveResume(context.Context, *session.ResolveResumeParams) (session.ResolveResumeResponse, error)
	HandlePlayerEvent(context.Context, *session.HandlePlayerEventParams) (session.HandlePlayerEventResponse, error)
	ControlPlayer(context.Context, *session.ControlPlayerParams) error
	GetState(context.Context, *session.GetStateParams) (session.PlaybackState, error)
}

func buildSessionService(cfg *AppConfig) (sessionService, func(), error) {
	videoData := ytvideodata.NewClient()

	switch cfg.Storage {
	case StorageFile:
		progressRepo, err := progressfile.NewRepo(cfg.StorageDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create file storage: %w", err)
		}
		return session.NewService(progressRepo, videoData, nil), func() {}, nil

	default:
		rc, err := redisclient.NewRedisClient(&redisclient.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		progressRepo := progressredis.NewRepo(rc)
		return session.NewService(progressRepo, videoData, nil), func() { rc.Close() }, nil
	}
}
