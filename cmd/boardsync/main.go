package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	channeladapter "boardsync/internal/adapter/channel"
	gatewayadapter "boardsync/internal/adapter/gateway"
	httpadapter "boardsync/internal/adapter/http"
	"boardsync/internal/adapter/http/handlers"
	httpmiddleware "boardsync/internal/adapter/http/middleware"
	"boardsync/internal/app/service"
	"boardsync/internal/config"
	"boardsync/internal/core/domain"
	"boardsync/pkg/apierrors"
	"boardsync/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway := gatewayadapter.NewClient(cfg.GatewayBaseURL, cfg.AuthToken, cfg.GatewayTimeout)

	// The channel hands events to the engine; the engine emits on the
	// channel. The handler closure breaks the cycle: it only fires after
	// Connect, by which time the engine exists.
	var engine *service.Engine
	channel := channeladapter.NewClient(cfg.ChannelURL, cfg.AuthToken, channeladapter.Options{
		ConnectDelay: cfg.ConnectDelay,
		MaxAttempts:  cfg.ReconnectAttempts,
		BackoffCap:   cfg.BackoffCap,
	}, func(evt domain.Event) {
		engine.HandleEvent(evt)
	})

	boards := service.NewBoardService(gateway, channel, cfg.WelcomeTTL)
	moves := service.NewMoveCoordinator(gateway, boards)
	selfID := channeladapter.UserIDFromToken(cfg.AuthToken)
	chat := service.NewChatSession(channel, selfID, cfg.TypingDebounce, cfg.TypingExpiry)
	engine = service.NewEngine(gateway, channel, boards, moves, chat)

	go engine.Run(ctx)
	go drainNotices(ctx, engine)

	if err := channel.Connect(ctx); err != nil {
		logger.Warn("channel connect", zap.Error(err))
	}
	defer func() {
		if err := channel.Close(); err != nil {
			zap.L().Debug("channel close", zap.Error(err))
		}
	}()

	if err := bootstrap(ctx, cfg, engine); err != nil {
		logger.Warn("bootstrap incomplete, continuing in degraded mode", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn("failed to set trusted proxies", zap.Error(err))
	}
	healthHandler := handlers.NewHealthHandler(engine)
	boardHandler := handlers.NewBoardHandler(engine)
	httpadapter.RegisterRoutes(r, healthHandler, boardHandler)

	addr := ":" + cfg.AppPort
	logger.Info("starting board api", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

// bootstrap loads groups and pending invitations and activates the startup
// group: the configured one, or the first the gateway returns.
func bootstrap(ctx context.Context, cfg *config.Config, engine *service.Engine) error {
	groups, err := engine.RefreshGroups(ctx)
	if err != nil {
		return err
	}
	if _, err := engine.RefreshInvitations(ctx); err != nil {
		zap.L().Warn("could not load pending invitations", zap.Error(err))
	}

	groupID := cfg.GroupID
	if groupID == "" && len(groups) > 0 {
		groupID = groups[0].ID
	}
	if groupID == "" {
		zap.L().Info("no groups available yet")
		return nil
	}
	return engine.SwitchGroup(ctx, groupID)
}

func drainNotices(ctx context.Context, engine *service.Engine) {
	for {
		select {
		case <-ctx.Done():
			return
		case notice := <-engine.Notices():
			message := apierrors.GetTransErrorMsg(notice.Key, translator.LanguageEn)
			if notice.Level == service.NoticeError {
				zap.L().Warn("notice", zap.String("message", message), zap.String("detail", notice.Detail))
				continue
			}
			zap.L().Info("notice", zap.String("message", message), zap.String("detail", notice.Detail))
		}
	}
}
