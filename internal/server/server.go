package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/2wldud98/solideo-edu/internal/config"
	"github.com/2wldud98/solideo-edu/internal/handler"
)

// Server HTTP 服务
// 对外暴露一次性查询接口、WebSocket 推送接口和可选的前端静态文件
type Server struct {
	logger *zap.Logger
	echo   *echo.Echo
	cfg    *config.Config
}

// New 创建 HTTP 服务并注册路由
func New(logger *zap.Logger, cfg *config.Config, metricHandler *handler.MetricHandler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/api/metrics", metricHandler.GetMetrics)
	e.GET("/ws", metricHandler.Stream)

	// 前端面板是可选的，配置了目录才挂载
	if cfg.Server.StaticDir != "" {
		e.Static("/static", cfg.Server.StaticDir)
		e.File("/", filepath.Join(cfg.Server.StaticDir, "index.html"))
	}

	return &Server{
		logger: logger,
		echo:   e,
		cfg:    cfg,
	}
}

// Start 启动监听，阻塞直到服务关闭
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.cfg.Server.Addr))
	if err := s.echo.Start(s.cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
