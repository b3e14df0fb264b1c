package http

import (
	"context"

	"github.com/lintang-b-s/evotrack/pkg/config"
	http_router "github.com/lintang-b-s/evotrack/pkg/http/router"
	"github.com/lintang-b-s/evotrack/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/evotrack/pkg/http/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log, g: &errgroup.Group{}}
}

// Use. starts the API in the background; Wait blocks until it stops
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	apiConfig config.APIConfig,
	trackService controllers.TrackService,
) (*Server, error) {
	serverConfig := http_server.Config{
		Port:    apiConfig.Port,
		Timeout: apiConfig.Timeout,
	}

	server := http_router.NewAPI(log)

	s.g.Go(func() error {
		return server.Run(
			ctx, serverConfig, log,
			apiConfig.RateLimit, trackService,
		)
	})

	return s, nil
}

func (s *Server) Wait() error {
	return s.g.Wait()
}
