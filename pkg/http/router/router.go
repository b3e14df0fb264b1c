package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/evotrack/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/evotrack/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/evotrack/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"
)

type API struct {
	log     *zap.Logger
	limiter *rate.Limiter
}

func NewAPI(log *zap.Logger) *API {
	return &API{
		log:     log,
		limiter: rate.NewLimiter(rateLimitPerSecond, rateLimitBurst),
	}
}

//	@title			evotrack API
//	@version		1.0
//	@description	Read-only access to the vessel track fitness function: reconstructed tracks, track errors and training targets.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	useRateLimit bool,
	trackService controllers.TrackService,
) error {
	log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(useRateLimit, trackService), config)
	log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		log.Info("Context canceled, shutting down server")
		return srv.Shutdown(context.Background())
	}
}

// Handler. routes wrapped in the middleware chain
func (api *API) Handler(useRateLimit bool, trackService controllers.TrackService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)

	group := router_helper.NewRouteGroup(router, "/api")

	trackRoutes := controllers.New(trackService, api.log)
	trackRoutes.Routes(group)

	var mwChain []alice.Constructor
	if useRateLimit {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(api.log), Labels, Limit(api.limiter))
	} else {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(api.log), Labels)
	}
	return alice.New(mwChain...).Then(router)
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
