package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/flightgateway/api"
	"github.com/Domenick1991/flightgateway/config"
	"github.com/Domenick1991/flightgateway/internal/locator"
	"github.com/Domenick1991/flightgateway/internal/repository"
	"github.com/Domenick1991/flightgateway/internal/service/flights"
	"github.com/Domenick1991/flightgateway/internal/service/privilege"
	"github.com/Domenick1991/flightgateway/internal/service/tickets"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const swaggerFile = "gateway.swagger.json"

type Services struct {
	Flights   flights.FlightUseCase
	Tickets   tickets.TicketUseCase
	Privilege privilege.PrivilegeUseCase
}

// Deps are the optional collaborators. Leave Cache and Producer nil to
// disable flight caching and ticket events.
type Deps struct {
	Cache    flights.FlightCache
	Producer tickets.Producer
	Logger   *zap.Logger
}

// NewServices builds the use cases over the backends named by services.
func NewServices(services *locator.Locator, cfg *config.Config, deps Deps) Services {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	flightOpts := []flights.FlightServiceOption{flights.WithLogger(logger)}
	if deps.Cache != nil {
		flightOpts = append(flightOpts, flights.WithCache(deps.Cache))
	}
	flightService := flights.NewFlightService(repository.NewFlightRepository(services), flightOpts...)

	ticketOpts := []tickets.TicketServiceOption{tickets.WithLogger(logger)}
	if deps.Producer != nil {
		ticketOpts = append(ticketOpts, tickets.WithEvents(deps.Producer, cfg.Kafka.TicketEventsTopic))
	}
	privilegeRepo := repository.NewPrivilegeRepository(services)
	ticketService := tickets.NewTicketService(
		repository.NewTicketRepository(services),
		privilegeRepo,
		tickets.NewEnricher(flightService, 0),
		ticketOpts...,
	)

	return Services{
		Flights:   flightService,
		Tickets:   ticketService,
		Privilege: privilege.NewPrivilegeService(privilegeRepo, ticketService),
	}
}

// NewRouter registers every gateway endpoint under the configured root path.
func NewRouter(cfg *config.Config, svc Services, logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), api.RequestLogger(logger))

	root := engine.Group("/" + cfg.HTTP.RootPath)
	api.RegisterHealth(root)
	api.NewFlightHandler(svc.Flights, cfg.Paging).Register(root)
	api.NewTicketHandler(svc.Tickets).Register(root)
	api.NewPrivilegeHandler(svc.Privilege).Register(root)

	if cfg.HTTP.SwaggerDir != "" {
		specPath := root.BasePath() + "/swagger/" + swaggerFile
		root.StaticFile("/swagger/"+swaggerFile, filepath.Join(cfg.HTTP.SwaggerDir, swaggerFile))
		root.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(specPath))))
	}

	return engine
}

// Run serves the gateway and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg, svc, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("gateway started", zap.String("address", cfg.HTTP.Address), zap.String("root", cfg.HTTP.RootPath))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http %s: %w", cfg.HTTP.Address, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout())
		defer cancel()
		logger.Info("shutting down gateway")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
