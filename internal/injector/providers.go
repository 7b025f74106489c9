package injector

import (
	"time"

	"github.com/google/wire"
	"github.com/zeusync/arena/internal/config"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/host"
	"github.com/zeusync/arena/internal/render/svg"
	"github.com/zeusync/arena/internal/server"
)

// App is the assembled arenaview process.
type App struct {
	Config  config.Config
	Logger  *log.Logger
	Events  bus.EventBus
	Surface *svg.Surface
	Host    *host.Host
	Viewer  *server.Server
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideEventBus,
	ProvideSurface,
	ProvideHost,
	ProvideViewer,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg config.Config) *log.Logger {
	return log.New(log.ParseLevel(cfg.LogLevel))
}

const slowDelivery = 50 * time.Millisecond

func ProvideEventBus(logger *log.Logger) bus.EventBus {
	events := bus.New()
	events.AddObserver(bus.NewLogObserver(logger, slowDelivery))
	return events
}

func ProvideSurface(cfg config.Config) *svg.Surface {
	return svg.NewSurface(cfg.View.Boundaries, cfg.Background)
}

func ProvideHost(cfg config.Config, surface *svg.Surface, events bus.EventBus, logger *log.Logger) *host.Host {
	return host.New(surface, cfg.View, events, logger)
}

func ProvideViewer(cfg config.Config, surface *svg.Surface, h *host.Host, events bus.EventBus, logger *log.Logger) *server.Server {
	return server.New(cfg.Server, surface, h, events, logger)
}
