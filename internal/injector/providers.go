package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/zeusui/internal/config"
	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/observability/log"
	"github.com/zeusync/zeusui/internal/core/signal"
	"github.com/zeusync/zeusui/internal/core/style"
	"github.com/zeusync/zeusui/internal/core/ui"
	"github.com/zeusync/zeusui/internal/host/htmlhost"
	"github.com/zeusync/zeusui/internal/host/wsmirror"
)

// Host is the window the App renders into. Mirror is nil unless the
// websocket mirror is enabled.
type Host struct {
	Window dom.Window
	HTML   *htmlhost.Document
	Mirror *wsmirror.Document
}

// Runtime is everything cmd binaries need to drive a UI.
type Runtime struct {
	Config config.Config
	Logger *log.Logger
	App    *ui.App
	Host   Host
	Server *wsmirror.Server
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideHost,
	ProvideScheduler,
	ProvideRegistry,
	ProvideApp,
	ProvideMirrorServer,
)

func ProvideLogger(cfg config.Config) *log.Logger {
	return log.NewWithOptions(cfg.LoggerOptions())
}

func ProvideHost(cfg config.Config, logger log.Log) Host {
	html := htmlhost.NewWindow()
	if !cfg.Mirror.Enabled {
		return Host{Window: html, HTML: html.HTMLDocument()}
	}
	mirror := wsmirror.NewWindow(html, wsmirror.NewHub(logger, cfg.Mirror.WriteTimeout))
	return Host{Window: mirror, HTML: html.HTMLDocument(), Mirror: mirror.MirrorDocument()}
}

func ProvideScheduler(logger log.Log) *signal.Scheduler {
	return signal.NewScheduler(logger)
}

func ProvideRegistry(cfg config.Config, logger log.Log, host Host) (*style.Registry, error) {
	return style.NewRegistry(logger, cfg.Style.DefaultWindow, host.Window)
}

func ProvideApp(logger log.Log, host Host, styles *style.Registry, sched *signal.Scheduler) *ui.App {
	return ui.NewApp(logger, host.Window, styles, sched)
}

// ProvideMirrorServer returns nil when the mirror is disabled.
func ProvideMirrorServer(cfg config.Config, host Host, sched *signal.Scheduler, logger log.Log) *wsmirror.Server {
	if host.Mirror == nil {
		return nil
	}
	return wsmirror.NewServer(cfg.Mirror, host.Mirror, sched, host.HTML, logger)
}
