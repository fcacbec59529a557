package librarysystem

import (
	"log/slog"
	"time"

	"github.com/a-la-firme/librarysystem/client"
	"github.com/a-la-firme/librarysystem/controller"
	"github.com/a-la-firme/librarysystem/notify"
	"github.com/a-la-firme/librarysystem/pkg/config"
	"github.com/a-la-firme/librarysystem/pkg/logger"
	"github.com/a-la-firme/librarysystem/ui"
)

// Config holds the page controller settings, loaded from the environment.
type Config struct {
	APIBaseURL      string        `env:"LIBRARY_API_BASE_URL" envDefault:"/api"`
	RequestTimeout  time.Duration `env:"LIBRARY_REQUEST_TIMEOUT" envDefault:"30s"`
	AlertTTL        time.Duration `env:"LIBRARY_ALERT_TTL" envDefault:"5s"`
	TablePageLength int           `env:"LIBRARY_TABLE_PAGE_LENGTH" envDefault:"10"`
	LogLevel        slog.Level    `env:"LIBRARY_LOG_LEVEL" envDefault:"info"`
	LogFormat       logger.Format `env:"LIBRARY_LOG_FORMAT" envDefault:"json"`
}

// LoadConfig loads Config from environment variables (and .env if present).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// App bundles the constructed components of one page instance.
type App struct {
	Client     *client.Client
	Alerts     *notify.Emitter
	Controller *controller.Controller
}

// Option configures the App construction.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger shared by all components.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// New builds the API client, the alert emitter and the controller for a page.
// The document adapter and the alert presenter are the page's contribution;
// everything else is assembled from cfg. Without WithLogger a logger is built
// from cfg's level and format.
func New(cfg Config, doc ui.Document, presenter notify.Presenter, opts ...Option) *App {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		logOpts := []logger.Option{logger.WithLevel(cfg.LogLevel)}
		if cfg.LogFormat != "" {
			logOpts = append(logOpts, logger.WithFormat(cfg.LogFormat))
		}
		o.log = logger.New(logOpts...)
	}

	api := client.New(cfg.APIBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(o.log),
	)

	alerts := notify.New(presenter,
		notify.WithTTL(cfg.AlertTTL),
		notify.WithLogger(o.log),
	)

	ctrl := controller.New(api, doc, alerts,
		controller.WithLogger(o.log),
		controller.WithTableOptions(ui.TableOptions{
			PageLength:    cfg.TablePageLength,
			Responsive:    true,
			OrderColumn:   0,
			StaticColumns: []int{5, 6, 7},
		}),
	)

	return &App{
		Client:     api,
		Alerts:     alerts,
		Controller: ctrl,
	}
}

// Close releases the App's resources, stopping pending alert timers.
func (a *App) Close() error {
	return a.Alerts.Close()
}
