// Package dashboard serves the local web console: login, KPI overview with
// charts, entity lists, and a live event stream.
package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greencart/console/internal/api"
	"github.com/greencart/console/internal/notify"
	"github.com/greencart/console/internal/session"
)

// StartOpts holds configuration for the dashboard server.
type StartOpts struct {
	Session *session.Manager
	Client  *api.Client
	DB      *gorm.DB
	Port    int
	// RefreshCron schedules background polling of the latest simulation.
	// Empty disables the refresher.
	RefreshCron string
	// PreviewLimit caps per-order rows on the overview page.
	PreviewLimit int
	// Notifier, when non-nil, hears about simulations discovered by the
	// refresher.
	Notifier notify.Notifier
	Out      io.Writer
}

// Start launches the dashboard HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	router, err := newRouter(opts)
	if err != nil {
		return err
	}
	if opts.Port <= 0 {
		opts.Port = 8090
	}

	if opts.RefreshCron != "" {
		stop, err := startRefresher(ctx, refresherOpts{
			Client:   opts.Client,
			DB:       opts.DB,
			Cron:     opts.RefreshCron,
			Notifier: opts.Notifier,
		})
		if err != nil {
			return err
		}
		defer stop()
	}

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Console running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// newRouter builds the gin engine with templates and routes, shared by Start
// and the tests.
func newRouter(opts StartOpts) (*gin.Engine, error) {
	if opts.Session == nil {
		return nil, fmt.Errorf("dashboard: session is required")
	}
	if opts.Client == nil {
		return nil, fmt.Errorf("dashboard: client is required")
	}
	if opts.DB == nil {
		return nil, fmt.Errorf("dashboard: db is required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	registerRoutes(router, opts)
	return router, nil
}

// parseTemplates loads the embedded HTML templates.
func parseTemplates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}
