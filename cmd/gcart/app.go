package main

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/greencart/console/internal/api"
	"github.com/greencart/console/internal/config"
	"github.com/greencart/console/internal/db"
	"github.com/greencart/console/internal/notify"
	"github.com/greencart/console/internal/notify/discord"
	"github.com/greencart/console/internal/notify/slack"
	"github.com/greencart/console/internal/session"
)

// app bundles the wired components every command needs: config, the state
// database, the API client, and the restored session.
type app struct {
	cfg     *config.Config
	gdb     *gorm.DB
	client  *api.Client
	session *session.Manager
}

// openApp loads config, opens the state file, and restores the persisted
// session (verifying the cached credential against the service; a failed
// verification leaves the session anonymous, it never fails startup).
func openApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	gdb, err := db.Open(cfg.StatePath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return nil, err
	}

	client, err := api.New(api.Opts{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	mgr := session.New(gdb, client)
	mgr.Restore(ctx)

	return &app{cfg: cfg, gdb: gdb, client: client, session: mgr}, nil
}

// requireAuth errors when no authenticated session is active. The CLI-side
// route guard: protected commands call it before touching the service.
func (a *app) requireAuth() error {
	if !a.session.Authenticated() {
		return fmt.Errorf("not logged in: run 'gcart login' first")
	}
	return nil
}

// notifier builds the configured notification fan-out, or nil when no
// platform is configured.
func (a *app) notifier() (notify.Notifier, error) {
	var targets notify.Multi
	if a.cfg.Notify.Slack.BotToken != "" {
		n, err := slack.New(slack.Opts{
			BotToken: a.cfg.Notify.Slack.BotToken,
			Channel:  a.cfg.Notify.Slack.Channel,
		})
		if err != nil {
			return nil, err
		}
		targets = append(targets, n)
	}
	if a.cfg.Notify.Discord.BotToken != "" {
		n, err := discord.New(discord.Opts{
			BotToken:  a.cfg.Notify.Discord.BotToken,
			ChannelID: a.cfg.Notify.Discord.ChannelID,
		})
		if err != nil {
			return nil, err
		}
		targets = append(targets, n)
	}
	if len(targets) == 0 {
		return nil, nil
	}
	return targets, nil
}
