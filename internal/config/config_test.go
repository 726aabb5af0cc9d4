package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullConfig = `
api:
  base_url: https://fleet.greencart.io/api
  timeout_seconds: 30
state_path: /tmp/gcart-test/state.db
dashboard:
  port: 9000
  refresh_cron: "*/5 * * * *"
  preview_limit: 25
notify:
  slack:
    bot_token: xoxb-test
    channel: "#logistics"
  discord:
    bot_token: discord-test
    channel_id: "123456"
`

const minimalConfig = `
api:
  base_url: http://localhost:5001/api
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://fleet.greencart.io/api" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("timeout_seconds = %d", cfg.API.TimeoutSeconds)
	}
	if cfg.StatePath != "/tmp/gcart-test/state.db" {
		t.Errorf("state_path = %q", cfg.StatePath)
	}
	if cfg.Dashboard.Port != 9000 || cfg.Dashboard.RefreshCron != "*/5 * * * *" || cfg.Dashboard.PreviewLimit != 25 {
		t.Errorf("dashboard = %+v", cfg.Dashboard)
	}
	if cfg.Notify.Slack.Channel != "#logistics" {
		t.Errorf("slack channel = %q", cfg.Notify.Slack.Channel)
	}
	if cfg.Notify.Discord.ChannelID != "123456" {
		t.Errorf("discord channel_id = %q", cfg.Notify.Discord.ChannelID)
	}
}

func TestParse_MinimalConfigAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.TimeoutSeconds != 15 {
		t.Errorf("timeout_seconds = %d, want default 15", cfg.API.TimeoutSeconds)
	}
	if !strings.HasSuffix(cfg.StatePath, filepath.Join(".gcart", "state.db")) {
		t.Errorf("state_path = %q, want the home default", cfg.StatePath)
	}
	if cfg.Dashboard.Port != 8090 {
		t.Errorf("port = %d, want default 8090", cfg.Dashboard.Port)
	}
	if cfg.Dashboard.RefreshCron != "*/2 * * * *" {
		t.Errorf("refresh_cron = %q", cfg.Dashboard.RefreshCron)
	}
	if cfg.Dashboard.PreviewLimit != 10 {
		t.Errorf("preview_limit = %d", cfg.Dashboard.PreviewLimit)
	}
	if cfg.Notify.Slack.BotToken != "" || cfg.Notify.Discord.BotToken != "" {
		t.Error("notifications should be disabled by default")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5001/api" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gcart.yaml")
	if err := os.WriteFile(path, []byte(fullConfig), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dashboard.Port != 9000 {
		t.Errorf("port = %d", cfg.Dashboard.Port)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "malformed yaml",
			yaml: "api: [",
			want: "config: parse",
		},
		{
			name: "bad base url",
			yaml: "api:\n  base_url: ftp://example.com\n",
			want: "must be an http(s) URL",
		},
		{
			name: "negative timeout",
			yaml: "api:\n  timeout_seconds: -1\n",
			want: "timeout_seconds",
		},
		{
			name: "port out of range",
			yaml: "dashboard:\n  port: 99999\n",
			want: "out of range",
		},
		{
			name: "slack token without channel",
			yaml: "notify:\n  slack:\n    bot_token: xoxb-test\n",
			want: "notify.slack.channel",
		},
		{
			name: "discord token without channel",
			yaml: "notify:\n  discord:\n    bot_token: d-test\n",
			want: "notify.discord.channel_id",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
