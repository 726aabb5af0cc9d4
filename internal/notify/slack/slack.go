// Package slack implements the notify.Notifier for Slack.
package slack

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"

	"github.com/greencart/console/internal/notify"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Notifier posts events to one Slack channel.
type Notifier struct {
	client  slackClient
	channel string
}

// Opts holds parameters for creating a Slack Notifier.
type Opts struct {
	BotToken string // xoxb-... Slack bot token
	Channel  string // channel ID to post to
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// New creates a Slack Notifier.
func New(opts Opts) (*Notifier, error) {
	if opts.Client == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("slack: bot token is required")
	}
	if opts.Channel == "" {
		return nil, fmt.Errorf("slack: channel is required")
	}
	n := &Notifier{channel: opts.Channel}
	if opts.Client != nil {
		n.client = opts.Client
	} else {
		n.client = slackapi.New(opts.BotToken)
	}
	return n, nil
}

// Post implements notify.Notifier.
func (n *Notifier) Post(ctx context.Context, ev notify.Event) error {
	fields := make([]slackapi.AttachmentField, len(ev.Fields))
	for i, f := range ev.Fields {
		fields[i] = slackapi.AttachmentField{Title: f.Name, Value: f.Value, Short: f.Short}
	}
	attachment := slackapi.Attachment{
		Title:  ev.Title,
		Text:   ev.Body,
		Color:  ev.Color,
		Fields: fields,
	}
	if _, _, err := n.client.PostMessageContext(ctx, n.channel,
		slackapi.MsgOptionAttachments(attachment)); err != nil {
		return fmt.Errorf("slack: post to %s: %w", n.channel, err)
	}
	return nil
}

// Close implements notify.Notifier. The Slack web API is connectionless.
func (n *Notifier) Close() error { return nil }
