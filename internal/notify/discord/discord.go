// Package discord implements the notify.Notifier for Discord.
package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/greencart/console/internal/notify"
)

// session abstracts the discordgo.Session methods we use, enabling test mocks.
type session interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Close() error
}

// Notifier posts events to one Discord channel.
type Notifier struct {
	session   session
	channelID string
}

// Opts holds parameters for creating a Discord Notifier.
type Opts struct {
	BotToken  string
	ChannelID string
	// For testing: inject a mock session instead of the real gateway.
	Session session
}

// New creates a Discord Notifier.
func New(opts Opts) (*Notifier, error) {
	if opts.Session == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("discord: bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("discord: channel id is required")
	}
	n := &Notifier{channelID: opts.ChannelID}
	if opts.Session != nil {
		n.session = opts.Session
		return n, nil
	}
	s, err := discordgo.New("Bot " + opts.BotToken)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	n.session = s
	return n, nil
}

// Post implements notify.Notifier.
func (n *Notifier) Post(ctx context.Context, ev notify.Event) error {
	fields := make([]*discordgo.MessageEmbedField, len(ev.Fields))
	for i, f := range ev.Fields {
		fields[i] = &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Short}
	}
	embed := &discordgo.MessageEmbed{
		Title:       ev.Title,
		Description: ev.Body,
		Color:       hexColor(ev.Color),
		Fields:      fields,
	}
	if _, err := n.session.ChannelMessageSendEmbed(n.channelID, embed,
		discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: post to %s: %w", n.channelID, err)
	}
	return nil
}

// Close implements notify.Notifier.
func (n *Notifier) Close() error { return n.session.Close() }

// hexColor converts a "#rrggbb" hint to the integer Discord expects.
func hexColor(s string) int {
	v, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}
