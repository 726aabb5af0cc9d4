package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/greencart/console/internal/notify"
)

type mockSession struct {
	channelID string
	embed     *discordgo.MessageEmbed
	err       error
	closed    bool
}

func (m *mockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.channelID = channelID
	m.embed = embed
	return &discordgo.Message{}, m.err
}

func (m *mockSession) Close() error {
	m.closed = true
	return nil
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Opts{ChannelID: "123"}); err == nil {
		t.Error("expected error for missing token")
	}
	if _, err := New(Opts{BotToken: "tok"}); err == nil {
		t.Error("expected error for missing channel id")
	}
	if _, err := New(Opts{BotToken: "tok", ChannelID: "123"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPost(t *testing.T) {
	mock := &mockSession{}
	n, err := New(Opts{ChannelID: "123", Session: mock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := notify.Event{
		Title: "Simulation complete",
		Body:  "Run s1 finished.",
		Color: notify.ColorSuccess,
		Fields: []notify.Field{
			{Name: "On Time", Value: "8", Short: true},
		},
	}
	if err := n.Post(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.channelID != "123" {
		t.Errorf("channel = %q", mock.channelID)
	}
	if mock.embed == nil || mock.embed.Title != "Simulation complete" {
		t.Fatalf("embed = %+v", mock.embed)
	}
	if mock.embed.Color != 0x36a64f {
		t.Errorf("color = %#x", mock.embed.Color)
	}
	if len(mock.embed.Fields) != 1 || !mock.embed.Fields[0].Inline {
		t.Errorf("fields = %+v", mock.embed.Fields)
	}
}

func TestPost_Error(t *testing.T) {
	mock := &mockSession{err: errors.New("missing access")}
	n, err := New(Opts{ChannelID: "123", Session: mock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.Post(context.Background(), notify.Event{Title: "t"}); err == nil {
		t.Error("expected error")
	}
}

func TestClose(t *testing.T) {
	mock := &mockSession{}
	n, err := New(Opts{ChannelID: "123", Session: mock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mock.closed {
		t.Error("Close must reach the session")
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor("#36a64f"); got != 0x36a64f {
		t.Errorf("hexColor = %#x", got)
	}
	if got := hexColor("not-a-color"); got != 0 {
		t.Errorf("hexColor fallback = %d, want 0", got)
	}
}
