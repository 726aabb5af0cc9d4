package slack

import (
	"context"
	"errors"
	"strings"
	"testing"

	slackapi "github.com/slack-go/slack"

	"github.com/greencart/console/internal/notify"
)

type mockClient struct {
	channel string
	options []slackapi.MsgOption
	err     error
}

func (m *mockClient) PostMessageContext(_ context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	m.channel = channelID
	m.options = options
	return "C123", "164.7", m.err
}

func sampleEvent() notify.Event {
	return notify.Event{
		Title: "Simulation complete",
		Body:  "Run s1 finished: 8/10 deliveries on time.",
		Color: notify.ColorSuccess,
		Fields: []notify.Field{
			{Name: "Total Profit", Value: "₹1000.00", Short: true},
		},
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Opts{Channel: "#ops"}); err == nil {
		t.Error("expected error for missing token")
	}
	if _, err := New(Opts{BotToken: "xoxb-test"}); err == nil {
		t.Error("expected error for missing channel")
	}
	if _, err := New(Opts{BotToken: "xoxb-test", Channel: "#ops"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPost(t *testing.T) {
	mock := &mockClient{}
	n, err := New(Opts{Channel: "#ops", Client: mock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := n.Post(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.channel != "#ops" {
		t.Errorf("channel = %q", mock.channel)
	}
	if len(mock.options) != 1 {
		t.Errorf("options = %d, want one attachment option", len(mock.options))
	}
}

func TestPost_Error(t *testing.T) {
	mock := &mockClient{err: errors.New("channel_not_found")}
	n, err := New(Opts{Channel: "#ops", Client: mock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = n.Post(context.Background(), sampleEvent())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "#ops") {
		t.Errorf("error %q should name the channel", err)
	}
}

func TestClose(t *testing.T) {
	n, err := New(Opts{Channel: "#ops", Client: &mockClient{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
