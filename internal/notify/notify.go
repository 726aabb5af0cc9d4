// Package notify posts simulation summaries to chat platforms so an
// operations channel hears about new runs without watching the console.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/greencart/console/internal/fleet"
)

// Severity color hints shared by the platform senders.
const (
	ColorSuccess = "#36a64f"
	ColorWarning = "#daa038"
)

// Event is one notification, formatted per platform by the sender.
type Event struct {
	Title  string
	Body   string
	Color  string // sidebar/embed color hint
	Fields []Field
}

// Field is a key-value pair displayed alongside the event.
type Field struct {
	Name  string
	Value string
	Short bool // hint: render side-by-side with another field
}

// Notifier is a platform-specific sender.
type Notifier interface {
	// Post delivers the event to the platform.
	Post(ctx context.Context, ev Event) error

	// Close releases the platform connection.
	Close() error
}

// Multi fans an event out to every configured platform. Post returns the
// joined errors but attempts all targets.
type Multi []Notifier

// Post implements Notifier.
func (m Multi) Post(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Post(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Notifier.
func (m Multi) Close() error {
	var errs []error
	for _, n := range m {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SimulationEvent formats one simulation result as a notification.
func SimulationEvent(result fleet.SimulationResult) Event {
	late := result.KPIs.TotalDeliveries - result.KPIs.OnTimeDeliveries
	color := ColorSuccess
	if late > result.KPIs.OnTimeDeliveries {
		color = ColorWarning
	}
	return Event{
		Title: "Simulation complete",
		Body: fmt.Sprintf("Run %s finished: %d/%d deliveries on time.",
			result.ID, result.KPIs.OnTimeDeliveries, result.KPIs.TotalDeliveries),
		Color: color,
		Fields: []Field{
			{Name: "Total Profit", Value: fmt.Sprintf("₹%.2f", result.KPIs.TotalProfit), Short: true},
			{Name: "Efficiency", Value: fmt.Sprintf("%.2f%%", result.KPIs.Efficiency), Short: true},
			{Name: "On Time", Value: fmt.Sprintf("%d", result.KPIs.OnTimeDeliveries), Short: true},
			{Name: "Late", Value: fmt.Sprintf("%d", late), Short: true},
		},
	}
}
