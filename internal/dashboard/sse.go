package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greencart/console/internal/models"
)

// simulationEvent is the SSE payload announcing a newly cached run.
type simulationEvent struct {
	ID    string    `json:"id"`
	RunAt time.Time `json:"runAt"`
}

// handleSSE streams new-simulation events by polling the local cache, which
// the cron refresher keeps current.
func handleSSE(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		writeSSE(c.Writer, "connected", map[string]string{"type": "connected"})
		c.Writer.Flush()

		if gdb == nil {
			return
		}

		// Only announce runs cached after the stream opened.
		lastSeen := time.Now().UTC()

		ctx := c.Request.Context()
		ticker := time.NewTicker(5 * time.Second)
		heartbeat := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		defer heartbeat.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				writeSSE(c.Writer, "heartbeat", map[string]string{
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})
				c.Writer.Flush()
			case <-ticker.C:
				var recs []models.SimulationRecord
				gdb.Where("fetched_at > ?", lastSeen).
					Order("fetched_at ASC").
					Find(&recs)
				for _, rec := range recs {
					writeSSE(c.Writer, "simulation", simulationEvent{
						ID:    rec.ID,
						RunAt: rec.RunAt,
					})
					if rec.FetchedAt.After(lastSeen) {
						lastSeen = rec.FetchedAt
					}
				}
				if len(recs) > 0 {
					c.Writer.Flush()
				}
			}
		}
	}
}

// writeSSE writes one event in text/event-stream framing.
func writeSSE(w io.Writer, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
