package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/greenroom/internal/app"
	"github.com/dkeye/greenroom/internal/config"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStatusFeed streams aggregator snapshots over a websocket: one
// on connect, then one per push period until the client or the server
// goes away. Pure edge plumbing; it never touches a room directly.
func handleStatusFeed(ctx context.Context, cfg *config.Config, agg *app.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.statusfeed").Msg("ws upgrade")
			return
		}
		defer ws.Close()

		connCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		// Single writer below; the reader only drains control frames
		// and surfaces the peer closing.
		go func() {
			for {
				if _, _, err := ws.NextReader(); err != nil {
					cancel()
					return
				}
			}
		}()

		log.Info().Str("module", "adapters.statusfeed").Str("token", c.GetString("request_token")).Msg("status feed opened")

		if err := ws.WriteJSON(agg.Snapshot()); err != nil {
			return
		}
		ticker := time.NewTicker(cfg.PushPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-connCtx.Done():
				log.Info().Str("module", "adapters.statusfeed").Msg("status feed closed")
				return
			case <-ticker.C:
				if err := ws.WriteJSON(agg.Snapshot()); err != nil {
					log.Info().Err(err).Str("module", "adapters.statusfeed").Msg("status feed write failed")
					return
				}
			}
		}
	}
}
