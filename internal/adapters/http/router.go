// Package http adapts the admission and aggregation services to gin.
package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/greenroom/internal/app"
	"github.com/dkeye/greenroom/internal/config"
)

// RequestTokenMiddleware tags every request with an opaque token so log
// lines from one request can be tied together.
func RequestTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("rt")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("rt", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("request_token", token)
		c.Next()
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type"},
	}
	if len(cfg.Origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.Origins
	}
	return cc
}

func SetupRouter(ctx context.Context, cfg *config.Config, adm *app.Admission, agg *app.Aggregator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(RequestTokenMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().Str("module", "adapters.http").Strs("origins", cfg.Origins).Msg("router setup")

	api := r.Group("/api")
	api.POST("/join", handleJoin(adm))
	api.GET("/status", handleStatus(agg))
	api.GET("/ws/status", handleStatusFeed(ctx, cfg, agg))

	return r
}
