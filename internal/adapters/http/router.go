package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/meetnexa/meetnexa/internal/adapters/signal"
	"github.com/meetnexa/meetnexa/internal/app"
	"github.com/meetnexa/meetnexa/internal/config"
)

// ClientTokenMiddleware tags each browser with a stable token, kept in the
// cookie session. It only correlates log lines across reconnects; identity
// on a room is always the per-connection id.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		token, _ := s.Get("ct").(string)
		if token == "" {
			token = uuid.NewString()
			s.Set("ct", token)
			_ = s.Save()
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, coord *app.Coordinator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("MeetNexaSession", store))
	r.Use(ClientTokenMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "OK",
			"rooms":        coord.RoomCount(),
			"participants": coord.ConnectionCount(),
		})
	})

	api := r.Group("/api")

	api.GET("/room/:code", func(c *gin.Context) {
		c.JSON(http.StatusOK, coord.RoomStatus(c.Param("code")))
	})

	ctrl := signal.NewController(coord, cfg)
	api.GET("/ws", func(c *gin.Context) {
		ctrl.Handle(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
