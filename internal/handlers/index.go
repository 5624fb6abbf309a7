package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/aaronzipp/undercover/internal/config"
	"github.com/aaronzipp/undercover/internal/hub"
	"github.com/aaronzipp/undercover/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Context holds shared application dependencies
type Context struct {
	Rooms    *store.RoomStore
	Hub      *hub.Hub
	Config   *config.Config
	Upgrader websocket.Upgrader
}

// NewContext wires the handlers to the registry and hub
func NewContext(rooms *store.RoomStore, h *hub.Hub, cfg *config.Config) *Context {
	ctx := &Context{
		Rooms:  rooms,
		Hub:    h,
		Config: cfg,
	}
	ctx.Upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     ctx.checkOrigin,
	}
	return ctx
}

// Router builds the HTTP routes
func (ctx *Context) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(ctx.corsConfig()))

	r.GET("/", ctx.HandleIndex)
	r.GET("/health", ctx.HandleHealth)
	r.GET("/rooms/:code", ctx.HandleRoomState)
	r.GET("/rooms/:code/qr.png", ctx.HandleRoomQR)
	r.GET("/ws", ctx.HandleWebSocket)
	return r
}

// HandleIndex answers the landing route
func (ctx *Context) HandleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Undercover game server is running",
	})
}

// HandleHealth is the liveness probe
func (ctx *Context) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "rooms": ctx.Rooms.Len()})
}

// Shutdown deletes every room and closes every client. http.Server does not
// track hijacked connections, so this runs from its shutdown hook.
func (ctx *Context) Shutdown() {
	rooms := ctx.Rooms.DeleteAll()
	clients := ctx.Hub.CloseAll()
	log.Info().Int("rooms", rooms).Int("clients", clients).Msg("closed rooms and connections")
}

func (ctx *Context) allowAllOrigins() bool {
	origins := ctx.Config.Server.AllowedOrigins
	return len(origins) == 0 || slices.Contains(origins, "*")
}

func (ctx *Context) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if ctx.allowAllOrigins() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = ctx.Config.Server.AllowedOrigins
		cfg.AllowCredentials = true
	}
	return cfg
}

// checkOrigin applies the CORS origin list to websocket upgrades.
// Requests without an Origin header come from non-browser clients.
func (ctx *Context) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || ctx.allowAllOrigins() {
		return true
	}
	return slices.Contains(ctx.Config.Server.AllowedOrigins, origin)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
