package live

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/webbongda/matchday/pkg/logging"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The hub viewers join.
	Hub *Hub

	// The router instance to configure the HTTP routes.
	Router Router

	// Origins allowed to open a connection. "*" allows all.
	AllowedOrigins []string
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{HTTPOptions: opts}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      h.checkOrigin,
	}
	opts.Router.GET("/ws/live-scores", h.liveScoresHandler)
}

type httpHandler struct {
	HTTPOptions
	upgrader websocket.Upgrader
}

// checkOrigin accepts requests without an Origin header, which only
// non-browser clients send.
func (h *httpHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", origin).Msg("live connection rejected from unknown origin")
	return false
}

func (h *httpHandler) liveScoresHandler(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logging.Warn().Err(err).Msg("live connection upgrade failed")
		return
	}
	NewClient(h.Hub, conn).Start()
}
