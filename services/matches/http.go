package matches

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/repos/store"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	PUT(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
}

// Matches is what the HTTP layer needs from the service.
type Matches interface {
	Create(ctx context.Context, req CreateMatchRequest) (*store.Match, error)
	Import(ctx context.Context, reqs []CreateMatchRequest) ([]*store.Match, error)
	List(ctx context.Context) ([]*store.Match, error)
	Detail(ctx context.Context, id string) (*MatchDetail, error)
	UpdateInfo(ctx context.Context, id string, req UpdateInfoRequest) (bool, error)
	Lock(ctx context.Context, id string) error
	UpdateScore(ctx context.Context, id string, scoreA, scoreB int) (*store.Match, error)
	AddEvent(ctx context.Context, id string, req EventRequest) error
	Delete(ctx context.Context, id string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Matches

	// Routes open to everyone.
	Public Router

	// Routes restricted to administrators.
	Admin Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}

	opts.Public.GET("/matches", h.listHandler)
	opts.Public.GET("/matches/:match_id", h.detailHandler)

	opts.Admin.POST("/matches", h.createHandler)
	opts.Admin.PUT("/matches/:match_id/info", h.updateInfoHandler)
	opts.Admin.PUT("/matches/:match_id/lock", h.lockHandler)
	opts.Admin.PUT("/matches/:match_id/score", h.scoreHandler)
	opts.Admin.POST("/matches/:match_id/events", h.eventHandler)
	opts.Admin.DELETE("/matches/:match_id", h.deleteHandler)
	opts.Admin.POST("/fixtures/import", h.importHandler)
}

type httpHandler struct {
	HTTPOptions
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, err.Error()))
		return false
	}
	return true
}

func (h *httpHandler) listHandler(c *gin.Context) {
	ms, err := h.Service.List(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toMatchResponses(ms))
}

func (h *httpHandler) detailHandler(c *gin.Context) {
	detail, err := h.Service.Detail(c, c.Param("match_id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toDetailResponse(detail))
}

func (h *httpHandler) createHandler(c *gin.Context) {
	var req CreateMatchRequest
	if !bind(c, &req) {
		return
	}

	m, err := h.Service.Create(c, req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toMatchResponse(m))
}

func (h *httpHandler) importHandler(c *gin.Context) {
	var req ImportRequest
	if !bind(c, &req) {
		return
	}

	ms, err := h.Service.Import(c, req.Matches)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"imported": len(ms),
		"matches":  toMatchResponses(ms),
	})
}

func (h *httpHandler) updateInfoHandler(c *gin.Context) {
	var req UpdateInfoRequest
	if !bind(c, &req) {
		return
	}

	changed, err := h.Service.UpdateInfo(c, c.Param("match_id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if !changed {
		c.JSON(http.StatusOK, gin.H{"message": "nothing to change"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "match updated"})
}

func (h *httpHandler) lockHandler(c *gin.Context) {
	if err := h.Service.Lock(c, c.Param("match_id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "predictions for this match are now locked"})
}

func (h *httpHandler) scoreHandler(c *gin.Context) {
	var req ScoreRequest
	if !bind(c, &req) {
		return
	}

	if _, err := h.Service.UpdateScore(c, c.Param("match_id"), *req.ScoreA, *req.ScoreB); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "score updated and sent to live viewers"})
}

func (h *httpHandler) eventHandler(c *gin.Context) {
	var req EventRequest
	if !bind(c, &req) {
		return
	}

	if err := h.Service.AddEvent(c, c.Param("match_id"), req); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event added"})
}

func (h *httpHandler) deleteHandler(c *gin.Context) {
	if err := h.Service.Delete(c, c.Param("match_id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "match deleted"})
}
