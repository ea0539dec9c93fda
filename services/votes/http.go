package votes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/pkg/auth"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
}

type Votes interface {
	Submit(ctx context.Context, msv string, teams []string) error
	Results(ctx context.Context) (*Results, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Votes

	// Routes open to everyone.
	Public Router

	// Routes that require a signed in user.
	Members Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}
	opts.Members.POST("/vote-teams", h.voteHandler)
	opts.Public.GET("/vote-teams/results", h.resultsHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) voteHandler(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, err.Error()))
		return
	}

	if err := h.Service.Submit(c, auth.CurrentUser(c).MSV, req.Teams); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "your favorite teams were saved"})
}

func (h *httpHandler) resultsHandler(c *gin.Context) {
	results, err := h.Service.Results(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
