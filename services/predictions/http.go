package predictions

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/pkg/auth"
	"github.com/webbongda/matchday/repos/store"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
}

// Predictions is what the HTTP layer needs from the service.
type Predictions interface {
	Submit(ctx context.Context, msv, matchID string, scoreA, scoreB int) (*store.Prediction, error)
	MatchStatistics(ctx context.Context, matchID string) (*MatchStatistics, error)
	UserPredictions(ctx context.Context, msv string) ([]*store.Prediction, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Predictions

	// Routes open to everyone.
	Public Router

	// Routes that require a signed in user.
	Members Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}
	opts.Public.GET("/matches/:match_id/stats", h.statsHandler)
	opts.Members.POST("/predict", h.submitHandler)
	opts.Members.GET("/predictions/me", h.mineHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) submitHandler(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, err.Error()))
		return
	}

	user := auth.CurrentUser(c)
	if _, err := h.Service.Submit(c, user.MSV, req.MatchID, *req.ScoreA, *req.ScoreB); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "prediction saved"})
}

func (h *httpHandler) statsHandler(c *gin.Context) {
	stats, err := h.Service.MatchStatistics(c, c.Param("match_id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *httpHandler) mineHandler(c *gin.Context) {
	preds, err := h.Service.UserPredictions(c, auth.CurrentUser(c).MSV)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	resp := make([]PredictionResponse, 0, len(preds))
	for _, p := range preds {
		resp = append(resp, PredictionResponse{
			MatchID:   p.MatchID,
			ScoreA:    p.ScoreA,
			ScoreB:    p.ScoreB,
			CreatedAt: p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
