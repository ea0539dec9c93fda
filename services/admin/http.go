package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/webbongda/matchday/pkg/apperr"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	PUT(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
}

// Admin is the user directory administration the HTTP layer exposes.
type Admin interface {
	ListUsers(ctx context.Context) ([]UserSummary, error)
	SetActive(ctx context.Context, id string, active bool) error
	DeleteUser(ctx context.Context, id string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Admin

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/users", h.listHandler)
	r.PUT("/users/:user_id/lock", h.lockHandler)
	r.DELETE("/users/:user_id", h.deleteHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) listHandler(c *gin.Context) {
	users, err := h.Service.ListUsers(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *httpHandler) lockHandler(c *gin.Context) {
	active, err := activeParam(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if err := h.Service.SetActive(c, c.Param("user_id"), active); err != nil {
		apperr.Respond(c, err)
		return
	}
	if active {
		c.JSON(http.StatusOK, gin.H{"message": "account activated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account locked"})
}

func activeParam(c *gin.Context) (bool, error) {
	if raw, ok := c.GetQuery("active"); ok {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return false, apperr.New(apperr.InvalidInput, "active must be true or false")
		}
		return active, nil
	}

	var req ActivationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		return false, apperr.New(apperr.InvalidInput, "active is required")
	}
	return *req.Active, nil
}

func (h *httpHandler) deleteHandler(c *gin.Context) {
	if err := h.Service.DeleteUser(c, c.Param("user_id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
