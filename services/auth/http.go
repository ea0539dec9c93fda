package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webbongda/matchday/pkg/apperr"
	authz "github.com/webbongda/matchday/pkg/auth"
	"github.com/webbongda/matchday/repos/store"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
}

type Auth interface {
	Register(ctx context.Context, req RegisterRequest) (*store.User, error)
	Login(ctx context.Context, msv, password string) (string, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Auth

	// Routes open to everyone.
	Public Router

	// Routes that require a signed in user.
	Members Router

	// Optional per-route limiters.
	RegisterLimit gin.HandlerFunc
	LoginLimit    gin.HandlerFunc
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}
	opts.Public.POST("/register", withLimit(opts.RegisterLimit, h.registerHandler)...)
	opts.Public.POST("/login", withLimit(opts.LoginLimit, h.loginHandler)...)
	opts.Members.GET("/me", h.meHandler)
}

func withLimit(limit, handler gin.HandlerFunc) []gin.HandlerFunc {
	if limit == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{limit, handler}
}

type httpHandler struct {
	HTTPOptions
}

func toUserResponse(u *store.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		MSV:      u.MSV,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

func (h *httpHandler) registerHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, err.Error()))
		return
	}

	u, err := h.Service.Register(c, req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *httpHandler) loginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, err.Error()))
		return
	}

	token, err := h.Service.Login(c, req.MSV, req.Password)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *httpHandler) meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(authz.CurrentUser(c)))
}
