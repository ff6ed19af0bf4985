package router

import (
	"context"
	"net/http"

	"github.com/findme-app/backend/config"
	"github.com/gin-gonic/gin"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context for
// everything downstream, returning an error aborts the request.
type MiddlewareFunc func(ctx context.Context, r *http.Request) (context.Context, error)

type Router struct {
	Inner gin.IRouter

	cfg     config.Configs
	baseCtx context.Context
	befores []MiddlewareFunc
}

// New builds a Router on a fresh gin engine. The given context is the base
// of every request context, it should carry the logger and configs.
func New(ctx context.Context, cfg config.Configs) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{
		Inner:   gin.New(),
		cfg:     cfg,
		baseCtx: ctx,
	}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

// Group returns a sub router with its own middleware chain, seeded with the
// parent's.
func (r *Router) Group(pattern string) *Router {
	befores := make([]MiddlewareFunc, len(r.befores))
	copy(befores, r.befores)

	return &Router{
		Inner:   r.Inner.Group(pattern),
		cfg:     r.cfg,
		baseCtx: r.baseCtx,
		befores: befores,
	}
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}
