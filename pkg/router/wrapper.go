package router

import (
	"errors"
	"net/http"

	"github.com/findme-app/backend/pkg/errorx"
	"github.com/findme-app/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = ginCtx.ShouldBindQuery(&req)
		case http.MethodPost:
			err = ginCtx.ShouldBindJSON(&req)
		default:
			err = errors.New("unsupported method")
		}
		if err != nil {
			writeError(ginCtx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			return
		}

		ctx := router.baseCtx
		for _, middleware := range router.befores {
			ctx, err = middleware(ctx, ginCtx.Request)
			if err != nil {
				writeError(ginCtx, err)
				return
			}
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Request %s failed: %v", ginCtx.FullPath(), err)
			writeError(ginCtx, err)
			return
		}

		ginCtx.JSON(http.StatusOK, newResponse(resp))
	}
}
