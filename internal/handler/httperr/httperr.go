package httperr

import (
	"net/http"

	"servicebook/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

const internalMessage = "Internal server error"

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithKind maps a usecase error to its status. Internal errors keep
// their cause in the gin error list but show a generic message.
func AbortWithKind(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	msg := errs.Message(err)
	if kind == errs.KindInternal {
		msg = internalMessage
	}
	AbortWithError(c, StatusOf(kind), err, msg, nil)
}

func StatusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindAuthentication:
		return http.StatusUnauthorized
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindPermission:
		return http.StatusForbidden
	case errs.KindPrecondition:
		return http.StatusConflict
	case errs.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
