package api

import (
	"errors"
	"io"
	"net/http"

	reqdto "servicebook/internal/handler/dto/request"
	resdto "servicebook/internal/handler/dto/response"
	"servicebook/internal/handler/httperr"
	"servicebook/internal/handler/middleware"
	"servicebook/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
}

func NewAuthHandler(authUseCase usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// @Summary Login info
// @Description Resolves the caller's role and profile. expectedRole, when customer or worker, must match.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.LoginInfoRequest false "Expected role"
// @Success 200 {object} resdto.LoginInfoResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/login-info [post]
func (h *AuthHandler) LoginInfo(c *gin.Context) {
	actor, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.LoginInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	info, err := h.authUseCase.LoginInfo(c.Request.Context(), actor, req.ExpectedRole)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLoginInfo(info))
}
