package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"servicebook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
}

func NewPaymentHandler(cmds commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

// @Summary Payment gateway notification
// @Description Gateway server-to-server callback. Always answers 200 with an outcome code unless the store fails.
// @Tags payments
// @Accept x-www-form-urlencoded
// @Produce plain
// @Success 200 {string} string "OK | OK_ALREADY_PAID | INVALID_SIG | NOT_SUCCESS | NO_BOOKING | NOT_PAYABLE"
// @Failure 500 {string} string
// @Router /payments/notify [post]
func (h *PaymentHandler) Notify(c *gin.Context) {
	fields, err := callbackFields(c)
	if err != nil {
		// malformed bodies are still audited as an empty notification
		slog.Warn("unreadable payment callback body", "error", err)
		fields = map[string]string{}
	}
	outcome, err := h.cmds.HandleCallback(c.Request.Context(), fields)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "ERROR")
		return
	}
	c.String(http.StatusOK, string(outcome))
}

func callbackFields(c *gin.Context) (map[string]string, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		// numbers keep their literal text; 560.00 must not become 560
		var body map[string]any
		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return nil, err
		}
		fields := make(map[string]string, len(body))
		for k, v := range body {
			switch t := v.(type) {
			case nil:
			case string:
				fields[k] = t
			case json.Number:
				fields[k] = t.String()
			default:
				fields[k] = fmt.Sprint(t)
			}
		}
		return fields, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields, nil
}
