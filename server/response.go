package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response codes. Everything the core can fail with degrades to a message the
// client renders as an empty state or a warning banner; nothing is fatal.
const (
	CodeOK         = 0
	CodeValidation = 1 // input rejected before append
	CodeCorrupt    = 2 // stored ledger unreadable, section skipped
	CodeInternal   = 3
)

// APIResponse is the JSON envelope for every endpoint.
type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Code: CodeOK, Message: "ok", Data: data})
}

// warn answers 200 with a nonzero code: the request worked, but one section
// degraded (e.g. a corrupt ledger) and the client should show a warning.
func warn(c *gin.Context, code int, msg string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Code: code, Message: msg, Data: data})
}

// fail rejects the request. data carries the original input back to the
// client so it can be corrected and resubmitted.
func fail(c *gin.Context, status, code int, msg string, data interface{}) {
	c.JSON(status, APIResponse{Code: code, Message: msg, Data: data})
}
