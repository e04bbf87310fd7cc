package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorCodeKey holds the envelope code of an error response on the gin context.
const ErrorCodeKey = "error_code"

type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// RespondError writes {status:"error", message, code}. message is the
// caller-facing text; detail stays in the logs.
func RespondError(c *gin.Context, status int, code, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	markCode(c, code)
	c.JSON(status, ErrorEnvelope{
		Status:  StatusError,
		Message: message,
		Code:    code,
	})
}

// RespondErrorDetail is RespondError plus the caller-caused reason in details.
func RespondErrorDetail(c *gin.Context, status int, code, message string, detail error) {
	markCode(c, code)
	env := ErrorEnvelope{Status: StatusError, Message: message, Code: code}
	if detail != nil {
		env.Details = strings.ReplaceAll(detail.Error(), "\n", ": ")
	}
	c.JSON(status, env)
}

func markCode(c *gin.Context, code string) {
	if code != "" {
		c.Set(ErrorCodeKey, code)
	}
}

// RespondOK writes payload under {status:"success"}.
func RespondOK(c *gin.Context, payload gin.H) {
	RespondStatus(c, http.StatusOK, payload)
}

func RespondStatus(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"status": StatusSuccess}
	for k, v := range payload {
		if k == "status" {
			continue
		}
		body[k] = v
	}
	c.JSON(status, body)
}
