package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/incontext-backend/internal/apierr"
  "github.com/yungbote/incontext-backend/internal/logger"
)

type APIError struct {
  Message     string	`json:"message"`
  Code	      string	`json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error	      APIError	`json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

// RespondServiceError maps a service failure onto the wire using the
// status and code it carries; anything unclassified is a 500 and gets
// logged.
func RespondServiceError(c *gin.Context, log *logger.Logger, err error) {
  status := apierr.StatusOf(err)
  if status == http.StatusInternalServerError && log != nil {
    log.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
  }
  RespondError(c, status, apierr.CodeOf(err), err)
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
