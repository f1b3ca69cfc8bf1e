// Package notify carries one-shot success/error notices to the next page the
// browser renders.
package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const cookieName = "flash"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(message string) *Notice {
	return &Notice{Level: LevelSuccess, Message: message}
}

func Error(message string) *Notice {
	return &Notice{Level: LevelError, Message: message}
}

// IsError reports whether n is an error notice.
func (n *Notice) IsError() bool {
	return n != nil && n.Level == LevelError
}

// Flash stores n for the next request, typically before a redirect.
func Flash(c *gin.Context, n *Notice) {
	if n == nil {
		return
	}
	raw, err := json.Marshal(n)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, base64.RawURLEncoding.EncodeToString(raw), 60, "/", "", false, true)
}

// Pop returns and clears the pending notice, if any.
func Pop(c *gin.Context) *Notice {
	value, err := c.Cookie(cookieName)
	if err != nil || value == "" {
		return nil
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var n Notice
	if err := json.Unmarshal(raw, &n); err != nil || n.Message == "" {
		return nil
	}
	return &n
}
