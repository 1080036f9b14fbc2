package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "agribot_flash"

	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// SetFlash queues a notice for the next page render
func SetFlash(c *gin.Context, category, message string) {
	data, err := json.Marshal(Flash{Category: category, Message: message})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(data), 300, "/", "", false, true)
}

// PopFlash returns the pending notice, if any, and clears it
func PopFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	return &f
}

// Redirect queues a notice and redirects with 302 Found
func Redirect(c *gin.Context, location, category, message string) {
	SetFlash(c, category, message)
	c.Redirect(http.StatusFound, location)
}
