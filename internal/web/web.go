// Package web holds the embedded HTML templates and the helpers handlers
// use to render them, set flash notices and manage the session cookie.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"agribot/internal/session"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Pages are addressed by file name.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Render executes the named page with the pending flash and current session added to data.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flash"] = PopFlash(c)
	if s, ok := c.Get(session.ContextKey); ok {
		data["Session"] = s
	}
	c.HTML(status, name+".html", data)
}

// RenderError answers with the generic error page; details stay in the logs.
func RenderError(c *gin.Context) {
	Render(c, http.StatusInternalServerError, "error", gin.H{
		"Message": "Something went wrong. Please try again later.",
	})
}

// CookieSettings describes the session cookie.
type CookieSettings struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Set writes the session token cookie
func (s CookieSettings) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, token, int(s.TTL.Seconds()), "/", "", s.Secure, true)
}

// Clear expires the session token cookie
func (s CookieSettings) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, true)
}
