package handlers

import (
	"net/http"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/services"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/pkg/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	visitorCookieName   = "visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

type TrackVisitRequest struct {
	PageURL  string `json:"page_url" binding:"required"`
	Referrer string `json:"referrer"`
}

type TrackPropertyViewRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
}

// sessionID resolves the per-browser-session dedup scope, minting one on
// first contact.
func sessionID(c *gin.Context) string {
	session := sessions.Default(c)
	if sid, ok := session.Get("sid").(string); ok && sid != "" {
		return sid
	}
	sid := utils.GenerateVisitorID()
	session.Set("sid", sid)
	if err := session.Save(); err != nil {
		// Cookie-less client, scope lives only for this request
		return sid
	}
	return sid
}

// TrackVisit records a page visit. Tracking is best-effort, so a valid
// request always answers 202 regardless of whether an event gets written.
func (h *Handler) TrackVisit(c *gin.Context) {
	var req TrackVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, _ := c.Cookie(visitorCookieName)

	visitorID := h.trackerService.RecordPageVisit(services.Visit{
		SessionID: sessionID(c),
		VisitorID: existing,
		PageURL:   req.PageURL,
		Referrer:  req.Referrer,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})

	if existing == "" {
		c.SetCookie(visitorCookieName, visitorID, visitorCookieMaxAge, "/", "", false, true)
	}

	c.JSON(http.StatusAccepted, gin.H{"visitor_id": visitorID})
}

// TrackPropertyView records booking intent for a property card.
func (h *Handler) TrackPropertyView(c *gin.Context) {
	var req TrackPropertyViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.trackerService.RecordPropertyViewIntent(sessionID(c), req.PropertyID, c.Request.UserAgent(), c.ClientIP())

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
