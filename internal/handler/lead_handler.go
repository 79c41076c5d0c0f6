package handler

import (
	"errors"
	"net/http"
	"strconv"

	"lead_scoring/internal/middleware"
	"lead_scoring/internal/model"
	"lead_scoring/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// LeadHandler serves the ranked lead list and lead updates
type LeadHandler struct {
	service service.LeadService
}

func NewLeadHandler(s service.LeadService) *LeadHandler {
	return &LeadHandler{service: s}
}

// caller resolves who is asking. A bearer token wins over the query parameters.
func caller(c *gin.Context) (userID, role string) {
	if userID, role, ok := middleware.Identity(c); ok {
		return userID, role
	}
	return c.Query("userId"), c.Query("role")
}

func parseLeadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid lead ID format"})
		return 0, false
	}
	return id, true
}

// ListLeads godoc
// @Summary      List leads ranked by score
// @Description  Admins see every lead. Sales users see unassigned pending leads plus their own.
// @Tags         Leads
// @Produce      json
// @Param        userId  query     string  false  "Caller user ID"
// @Param        role    query     string  false  "Caller role"  Enums(admin, sales)
// @Success      200     {array}   model.Lead
// @Failure      500     {object}  map[string]string
// @Router       /leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	userID, role := caller(c)
	leads, err := h.service.List(c.Request.Context(), model.LeadFilter{UserID: userID, Role: role})
	if err != nil {
		internalError(c, err, "Failed to fetch leads")
		return
	}
	c.JSON(http.StatusOK, leads)
}

// GetLead godoc
// @Summary      Get a lead
// @Tags         Leads
// @Produce      json
// @Param        id   path      int  true  "Lead ID"
// @Success      200  {object}  model.Lead
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /leads/{id} [get]
func (h *LeadHandler) GetLead(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	lead, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to fetch lead")
		return
	}
	c.JSON(http.StatusOK, lead)
}

// UpdateLeadStatus godoc
// @Summary      Change a lead's status
// @Description  Any status other than pending stamps contactedAt and claims an unassigned lead for userId
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id      path      int                            true  "Lead ID"
// @Param        status  body      model.UpdateLeadStatusRequest  true  "New status"
// @Success      200     {object}  model.LeadStatusUpdate
// @Failure      400     {object}  map[string]interface{}
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /leads/{id}/status [put]
func (h *LeadHandler) UpdateLeadStatus(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req model.UpdateLeadStatusRequest
	tokenUser, _, authenticated := middleware.Identity(c)
	if authenticated {
		req.UserID = tokenUser
	}
	if !bindJSON(c, &req) {
		return
	}
	if authenticated {
		req.UserID = tokenUser
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update lead status")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateLeadNotes godoc
// @Summary      Replace a lead's notes
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id     path      int                           true  "Lead ID"
// @Param        notes  body      model.UpdateLeadNotesRequest  true  "Notes, may be empty"
// @Success      200    {object}  model.LeadNotesUpdate
// @Failure      400    {object}  map[string]interface{}
// @Failure      404    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /leads/{id}/notes [put]
func (h *LeadHandler) UpdateLeadNotes(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req model.UpdateLeadNotesRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateNotes(c.Request.Context(), id, *req.Notes)
	if err != nil {
		h.writeError(c, err, "Failed to update lead notes")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RefreshML godoc
// @Summary      Recalculate ML scores
// @Description  Runs the scoring script and waits for it to finish
// @Tags         Leads
// @Produce      json
// @Success      200  {object}  model.RefreshResult
// @Failure      500  {object}  map[string]string
// @Router       /leads/refresh-ml [post]
func (h *LeadHandler) RefreshML(c *gin.Context) {
	result, err := h.service.RefreshScores(c.Request.Context())
	if err != nil {
		internalError(c, err, "Failed to refresh ML scores")
		return
	}
	log.WithFields(log.Fields{"component": "scoring", "total_processed": result.TotalProcessed}).Info("ML scores refreshed")
	c.JSON(http.StatusOK, result)
}

func (h *LeadHandler) writeError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrLeadNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
		return
	}
	internalError(c, err, fallback)
}

// RegisterLeadRoutes registers lead routes behind mw. adminMW additionally
// guards the scoring refresh and may be nil.
func (h *LeadHandler) RegisterLeadRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc, mw ...gin.HandlerFunc) {
	leads := rg.Group("/leads", mw...)
	{
		leads.GET("", h.ListLeads)
		leads.GET("/:id", h.GetLead)
		leads.PUT("/:id/status", h.UpdateLeadStatus)
		leads.PUT("/:id/notes", h.UpdateLeadNotes)
		leads.POST("/refresh-ml", append(nonNil(adminMW), h.RefreshML)...)
	}
}

func nonNil(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
