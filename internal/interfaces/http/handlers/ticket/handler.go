// Package ticket serves ticket, watcher and attachment endpoints.
package ticket

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/application/ticket/usecases"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC     CreateTicketExecutor
	updateTicketUC     UpdateTicketExecutor
	assignTicketUC     AssignTicketExecutor
	transitionStatusUC TransitionStatusExecutor
	deleteTicketUC     DeleteTicketExecutor
	queries            TicketQueries
	watchers           WatcherService
	attachments        AttachmentService
	logger             logger.Interface
}

func NewTicketHandler(
	createTicketUC CreateTicketExecutor,
	updateTicketUC UpdateTicketExecutor,
	assignTicketUC AssignTicketExecutor,
	transitionStatusUC TransitionStatusExecutor,
	deleteTicketUC DeleteTicketExecutor,
	queries TicketQueries,
	watchers WatcherService,
	attachments AttachmentService,
	log logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:     createTicketUC,
		updateTicketUC:     updateTicketUC,
		assignTicketUC:     assignTicketUC,
		transitionStatusUC: transitionStatusUC,
		deleteTicketUC:     deleteTicketUC,
		queries:            queries,
		watchers:           watchers,
		attachments:        attachments,
		logger:             log,
	}
}

// CreateTicket handles POST /tickets
// @Summary Create a new ticket
// @Description Type, status and priority default to the first entry of the project's lists
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param ticket body CreateTicketRequest true "Ticket data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	userID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.toCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
// @Summary Get ticket by ID
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	userID, ticketID, ok := target(c)
	if !ok {
		return
	}

	result, err := h.queries.Get(c.Request.Context(), userID, ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
// @Summary List tickets
// @Description Get a paginated list of tickets, newest first
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param project query int false "Project filter"
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param type query string false "Type filter"
// @Param assignee query string false "me, unassigned or a user ID"
// @Param reporter query string false "me or a user ID"
// @Param search query string false "Matches title, description or ticket number"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	userID, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd, err := parseListTicketsRequest(c, userID, role)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.queries.List(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// UpdateTicket handles PUT /tickets/:id
// @Summary Update ticket fields
// @Description Partial update; send null for assignee_id or due_date to clear them
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param ticket body UpdateTicketRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	userID, ticketID, ok := target(c)
	if !ok {
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		ActorID:  userID,
		TicketID: ticketID,
		Patch:    patch,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// DeleteTicket handles DELETE /tickets/:id
// @Summary Delete a ticket
// @Tags tickets
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	userID, ticketID, ok := target(c)
	if !ok {
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		ActorID:  userID,
		TicketID: ticketID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("ticket deleted", "ticket_id", ticketID, "actor_id", userID)
	utils.NoContentResponse(c)
}

// AssignTicket handles PUT /tickets/:id/assign
// @Summary Assign or unassign a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AssignTicketRequest true "Assignee; null to unassign"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /tickets/{id}/assign [put]
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	userID, ticketID, ok := target(c)
	if !ok {
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}
	if req.AssigneeID != nil && *req.AssigneeID == 0 {
		utils.ErrorResponseWithError(c, errInvalidField("assignee_id"))
		return
	}

	result, err := h.assignTicketUC.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		ActorID:    userID,
		TicketID:   ticketID,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", result)
}

// UpdateStatus handles PUT /tickets/:id/status
// @Summary Move a ticket to another status
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body TransitionStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /tickets/{id}/status [put]
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	userID, ticketID, ok := target(c)
	if !ok {
		return
	}

	var req TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.transitionStatusUC.Execute(c.Request.Context(), usecases.TransitionStatusCommand{
		ActorID:  userID,
		TicketID: ticketID,
		Status:   req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated successfully", result)
}

// GetHistory handles GET /tickets/:id/history
// @Summary List a ticket's change history, oldest first
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /tickets/{id}/history [get]
func (h *TicketHandler) GetHistory(c *gin.Context) {
	userID, ticketID, ok := target(c)
	if !ok {
		return
	}

	result, err := h.queries.History(c.Request.Context(), userID, ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AddWatcher handles POST /tickets/:id/watchers
// @Summary Watch a ticket
// @Description Without user_id the caller starts watching
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AddWatcherRequest false "Watcher"
// @Success 200 {object} utils.APIResponse
// @Router /tickets/{id}/watchers [post]
func (h *TicketHandler) AddWatcher(c *gin.Context) {
	userID, ticketID, ok := target(c)
	if !ok {
		return
	}

	var req AddWatcherRequest
	if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.watchers.Add(c.Request.Context(), usecases.WatcherCommand{
		ActorID:  userID,
		TicketID: ticketID,
		UserID:   req.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Watcher added", result)
}

// RemoveWatcher handles DELETE /tickets/:id/watchers/:userId
// @Summary Stop a user watching a ticket
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param userId path int true "User ID"
// @Success 200 {object} utils.APIResponse
// @Router /tickets/{id}/watchers/{userId} [delete]
func (h *TicketHandler) RemoveWatcher(c *gin.Context) {
	userID, ticketID, ok := target(c)
	if !ok {
		return
	}
	watcherID, err := utils.ParseIDParam(c, "userId", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.watchers.Remove(c.Request.Context(), usecases.WatcherCommand{
		ActorID:  userID,
		TicketID: ticketID,
		UserID:   watcherID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Watcher removed", result)
}

// AddAttachment handles POST /tickets/:id/attachments
// @Summary Attach file metadata to a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AddAttachmentRequest true "Attachment"
// @Success 201 {object} utils.APIResponse
// @Router /tickets/{id}/attachments [post]
func (h *TicketHandler) AddAttachment(c *gin.Context) {
	userID, ticketID, ok := target(c)
	if !ok {
		return
	}

	var req AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.attachments.Add(c.Request.Context(), usecases.AddAttachmentCommand{
		ActorID:  userID,
		TicketID: ticketID,
		Name:     req.Name,
		URL:      req.URL,
		Type:     req.Type,
		Size:     req.Size,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment added")
}

// RemoveAttachment handles DELETE /tickets/:id/attachments/:attachmentId
// @Summary Remove an attachment from a ticket
// @Tags tickets
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param attachmentId path string true "Attachment ID"
// @Success 204
// @Router /tickets/{id}/attachments/{attachmentId} [delete]
func (h *TicketHandler) RemoveAttachment(c *gin.Context) {
	userID, ticketID, ok := target(c)
	if !ok {
		return
	}
	attachmentID := c.Param("attachmentId")
	if attachmentID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("attachment ID is required"))
		return
	}

	if err := h.attachments.Remove(c.Request.Context(), usecases.RemoveAttachmentCommand{
		ActorID:      userID,
		TicketID:     ticketID,
		AttachmentID: attachmentID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func target(c *gin.Context) (userID, ticketID uint, ok bool) {
	userID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	ticketID, err = utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	return userID, ticketID, true
}

func parseListTicketsRequest(c *gin.Context, userID uint, role authorization.UserRole) (usecases.ListTicketsCommand, error) {
	cmd := usecases.ListTicketsCommand{
		ActorID:   userID,
		ActorRole: role,
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Type:      c.Query("type"),
		Search:    c.Query("search"),
		Page:      utils.ParsePagination(c),
	}

	if raw := c.Query("project"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return cmd, errInvalidField("project")
		}
		cmd.ProjectID = uint(id)
	}

	switch raw := c.Query("assignee"); raw {
	case "":
	case "unassigned":
		cmd.Unassigned = true
	default:
		id, err := parseUserRef(raw, userID)
		if err != nil {
			return cmd, errInvalidField("assignee")
		}
		cmd.AssigneeID = &id
	}

	if raw := c.Query("reporter"); raw != "" {
		id, err := parseUserRef(raw, userID)
		if err != nil {
			return cmd, errInvalidField("reporter")
		}
		cmd.ReporterID = &id
	}

	return cmd, nil
}

// parseUserRef accepts "me" or a positive numeric ID.
func parseUserRef(raw string, self uint) (uint, error) {
	if raw == "me" {
		return self, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidField("user")
	}
	return uint(id), nil
}

func errInvalidField(field string) error {
	return errors.NewValidationError("invalid " + field)
}
