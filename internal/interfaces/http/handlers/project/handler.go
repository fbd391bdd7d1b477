// Package project serves project, project membership and ticket
// configuration endpoints.
package project

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/application/project/usecases"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/utils"
)

type Handler struct {
	uc     UseCases
	logger logger.Interface
}

func NewHandler(uc UseCases, log logger.Interface) *Handler {
	return &Handler{uc: uc, logger: log}
}

// Create handles POST /projects
// @Summary Create a project
// @Description Creates a project with default ticket types, statuses and priorities unless supplied. The creator becomes the project admin.
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateProjectRequest true "Project data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /projects [post]
func (h *Handler) Create(c *gin.Context) {
	actorID, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create project", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), req.toCommand(actorID, role))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Project created successfully")
}

// List handles GET /projects
// @Summary List visible projects
// @Tags projects
// @Produce json
// @Security Bearer
// @Param status query string false "Status filter"
// @Param search query string false "Name or key fragment"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Router /projects [get]
func (h *Handler) List(c *gin.Context) {
	actorID, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.List.Execute(c.Request.Context(), usecases.ListProjectsCommand{
		ActorID:   actorID,
		ActorRole: role,
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		Page:      utils.ParsePagination(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Projects, result.Total, result.Page, result.PageSize)
}

// Get handles GET /projects/:id
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security Bearer
// @Param id path int true "Project ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /projects/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	actorID, projectID, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), actorID, projectID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Update handles PUT /projects/:id
// @Summary Update project details
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Project ID"
// @Param request body UpdateProjectRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /projects/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actorID, projectID, ok := h.target(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), req.toCommand(actorID, projectID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project updated successfully", result)
}

// Delete handles DELETE /projects/:id
// @Summary Delete a project with its tickets and comments
// @Tags projects
// @Security Bearer
// @Param id path int true "Project ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /projects/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actorID, projectID, ok := h.target(c)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), usecases.DeleteProjectCommand{
		ActorID:   actorID,
		ProjectID: projectID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("project deleted", "project_id", projectID, "actor_id", actorID)
	utils.NoContentResponse(c)
}

// AddMember handles POST /projects/:id/members
// @Summary Add a project member
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Project ID"
// @Param request body AddMemberRequest true "Member"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /projects/{id}/members [post]
func (h *Handler) AddMember(c *gin.Context) {
	actorID, projectID, ok := h.target(c)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.uc.AddMember.Execute(c.Request.Context(), usecases.AddMemberCommand{
		ActorID:   actorID,
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member added successfully", result)
}

// RemoveMember handles DELETE /projects/:id/members/:userId
// @Summary Remove a project member
// @Tags projects
// @Security Bearer
// @Param id path int true "Project ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Router /projects/{id}/members/{userId} [delete]
func (h *Handler) RemoveMember(c *gin.Context) {
	actorID, projectID, ok := h.target(c)
	if !ok {
		return
	}
	userID, err := utils.ParseIDParam(c, "userId", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.RemoveMember.Execute(c.Request.Context(), usecases.RemoveMemberCommand{
		ActorID:   actorID,
		ProjectID: projectID,
		UserID:    userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// UpdateMemberRole handles PUT /projects/:id/members/:userId
// @Summary Change a project member's role
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Project ID"
// @Param userId path int true "User ID"
// @Param request body UpdateMemberRoleRequest true "Role"
// @Success 200 {object} utils.APIResponse
// @Router /projects/{id}/members/{userId} [put]
func (h *Handler) UpdateMemberRole(c *gin.Context) {
	actorID, projectID, ok := h.target(c)
	if !ok {
		return
	}
	userID, err := utils.ParseIDParam(c, "userId", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.uc.UpdateMemberRole.Execute(c.Request.Context(), usecases.UpdateMemberRoleCommand{
		ActorID:   actorID,
		ProjectID: projectID,
		UserID:    userID,
		Role:      req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member role updated successfully", result)
}

// UpdateTicketTypes handles PUT /projects/:id/ticket-types
// @Summary Replace the project's ticket types
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Project ID"
// @Param request body TicketConfigRequest true "Entries"
// @Success 200 {object} utils.APIResponse
// @Router /projects/{id}/ticket-types [put]
func (h *Handler) UpdateTicketTypes(c *gin.Context) {
	h.updateTicketConfig(c, project.KindType)
}

// UpdateTicketStatuses handles PUT /projects/:id/ticket-statuses
// @Summary Replace the project's ticket statuses
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Project ID"
// @Param request body TicketConfigRequest true "Entries"
// @Success 200 {object} utils.APIResponse
// @Router /projects/{id}/ticket-statuses [put]
func (h *Handler) UpdateTicketStatuses(c *gin.Context) {
	h.updateTicketConfig(c, project.KindStatus)
}

// UpdateTicketPriorities handles PUT /projects/:id/ticket-priorities
// @Summary Replace the project's ticket priorities
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Project ID"
// @Param request body TicketConfigRequest true "Entries"
// @Success 200 {object} utils.APIResponse
// @Router /projects/{id}/ticket-priorities [put]
func (h *Handler) UpdateTicketPriorities(c *gin.Context) {
	h.updateTicketConfig(c, project.KindPriority)
}

func (h *Handler) updateTicketConfig(c *gin.Context, kind project.ConfigKind) {
	actorID, projectID, ok := h.target(c)
	if !ok {
		return
	}

	var req TicketConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.uc.UpdateTicketConfig.Execute(c.Request.Context(), usecases.UpdateTicketConfigCommand{
		ActorID:   actorID,
		ProjectID: projectID,
		Kind:      kind,
		Entries:   toConfigEntries(req.Entries),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket "+string(kind)+" list updated", result)
}

func (h *Handler) target(c *gin.Context) (actorID, projectID uint, ok bool) {
	actorID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	projectID, err = utils.ParseIDParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	return actorID, projectID, true
}
