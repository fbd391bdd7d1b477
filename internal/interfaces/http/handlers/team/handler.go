// Package team serves team and team membership endpoints.
package team

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/application/team/usecases"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/utils"
)

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=admin manager developer submitter"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager developer submitter"`
}

type Handler struct {
	createUC  createTeamExecutor
	membersUC memberService
	queryUC   teamQueries
	logger    logger.Interface
}

func NewHandler(createUC createTeamExecutor, membersUC memberService, queryUC teamQueries, log logger.Interface) *Handler {
	return &Handler{createUC: createUC, membersUC: membersUC, queryUC: queryUC, logger: log}
}

// Create handles POST /teams
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateTeamRequest true "Team data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /teams [post]
func (h *Handler) Create(c *gin.Context) {
	actorID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateTeamCommand{
		ActorID:     actorID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Team created successfully")
}

// List handles GET /teams
// @Summary List the caller's teams
// @Tags teams
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Router /teams [get]
func (h *Handler) List(c *gin.Context) {
	actorID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.queryUC.List(c.Request.Context(), actorID, utils.ParsePagination(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Teams, result.Total, result.Page, result.PageSize)
}

// Get handles GET /teams/:id
// @Summary Get a team
// @Tags teams
// @Produce json
// @Security Bearer
// @Param id path int true "Team ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /teams/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	actorID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	teamID, err := utils.ParseIDParam(c, "id", "team")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.queryUC.Get(c.Request.Context(), actorID, teamID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AddMember handles POST /teams/:id/members
// @Summary Add a member to a team
// @Tags teams
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Team ID"
// @Param request body AddMemberRequest true "Member"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /teams/{id}/members [post]
func (h *Handler) AddMember(c *gin.Context) {
	cmd, ok := h.memberCommand(c)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}
	cmd.UserID = req.UserID
	cmd.Role = req.Role

	result, err := h.membersUC.Add(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member added successfully", result)
}

// RemoveMember handles DELETE /teams/:id/members/:userId
// @Summary Remove a member from a team
// @Tags teams
// @Security Bearer
// @Param id path int true "Team ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Router /teams/{id}/members/{userId} [delete]
func (h *Handler) RemoveMember(c *gin.Context) {
	cmd, ok := h.memberCommand(c)
	if !ok {
		return
	}
	userID, err := utils.ParseIDParam(c, "userId", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	cmd.UserID = userID

	if err := h.membersUC.Remove(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// UpdateMemberRole handles PUT /teams/:id/members/:userId
// @Summary Change a team member's role
// @Tags teams
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Team ID"
// @Param userId path int true "User ID"
// @Param request body UpdateMemberRoleRequest true "Role"
// @Success 200 {object} utils.APIResponse
// @Router /teams/{id}/members/{userId} [put]
func (h *Handler) UpdateMemberRole(c *gin.Context) {
	cmd, ok := h.memberCommand(c)
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
	cmd.UserID = userID
	cmd.Role = req.Role

	result, err := h.membersUC.UpdateRole(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member role updated successfully", result)
}

func (h *Handler) memberCommand(c *gin.Context) (usecases.MemberCommand, bool) {
	actorID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return usecases.MemberCommand{}, false
	}
	teamID, err := utils.ParseIDParam(c, "id", "team")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return usecases.MemberCommand{}, false
	}
	return usecases.MemberCommand{ActorID: actorID, TeamID: teamID}, true
}
