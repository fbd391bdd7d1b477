// Package comment serves ticket comment endpoints.
package comment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/application/comment/usecases"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/utils"
)

type AttachmentRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	URL  string `json:"url" binding:"required,url,max=2048"`
	Type string `json:"type" binding:"max=100"`
	Size int64  `json:"size" binding:"gte=0"`
}

type CreateCommentRequest struct {
	Content     string              `json:"content" binding:"required,max=10000"`
	Attachments []AttachmentRequest `json:"attachments" binding:"omitempty,max=20,dive"`
}

// EditCommentRequest keeps the current attachments when attachments is omitted.
type EditCommentRequest struct {
	Content     string              `json:"content" binding:"required,max=10000"`
	Attachments []AttachmentRequest `json:"attachments" binding:"omitempty,max=20,dive"`
}

func toInputs(in []AttachmentRequest) []usecases.AttachmentInput {
	if in == nil {
		return nil
	}
	out := make([]usecases.AttachmentInput, 0, len(in))
	for _, a := range in {
		out = append(out, a.toInput())
	}
	return out
}

func (a AttachmentRequest) toInput() usecases.AttachmentInput {
	return usecases.AttachmentInput{Name: a.Name, URL: a.URL, Type: a.Type, Size: a.Size}
}

type Handler struct {
	createUC      createCommentExecutor
	editUC        editCommentExecutor
	deleteUC      deleteCommentExecutor
	listUC        listCommentsExecutor
	attachmentsUC attachmentService
	logger        logger.Interface
}

func NewHandler(
	createUC createCommentExecutor,
	editUC editCommentExecutor,
	deleteUC deleteCommentExecutor,
	listUC listCommentsExecutor,
	attachmentsUC attachmentService,
	log logger.Interface,
) *Handler {
	return &Handler{
		createUC:      createUC,
		editUC:        editUC,
		deleteUC:      deleteUC,
		listUC:        listUC,
		attachmentsUC: attachmentsUC,
		logger:        log,
	}
}

// List handles GET /tickets/:id/comments
// @Summary List a ticket's comments, oldest first
// @Tags comments
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /tickets/{id}/comments [get]
func (h *Handler) List(c *gin.Context) {
	actorID, ticketID, ok := target(c, "ticket")
	if !ok {
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), actorID, ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Create handles POST /tickets/:id/comments
// @Summary Comment on a ticket
// @Description Notifies the reporter, assignee and watchers, and any @mentioned members
// @Tags comments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /tickets/{id}/comments [post]
func (h *Handler) Create(c *gin.Context) {
	actorID, ticketID, ok := target(c, "ticket")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateCommentCommand{
		ActorID:     actorID,
		TicketID:    ticketID,
		Content:     req.Content,
		Attachments: toInputs(req.Attachments),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// Edit handles PUT /comments/:id
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Comment ID"
// @Param request body EditCommentRequest true "New content"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /comments/{id} [put]
func (h *Handler) Edit(c *gin.Context) {
	actorID, commentID, ok := target(c, "comment")
	if !ok {
		return
	}

	var req EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.editUC.Execute(c.Request.Context(), usecases.EditCommentCommand{
		ActorID:     actorID,
		CommentID:   commentID,
		Content:     req.Content,
		Attachments: toInputs(req.Attachments),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment updated successfully", result)
}

// Delete handles DELETE /comments/:id
// @Summary Delete a comment
// @Tags comments
// @Security Bearer
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Router /comments/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actorID, commentID, ok := target(c, "comment")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteCommentCommand{
		ActorID:   actorID,
		CommentID: commentID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// AddAttachment handles POST /comments/:id/attachments
// @Summary Attach file metadata to a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Comment ID"
// @Param request body AttachmentRequest true "Attachment"
// @Success 201 {object} utils.APIResponse
// @Router /comments/{id}/attachments [post]
func (h *Handler) AddAttachment(c *gin.Context) {
	actorID, commentID, ok := target(c, "comment")
	if !ok {
		return
	}

	var req AttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.attachmentsUC.Add(c.Request.Context(), actorID, commentID, req.toInput())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment added")
}

// RemoveAttachment handles DELETE /comments/:id/attachments/:attachmentId
// @Summary Remove an attachment from a comment
// @Tags comments
// @Produce json
// @Security Bearer
// @Param id path int true "Comment ID"
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {object} utils.APIResponse
// @Router /comments/{id}/attachments/{attachmentId} [delete]
func (h *Handler) RemoveAttachment(c *gin.Context) {
	actorID, commentID, ok := target(c, "comment")
	if !ok {
		return
	}
	attachmentID := c.Param("attachmentId")
	if attachmentID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("attachment ID is required"))
		return
	}

	result, err := h.attachmentsUC.Remove(c.Request.Context(), actorID, commentID, attachmentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Attachment removed", result)
}

func target(c *gin.Context, entity string) (actorID, id uint, ok bool) {
	actorID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	id, err = utils.ParseIDParam(c, "id", entity)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	return actorID, id, true
}
