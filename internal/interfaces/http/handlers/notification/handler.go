// Package notification serves the caller's notification inbox.
package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/application/notification/usecases"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/utils"
)

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type AffectedResponse struct {
	Affected int64 `json:"affected"`
}

type Handler struct {
	listUC        listExecutor
	unreadCountUC recipientExecutor
	markAllReadUC recipientExecutor
	markReadUC    markReadExecutor
	deleteUC      deleteExecutor
	deleteAllUC   recipientExecutor
	logger        logger.Interface
}

func NewHandler(
	listUC listExecutor,
	unreadCountUC recipientExecutor,
	markAllReadUC recipientExecutor,
	markReadUC markReadExecutor,
	deleteUC deleteExecutor,
	deleteAllUC recipientExecutor,
	log logger.Interface,
) *Handler {
	return &Handler{
		listUC:        listUC,
		unreadCountUC: unreadCountUC,
		markAllReadUC: markAllReadUC,
		markReadUC:    markReadUC,
		deleteUC:      deleteUC,
		deleteAllUC:   deleteAllUC,
		logger:        log,
	}
}

// List handles GET /notifications
// @Summary List the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param unread query bool false "Only unread"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Router /notifications [get]
func (h *Handler) List(c *gin.Context) {
	userID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListNotificationsCommand{
		RecipientID: userID,
		UnreadOnly:  unreadOnly,
		Page:        utils.ParsePagination(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Notifications, result.Total, result.Page, result.PageSize)
}

// UnreadCount handles GET /notifications/unread/count
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Router /notifications/unread/count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	userID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	count, err := h.unreadCountUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", UnreadCountResponse{Count: count})
}

// MarkAllRead handles PUT /notifications/read-all
// @Summary Mark every notification read
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Router /notifications/read-all [put]
func (h *Handler) MarkAllRead(c *gin.Context) {
	h.bulk(c, h.markAllReadUC, "All notifications marked as read")
}

// DeleteAll handles DELETE /notifications
// @Summary Delete every notification
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Router /notifications [delete]
func (h *Handler) DeleteAll(c *gin.Context) {
	h.bulk(c, h.deleteAllUC, "All notifications deleted")
}

// MarkRead handles PUT /notifications/:id/read
// @Summary Mark one notification read
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /notifications/{id}/read [put]
func (h *Handler) MarkRead(c *gin.Context) {
	userID, id, ok := target(c)
	if !ok {
		return
	}

	result, err := h.markReadUC.Execute(c.Request.Context(), usecases.MarkNotificationReadCommand{
		NotificationID: id,
		RecipientID:    userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", result)
}

// Delete handles DELETE /notifications/:id
// @Summary Delete one notification
// @Tags notifications
// @Security Bearer
// @Param id path int true "Notification ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /notifications/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, id, ok := target(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteNotificationCommand{
		NotificationID: id,
		RecipientID:    userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *Handler) bulk(c *gin.Context, uc recipientExecutor, message string) {
	userID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	n, err := uc.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, AffectedResponse{Affected: n})
}

func target(c *gin.Context) (userID, id uint, ok bool) {
	userID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	id, err = utils.ParseIDParam(c, "id", "notification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	return userID, id, true
}
