// Package user serves registration, login and profile endpoints.
package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/application/user/usecases"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/utils"
)

type Handler struct {
	registerUC   registerExecutor
	loginUC      loginExecutor
	refreshUC    refreshExecutor
	profileUC    profileService
	searchUC     searchExecutor
	changeRoleUC changeRoleExecutor
	logger       logger.Interface
}

func NewHandler(
	registerUC registerExecutor,
	loginUC loginExecutor,
	refreshUC refreshExecutor,
	profileUC profileService,
	searchUC searchExecutor,
	changeRoleUC changeRoleExecutor,
	log logger.Interface,
) *Handler {
	return &Handler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		refreshUC:    refreshUC,
		profileUC:    profileUC,
		searchUC:     searchUC,
		changeRoleUC: changeRoleUC,
		logger:       log,
	}
}

// Register handles POST /users
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /users [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid register request", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User registered successfully")
}

// Login handles POST /users/login
// @Summary Log in with email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", LoginResponse{
		User:          result.User,
		TokenResponse: toTokenResponse(result.Tokens),
	})
}

// Refresh handles POST /users/refresh
// @Summary Exchange a refresh token for a new token pair
// @Tags users
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /users/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	pair, err := h.refreshUC.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toTokenResponse(pair))
}

// GetProfile handles GET /users/profile
// @Summary Get the current user's profile
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /users/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	actorID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.profileUC.Get(c.Request.Context(), actorID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateProfile handles PUT /users/profile
// @Summary Update the current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /users/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	actorID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.profileUC.Update(c.Request.Context(), usecases.UpdateProfileCommand{
		ActorID: actorID,
		Name:    req.Name,
		Avatar:  req.Avatar,
		Bio:     req.Bio,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", result)
}

// Search handles GET /users/search
// @Summary Search users by name
// @Tags users
// @Produce json
// @Security Bearer
// @Param name query string false "Name fragment"
// @Param project query int false "Restrict to members of this project"
// @Success 200 {object} utils.APIResponse
// @Router /users/search [get]
func (h *Handler) Search(c *gin.Context) {
	actorID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SearchUsersCommand{ActorID: actorID, Name: c.Query("name")}
	if raw := c.Query("project"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid project ID"))
			return
		}
		cmd.ProjectID = uint(id)
	}

	result, err := h.searchUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ChangeRole handles PUT /users/:id/role
// @Summary Change a user's global role
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "User ID"
// @Param request body ChangeRoleRequest true "New role"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /users/{id}/role [put]
func (h *Handler) ChangeRole(c *gin.Context) {
	actorID, actorRole, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.changeRoleUC.Execute(c.Request.Context(), usecases.ChangeRoleCommand{
		ActorID:   actorID,
		ActorRole: actorRole,
		UserID:    userID,
		Role:      req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("user role changed", "actor_id", actorID, "user_id", userID, "role", req.Role)
	utils.SuccessResponse(c, http.StatusOK, "Role updated successfully", result)
}
