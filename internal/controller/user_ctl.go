package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/service"
)

type UserController struct {
	userService *service.UserService
	log         *zap.Logger
}

func NewUserController(userService *service.UserService, log *zap.Logger) *UserController {
	return &UserController{userService: userService, log: log}
}

// Sync 认证回调同步用户
// @Summary 同步用户
// @Description 外部认证登录回调时写入或更新用户
// @Tags User (用户)
// @Accept json
// @Produce json
// @Param request body dto.UserPayload true "用户信息"
// @Success 200 {object} model.User
// @Failure 400 {object} dto.ErrorResp "参数错误"
// @Router /api/users [post]
func (u *UserController) Sync(c *gin.Context) {
	var req dto.UserPayload
	if err := bindJSON(c, &req); err != nil {
		respondError(c, u.log, err)
		return
	}
	user, err := u.userService.SyncUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, u.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Get 用户详情
// @Summary 用户详情
// @Tags User (用户)
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} model.User
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/users/{id} [get]
func (u *UserController) Get(c *gin.Context) {
	user, err := u.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, u.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
