package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/service"
)

type AgencyController struct {
	agencyService *service.AgencyService
	log           *zap.Logger
}

func NewAgencyController(agencyService *service.AgencyService, log *zap.Logger) *AgencyController {
	return &AgencyController{agencyService: agencyService, log: log}
}

// Create 中介机构入驻
// @Summary 中介机构入驻
// @Description 校验后创建机构，邮箱全局唯一，初始状态为 PENDING
// @Tags Agency (中介机构)
// @Accept json
// @Produce json
// @Param request body dto.AgencyPayload true "机构信息"
// @Success 201 {object} map[string]interface{} "message + agency"
// @Failure 400 {object} dto.ErrorResp "参数错误 / 邮箱已占用"
// @Failure 403 {object} dto.ErrorResp "与登录用户不一致"
// @Failure 404 {object} dto.ErrorResp "用户不存在"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/agency [post]
func (a *AgencyController) Create(c *gin.Context) {
	var req dto.AgencyPayload
	if err := bindJSON(c, &req); err != nil {
		respondError(c, a.log, err)
		return
	}
	owner, err := resolveOwner(c, req.ID)
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	agency, err := a.agencyService.CreateAgency(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Agency created successfully",
		"agency":  agency,
	})
}

// List 机构列表
// @Summary 机构列表
// @Description 返回全部机构，无分页
// @Tags Agency (中介机构)
// @Produce json
// @Success 200 {array} model.Agency
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/agency [get]
func (a *AgencyController) List(c *gin.Context) {
	list, err := a.agencyService.ListAgencies(c.Request.Context())
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get 机构详情
// @Summary 机构详情
// @Tags Agency (中介机构)
// @Produce json
// @Param id path int true "机构ID"
// @Success 200 {object} model.Agency
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/agency/{id} [get]
func (a *AgencyController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	agency, err := a.agencyService.GetAgency(c.Request.Context(), id)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, agency)
}

// SetVerification 审核状态变更
// @Summary 机构审核
// @Tags Agency (中介机构)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "机构ID"
// @Param request body dto.VerificationReq true "PENDING / VERIFIED"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} dto.ErrorResp "未登录"
// @Failure 403 {object} dto.ErrorResp "非审核员"
// @Failure 400 {object} dto.ErrorResp "状态非法"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/agency/{id}/verification [patch]
func (a *AgencyController) SetVerification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.VerificationReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, a.log, err)
		return
	}
	if err := a.agencyService.SetVerification(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification updated", "id": id, "status": req.Status})
}
