package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/service"
)

type AgentController struct {
	agentService *service.AgentService
	log          *zap.Logger
}

func NewAgentController(agentService *service.AgentService, log *zap.Logger) *AgentController {
	return &AgentController{agentService: agentService, log: log}
}

// Create 经纪人入驻
// @Summary 经纪人入驻
// @Description 创建经纪人及其社交媒体链接（同一事务）
// @Tags Agent (经纪人)
// @Accept json
// @Produce json
// @Param request body dto.AgentPayload true "经纪人信息"
// @Success 201 {object} map[string]interface{} "message + agent"
// @Failure 400 {object} dto.ErrorResp "参数错误"
// @Failure 404 {object} dto.ErrorResp "用户不存在"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/agents [post]
func (a *AgentController) Create(c *gin.Context) {
	var req dto.AgentPayload
	if err := bindJSON(c, &req); err != nil {
		respondError(c, a.log, err)
		return
	}
	owner, err := resolveOwner(c, req.ID)
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	agent, err := a.agentService.CreateAgent(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Agent registration submitted successfully",
		"agent":   agent,
	})
}

// List 经纪人列表（含社交链接）
// @Summary 经纪人列表
// @Tags Agent (经纪人)
// @Produce json
// @Success 200 {array} model.Agent
// @Router /api/agents [get]
func (a *AgentController) List(c *gin.Context) {
	list, err := a.agentService.ListAgents(c.Request.Context())
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get 经纪人详情
// @Summary 经纪人详情
// @Tags Agent (经纪人)
// @Produce json
// @Param id path int true "经纪人ID"
// @Success 200 {object} model.Agent
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/agents/{id} [get]
func (a *AgentController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	agent, err := a.agentService.GetAgent(c.Request.Context(), id)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

// SetVerification 经纪人审核
// @Summary 经纪人审核
// @Tags Agent (经纪人)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "经纪人ID"
// @Param request body dto.VerificationReq true "PENDING / VERIFIED"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} dto.ErrorResp "未登录"
// @Failure 403 {object} dto.ErrorResp "非审核员"
// @Router /api/agents/{id}/verification [patch]
func (a *AgentController) SetVerification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.VerificationReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, a.log, err)
		return
	}
	if err := a.agentService.SetVerification(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification updated", "id": id, "status": req.Status})
}
