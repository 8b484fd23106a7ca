package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/service"
)

type ProjectController struct {
	projectService *service.ProjectService
	log            *zap.Logger
}

func NewProjectController(projectService *service.ProjectService, log *zap.Logger) *ProjectController {
	return &ProjectController{projectService: projectService, log: log}
}

// Create 楼盘项目发布
// @Summary 楼盘项目发布
// @Description 项目 + 价格区间 + 授权代理 + 图片在同一事务内写入
// @Tags Project (楼盘项目)
// @Accept json
// @Produce json
// @Param request body dto.ProjectPayload true "项目信息"
// @Success 201 {object} map[string]interface{} "message + project"
// @Failure 400 {object} dto.ErrorResp "参数错误"
// @Failure 404 {object} dto.ErrorResp "用户不存在"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/projects [post]
func (p *ProjectController) Create(c *gin.Context) {
	var req dto.ProjectPayload
	if err := bindJSON(c, &req); err != nil {
		respondError(c, p.log, err)
		return
	}
	owner, err := resolveOwner(c, req.ID)
	if err != nil {
		respondError(c, p.log, err)
		return
	}

	project, err := p.projectService.CreateProject(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, p.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": project,
	})
}

// List 项目列表
// @Summary 项目列表
// @Tags Project (楼盘项目)
// @Produce json
// @Success 200 {array} model.Project
// @Router /api/projects [get]
func (p *ProjectController) List(c *gin.Context) {
	list, err := p.projectService.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, p.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get 项目详情
// @Summary 项目详情
// @Tags Project (楼盘项目)
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} model.Project
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/projects/{id} [get]
func (p *ProjectController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	project, err := p.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, p.log, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// SetVerification 项目审核
// @Summary 项目审核
// @Tags Project (楼盘项目)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body dto.VerificationReq true "PENDING / VERIFIED"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} dto.ErrorResp "未登录"
// @Failure 403 {object} dto.ErrorResp "非审核员"
// @Router /api/projects/{id}/verification [patch]
func (p *ProjectController) SetVerification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.VerificationReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, p.log, err)
		return
	}
	if err := p.projectService.SetVerification(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, p.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification updated", "id": id, "status": req.Status})
}
