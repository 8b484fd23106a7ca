package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate_listing_v1/internal/controller"
	"estate_listing_v1/internal/middleware"
)

// Controllers 路由依赖的控制器
type Controllers struct {
	Agency  *controller.AgencyController
	Agent   *controller.AgentController
	Project *controller.ProjectController
	Upload  *controller.UploadController
	User    *controller.UserController
	Report  *controller.ReportController
}

// Options 路由级配置
type Options struct {
	Session  middleware.SessionConfig
	Throttle *middleware.SubmitLimiter
	// UploadThrottle 上传单独计数，一次表单提交前可能有多次上传
	UploadThrottle *middleware.SubmitLimiter
	UploadDir      string // 本地存储目录，为空时不挂载 /uploads
	// MaxUploadBytes multipart 内存上限
	MaxUploadBytes int64
}

// NewEngine 创建 gin 引擎并注册所有路由
func NewEngine(ctl Controllers, opts Options, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.SessionAuth(opts.Session),
		middleware.AuditContext(),
	)
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 本地存储的上传文件
	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	InitRoutes(r, ctl, opts, log)
	return r
}

// InitRoutes 注册 API 路由
func InitRoutes(r *gin.Engine, ctl Controllers, opts Options, log *zap.Logger) {
	api := r.Group("/api")

	throttled := func(limiter *middleware.SubmitLimiter, h gin.HandlerFunc) []gin.HandlerFunc {
		if limiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.SubmitThrottle(limiter, log), h}
	}
	// 写请求限流（仅 POST 提交）
	submit := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return throttled(opts.Throttle, h)
	}
	// 审核操作仅限 admin 会话
	admin := middleware.RequireRole(middleware.RoleAdmin)

	{
		// agency 中介机构
		agency := api.Group("/agency")
		{
			// GET /api/agency
			agency.GET("", ctl.Agency.List)
			agency.POST("", submit(ctl.Agency.Create)...)
			agency.GET("/:id", ctl.Agency.Get)
			agency.PATCH("/:id/verification", admin, ctl.Agency.SetVerification)
		}
		// agents 经纪人
		agents := api.Group("/agents")
		{
			agents.GET("", ctl.Agent.List)
			agents.POST("", submit(ctl.Agent.Create)...)
			agents.GET("/:id", ctl.Agent.Get)
			agents.PATCH("/:id/verification", admin, ctl.Agent.SetVerification)
		}
		// projects 楼盘项目
		projects := api.Group("/projects")
		{
			projects.GET("", ctl.Project.List)
			projects.POST("", submit(ctl.Project.Create)...)
			projects.GET("/:id", ctl.Project.Get)
			projects.PATCH("/:id/verification", admin, ctl.Project.SetVerification)
		}

		// POST /api/upload
		api.POST("/upload", throttled(opts.UploadThrottle, ctl.Upload.Upload)...)

		// users 外部认证用户同步
		users := api.Group("/users")
		{
			users.POST("", ctl.User.Sync)
			users.GET("/:id", ctl.User.Get)
		}

		// reports 审核报表
		reports := api.Group("/reports", admin)
		{
			// GET /api/reports/verification
			reports.GET("/verification", ctl.Report.Verification)
			// POST /api/reports/verification/run
			reports.POST("/verification/run", ctl.Report.RunVerification)
		}
	}
}
