package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estate_listing_v1/internal/config"
	"estate_listing_v1/internal/controller"
	"estate_listing_v1/internal/middleware"
	"estate_listing_v1/internal/model"
	"estate_listing_v1/internal/repository"
	"estate_listing_v1/internal/router"
	"estate_listing_v1/internal/service"
	"estate_listing_v1/internal/task"
	"estate_listing_v1/pkg/database"
	"estate_listing_v1/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// 3. 初始化数据库
	db, err := initDatabase(cfg, log)
	if err != nil {
		log.Fatal("数据库初始化失败", zap.Error(err))
	}

	// 4. 初始化依赖
	deps, err := initDependencies(cfg, db, log)
	if err != nil {
		log.Fatal("依赖初始化失败", zap.Error(err))
	}

	// 5. 启动定时任务
	if err := deps.Tasks.Start(); err != nil {
		log.Fatal("定时任务启动失败", zap.Error(err))
	}
	defer deps.Tasks.Stop()

	// 6. 初始化路由
	gin.SetMode(cfg.Server.GinMode)
	r := router.NewEngine(*deps.Controllers, routerOptions(cfg), log)

	// 7. 启动服务
	startServer(r, cfg.Server.Port, log)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Uow         *repository.ListingUnitOfWork
	Services    *Services
	Tasks       *task.TaskManager
	Controllers *router.Controllers
}

// Services 服务集合
type Services struct {
	Agency  *service.AgencyService
	Agent   *service.AgentService
	Project *service.ProjectService
	User    *service.UserService
	Report  *service.ReportService
	Storage *service.StorageService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库、迁移全部模型并注册审计回调
func initDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.InitDB(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		LogLevel:     cfg.Database.LogLevel,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, log, model.All()...)
	if err != nil {
		return nil, err
	}
	if err := middleware.RegisterAuditCallbacks(db); err != nil {
		return nil, fmt.Errorf("register audit callbacks: %w", err)
	}
	return db, nil
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*Dependencies, error) {
	// -------- Repo 层 --------
	uow := repository.NewListingUnitOfWork(db)

	// -------- 存储服务 --------
	storageSvc, err := initStorageService(cfg, log)
	if err != nil {
		return nil, err
	}

	// -------- 业务服务 --------
	services := &Services{
		Agency:  service.NewAgencyService(uow, log),
		Agent:   service.NewAgentService(uow, log),
		Project: service.NewProjectService(uow, log),
		User:    service.NewUserService(uow.Users, log),
		Report:  service.NewReportService(uow),
		Storage: storageSvc,
	}

	// -------- 定时任务 --------
	tasks := task.NewTaskManager(
		task.TaskManagerDeps{Reports: services.Report},
		task.TaskManagerConfig{VerificationReportCron: cfg.Task.VerificationReportCron},
		log,
	)

	return &Dependencies{
		DB:          db,
		Uow:         uow,
		Services:    services,
		Tasks:       tasks,
		Controllers: initControllers(services, tasks, log),
	}, nil
}

// initStorageService 初始化上传存储
func initStorageService(cfg *config.Config, log *zap.Logger) (*service.StorageService, error) {
	svc, err := service.NewStorageService(service.StorageConfig{
		Provider:     cfg.Storage.Provider,
		Bucket:       cfg.Storage.Bucket,
		Region:       cfg.Storage.Region,
		AccessKey:    cfg.Storage.AccessKey,
		SecretKey:    cfg.Storage.SecretKey,
		Endpoint:     cfg.Storage.Endpoint,
		CDNDomain:    cfg.Storage.CDNDomain,
		BasePath:     cfg.Storage.BasePath,
		PublicURL:    cfg.Storage.PublicURL,
		MaxFiles:     cfg.Upload.MaxFiles,
		MaxFileBytes: cfg.Upload.MaxUploadBytes(),
	}, log)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.Info("存储服务已就绪", zap.String("provider", cfg.Storage.Provider))
	return svc, nil
}

// initControllers 初始化所有控制器
func initControllers(svc *Services, tasks *task.TaskManager, log *zap.Logger) *router.Controllers {
	return &router.Controllers{
		Agency:  controller.NewAgencyController(svc.Agency, log),
		Agent:   controller.NewAgentController(svc.Agent, log),
		Project: controller.NewProjectController(svc.Project, log),
		Upload:  controller.NewUploadController(svc.Storage, log),
		User:    controller.NewUserController(svc.User, log),
		Report:  controller.NewReportController(svc.Report, tasks, log),
	}
}

// routerOptions 路由级配置
func routerOptions(cfg *config.Config) router.Options {
	opts := router.Options{
		Session: middleware.SessionConfig{
			Secret: cfg.Session.Secret,
			Issuer: cfg.Session.Issuer,
		},
		Throttle:       middleware.NewSubmitLimiter(cfg.Submit.Cooldown, cfg.Submit.Burst),
		UploadThrottle: middleware.NewSubmitLimiter(cfg.Submit.Cooldown, cfg.Upload.Burst),
		MaxUploadBytes: cfg.Upload.MaxUploadBytes(),
	}
	if cfg.Storage.Provider == "local" {
		opts.UploadDir = cfg.Storage.BasePath
	}
	return opts
}

// ==================== 服务启动 ====================

// startServer 启动服务，收到退出信号后优雅关闭
func startServer(r *gin.Engine, port string, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 异步启动服务
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务强制关闭", zap.Error(err))
		return
	}

	log.Info("服务已退出")
}
