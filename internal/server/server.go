package server

import (
	"net/http"
	"strings"
	"time"

	"anoa.com/sccams/internal/config"
	"anoa.com/sccams/internal/entity"
	"anoa.com/sccams/internal/middleware"

	appointmentHttp "anoa.com/sccams/internal/modules/appointment/delivery/http"
	appointmentRepo "anoa.com/sccams/internal/modules/appointment/repository"
	appointmentService "anoa.com/sccams/internal/modules/appointment/service"

	authHttp "anoa.com/sccams/internal/modules/auth/delivery/http"
	authService "anoa.com/sccams/internal/modules/auth/service"

	personnelHttp "anoa.com/sccams/internal/modules/personnel/delivery/http"
	personnelRepo "anoa.com/sccams/internal/modules/personnel/repository"
	personnelService "anoa.com/sccams/internal/modules/personnel/service"

	searchService "anoa.com/sccams/internal/modules/search/service"

	statHttp "anoa.com/sccams/internal/modules/stat/delivery/http"
	statService "anoa.com/sccams/internal/modules/stat/service"

	"anoa.com/sccams/pkg/hash"
	"anoa.com/sccams/pkg/ratelimit"
	"anoa.com/sccams/pkg/storage"
	"anoa.com/sccams/pkg/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
}

// Dependencies are the collaborators the routes are built from.
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	Tokens  *token.Manager
	Hasher  hash.Hasher
	Storage storage.ImageStorage
	Indexer searchService.Indexer
	Limiter *ratelimit.Limiter

	Students       personnelRepo.Repository[entity.Student]
	Teachers       personnelRepo.Repository[entity.Teacher]
	Administrators personnelRepo.Repository[entity.Administrator]
	Utilities      personnelRepo.Repository[entity.Utility]
	Appointments   appointmentRepo.AppointmentRepository
}

// NewServer wires the production collaborators: postgres repositories,
// Cloudinary, and the optional redis and meilisearch backends.
func NewServer(cfg *config.Config, logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	imageStorage, err := storage.NewCloudinaryStorage(storage.CloudinaryConfig{
		CloudName:    cfg.CloudinaryCloudName,
		APIKey:       cfg.CloudinaryAPIKey,
		APISecret:    cfg.CloudinaryAPISecret,
		UploadFolder: cfg.CloudinaryUploadFolder,
	})
	if err != nil {
		return nil, err
	}

	return New(Dependencies{
		Config:  cfg,
		Logger:  logger,
		Tokens:  token.NewManager(cfg.JWTSecret, cfg.AdminTokenTTL, cfg.TeacherTokenTTL),
		Hasher:  hash.NewBcryptHasher(cfg.BcryptCost),
		Storage: imageStorage,
		Indexer: newIndexer(cfg, logger),
		Limiter: ratelimit.NewLimiter(redisClient, cfg.LoginRateLimit, cfg.LoginRateWindow),

		Students:       personnelRepo.NewRepository[entity.Student](db),
		Teachers:       personnelRepo.NewRepository[entity.Teacher](db),
		Administrators: personnelRepo.NewRepository[entity.Administrator](db),
		Utilities:      personnelRepo.NewRepository[entity.Utility](db),
		Appointments:   appointmentRepo.NewAppointmentRepository(db),
	}), nil
}

func newIndexer(cfg *config.Config, logger *zap.Logger) searchService.Indexer {
	host := cfg.MeiliSearchHost
	if host == "" {
		logger.Info("MEILISEARCH_HOST not set, search indexing disabled")
		return searchService.NewNoopIndexer()
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}

	client := meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	return searchService.NewMeiliIndexer(client, logger)
}

// New builds the router from d.
func New(d Dependencies) *Server {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := d.Config

	studentSvc := personnelService.NewService(d.Students, d.Hasher, d.Storage, d.Indexer, logger)
	teacherSvc := personnelService.NewService(d.Teachers, d.Hasher, d.Storage, d.Indexer, logger)
	administratorSvc := personnelService.NewService(d.Administrators, d.Hasher, d.Storage, d.Indexer, logger)
	utilitySvc := personnelService.NewService(d.Utilities, d.Hasher, d.Storage, d.Indexer, logger)

	studentHandler := personnelHttp.NewPersonnelHandler(studentSvc, logger)
	teacherHandler := personnelHttp.NewPersonnelHandler(teacherSvc, logger)
	administratorHandler := personnelHttp.NewPersonnelHandler(administratorSvc, logger)
	utilityHandler := personnelHttp.NewPersonnelHandler(utilitySvc, logger)

	lookupSvc := personnelService.NewLookupService(d.Students, d.Teachers, d.Administrators, d.Utilities)
	lookupHandler := personnelHttp.NewLookupHandler(lookupSvc, logger)

	appointmentSvc := appointmentService.NewAppointmentService(d.Appointments)
	appointmentHandler := appointmentHttp.NewAppointmentHandler(appointmentSvc, logger)

	statSvc := statService.NewStatService(d.Students, d.Teachers, d.Administrators, d.Utilities, d.Appointments)
	statHandler := statHttp.NewStatHandler(statSvc, logger)

	authSvc := authService.NewAuthService(
		authService.AdminIdentity{Email: cfg.AdminEmail, Password: cfg.AdminPassword},
		d.Tokens, d.Teachers, d.Hasher, d.Indexer, logger,
	)
	authHandler := authHttp.NewAuthHandler(authSvc, logger)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Working")
	})

	api := router.Group("/api")

	// Public routes
	api.POST("/admin/login", middleware.RateLimit(d.Limiter, "admin_login", logger), authHandler.AdminLogin)
	api.POST("/teacher/login", middleware.RateLimit(d.Limiter, "teacher_login", logger), authHandler.TeacherLogin)

	// Admin panel
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(d.Tokens, cfg.AdminEmail))
	{
		studentHandler.Register(adminGroup)
		teacherHandler.Register(adminGroup)
		administratorHandler.Register(adminGroup)
		utilityHandler.Register(adminGroup)

		adminGroup.PUT("/update-administrator/:id", administratorHandler.Update)
		adminGroup.PUT("/update-utility/:id", utilityHandler.Update)

		adminGroup.GET("/rfid-scan/:code", studentHandler.FindByCode)
		adminGroup.GET("/user/code/:code", lookupHandler.FindUserByCode)

		adminGroup.GET("/dashboard", statHandler.Dashboard)
		adminGroup.GET("/appointments", appointmentHandler.List)
		adminGroup.POST("/cancel-appointment", appointmentHandler.Cancel)
	}

	// Teacher routes
	teacherGroup := api.Group("/teacher")
	teacherGroup.Use(middleware.RequireTeacher(d.Tokens))
	{
		teacherGroup.GET("/profile", authHandler.TeacherProfile)
	}

	return &Server{engine: router}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.AdminTokenHeader},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
