package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	"github.com/BruksfildServices01/autoimport-crm/internal/config"
	"github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/handlers"
	"github.com/BruksfildServices01/autoimport-crm/internal/identity"
	infraRepo "github.com/BruksfildServices01/autoimport-crm/internal/infra/repository"
	"github.com/BruksfildServices01/autoimport-crm/internal/middleware"
	"github.com/BruksfildServices01/autoimport-crm/internal/timezone"
	ucDashboard "github.com/BruksfildServices01/autoimport-crm/internal/usecase/dashboard"
	ucSubmission "github.com/BruksfildServices01/autoimport-crm/internal/usecase/submission"
)

// Deps reúne a infraestrutura montada no main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Audit  *audit.Dispatcher

	Filters     submission.FilterStore
	Revocations identity.RevocationStore
	Limiter     middleware.RateLimiter

	// opcionais
	Provider identity.Provider
	Avatars  handlers.AvatarUploader
	Notifier ucSubmission.Notifier
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	submissionRepo := infraRepo.NewSubmissionGormRepository(d.DB)
	lookupRepo := infraRepo.NewLookupGormRepository(d.DB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(d.DB)

	provider := d.Provider
	if provider == nil {
		provider = identity.NewLocalProvider(d.DB)
	}
	tokens := identity.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL, d.Revocations)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	listSubmissionsUC := ucSubmission.NewListSubmissions(submissionRepo, lookupRepo)
	updateSubmissionUC := ucSubmission.NewUpdateSubmission(submissionRepo, d.Audit)
	createSubmissionUC := ucSubmission.NewCreatePublicSubmission(
		submissionRepo,
		lookupRepo,
		d.Audit,
		d.Notifier,
		d.Log,
	)
	exportSubmissionsUC := ucSubmission.NewExportSubmissions(listSubmissionsUC, loc)
	filterStateUC := ucSubmission.NewFilterState(d.Filters, listSubmissionsUC)
	statusChangesUC := ucDashboard.NewStatusChanges(dashboardRepo, loc)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(d.DB, createSubmissionUC, lookupRepo, d.Log)
	authHandler := handlers.NewAuthHandler(d.DB, provider, tokens, cfg, d.Audit, d.Log)
	meHandler := handlers.NewMeHandler(d.DB, d.Avatars, d.Log)
	accountHandler := handlers.NewAccountHandler(provider, lookupRepo, d.Audit, d.Log)

	submissionHandler := handlers.NewSubmissionHandler(
		submissionRepo,
		lookupRepo,
		listSubmissionsUC,
		updateSubmissionUC,
		exportSubmissionsUC,
		filterStateUC,
		loc,
		d.Log,
	)

	tagHandler := handlers.NewTagHandler(d.DB, d.Audit, d.Log)
	statusHandler := handlers.NewStatusHandler(d.DB, d.Audit, d.Log)
	contactHandler := handlers.NewContactHandler(d.DB, d.Audit, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, loc, d.Log)
	dashboardHandler := handlers.NewDashboardHandler(statusChangesUC, d.Log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicLimit := middleware.RateLimit(d.Limiter, "public", cfg.PublicRateLimit, cfg.PublicRateWindow, d.Log)

		api.POST("/submissions", publicLimit, publicHandler.CreateSubmission)

		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/contact", publicHandler.Contact)
			publicAPI.GET("/open-status", publicHandler.OpenStatus)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		loginLimit := middleware.RateLimit(d.Limiter, "login", cfg.PublicRateLimit, cfg.PublicRateWindow, d.Log)

		api.POST("/auth/register", loginLimit, authHandler.Register)
		api.POST("/auth/login", loginLimit, authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.POST("/auth/password", authHandler.ChangePassword)

			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.POST("/me/avatar", meHandler.UploadAvatar)

			secured.GET("/accounts", accountHandler.List)
			secured.POST("/accounts", accountHandler.Create)
			secured.DELETE("/accounts", accountHandler.Delete)

			secured.GET("/dashboard/status-counts", dashboardHandler.StatusCounts)
			secured.GET("/dashboard/status-changes", dashboardHandler.StatusChanges)

			admin := secured.Group("/admin")
			{
				// ------------------------------
				// SUBMISSIONS
				// ------------------------------
				admin.GET("/submissions", submissionHandler.List)
				admin.GET("/submissions/export", submissionHandler.Export)
				admin.GET("/submissions/filters", submissionHandler.GetFilters)
				admin.PATCH("/submissions/filters", submissionHandler.PatchFilters)
				admin.DELETE("/submissions/filters", submissionHandler.ResetFilters)
				admin.GET("/submissions/:id", submissionHandler.Get)
				admin.PATCH("/submissions/:id", submissionHandler.Update)

				admin.GET("/referrers", submissionHandler.Referrers)

				// ------------------------------
				// TAGS / STATUSES
				// ------------------------------
				admin.GET("/tags", tagHandler.List)
				admin.POST("/tags", tagHandler.Create)
				admin.PATCH("/tags/:id", tagHandler.Update)
				admin.DELETE("/tags/:id", tagHandler.Delete)

				admin.GET("/statuses", statusHandler.List)
				admin.POST("/statuses", statusHandler.Create)
				admin.PATCH("/statuses/:id", statusHandler.Update)
				admin.DELETE("/statuses/:id", statusHandler.Delete)

				admin.PUT("/contact", contactHandler.Upsert)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
