package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/learnhub-app/lms-api/internal/handler"
	"github.com/learnhub-app/lms-api/internal/middleware"
	"github.com/learnhub-app/lms-api/internal/models"
	"github.com/learnhub-app/lms-api/internal/service"
	"github.com/learnhub-app/lms-api/pkg/config"
	"github.com/learnhub-app/lms-api/pkg/logger"
	corsmiddleware "github.com/learnhub-app/lms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/learnhub-app/lms-api/pkg/middleware/requestid"
)

// Deps collects everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *zap.Logger
	AuthService *service.AuthService
	Metrics     *service.MetricsService

	Auth        *handler.AuthHandler
	Courses     *handler.CourseHandler
	Lectures    *handler.LectureHandler
	Assignments *handler.AssignmentHandler
	Messages    *handler.MessageHandler
	Admin       *handler.AdminHandler
	Upload      *handler.UploadHandler
	Files       *handler.FilesHandler
}

// New builds the gin engine with all routes registered.
func New(d Deps) *gin.Engine {
	if d.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	auth := middleware.JWT(d.AuthService)
	api := r.Group(d.Config.APIPrefix)

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)
	api.GET("/auth/me", auth, d.Auth.Me)

	api.GET("/courses", d.Courses.List)
	api.GET("/courses/:id", d.Courses.Get)
	api.POST("/courses", auth, d.Courses.Create)
	api.PUT("/courses/:id", auth, d.Courses.Update)
	api.DELETE("/courses/:id", auth, d.Courses.Delete)
	api.GET("/my-courses", auth, d.Courses.MyCourses)
	api.POST("/courses/:id/enroll", auth, d.Courses.Enroll)
	api.GET("/courses/:id/check-enrollment", auth, d.Courses.CheckEnrollment)

	api.GET("/courses/:id/lectures", d.Lectures.List)
	api.POST("/courses/:id/lectures", auth, d.Lectures.Add)
	api.DELETE("/lectures/:id", auth, d.Lectures.Delete)

	api.GET("/courses/:id/assignments", auth, d.Assignments.ListForCourse)
	api.POST("/courses/:id/assignments", auth, d.Assignments.Create)
	api.DELETE("/assignments/:id", auth, d.Assignments.Delete)
	api.POST("/assignments/:id/submit", auth, d.Assignments.Submit)
	api.PUT("/assignments/:id/submit", auth, d.Assignments.UpdateSubmission)
	api.GET("/assignments/submitted", auth, d.Assignments.ListSubmitted)
	api.GET("/submissions/:assignment_id", auth, d.Assignments.SubmissionsByAssignment)

	api.POST("/courses/:id/messages", auth, d.Messages.Post)
	api.GET("/courses/:id/messages", d.Messages.List)

	admin := api.Group("/admin", auth, middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/users", d.Admin.ListUsers)
	admin.DELETE("/users/:id", d.Admin.DeleteUser)

	api.POST("/upload", auth, d.Upload.Upload)
	if d.Files != nil {
		api.GET("/uploads/:name", d.Files.Download)
	}

	return r
}
