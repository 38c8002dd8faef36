package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-api/internal/handler"
	"github.com/noah-isme/afterschool-api/internal/middleware"
	"github.com/noah-isme/afterschool-api/internal/models"
	"github.com/noah-isme/afterschool-api/pkg/config"
	"github.com/noah-isme/afterschool-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/afterschool-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/afterschool-api/pkg/middleware/requestid"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Student *handler.StudentHandler
	Teacher *handler.TeacherHandler
	Admin   *handler.AdminHandler
	Metrics *handler.MetricsHandler
}

// Setup builds the gin engine with the global middleware chain and every route group.
func Setup(cfg *config.Config, logr *zap.Logger, tokens middleware.TokenValidator, observer middleware.HTTPObserver, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(observer))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix, middleware.AuditContext())

	auth := api.Group("/auth")
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)

	authed := api.Group("", middleware.JWT(tokens))
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)

	students := authed.Group("/students", middleware.RequireRoles(models.RoleStudent))
	students.GET("/courses", h.Student.ListCourses)
	students.GET("/courses/:courseId", h.Student.GetCourse)
	students.POST("/courses/:courseId/enroll", h.Student.Enroll)
	students.DELETE("/courses/:courseId/enroll", h.Student.Cancel)
	students.GET("/my-courses", h.Student.MyCourses)
	students.GET("/surveys", h.Student.ListSurveys)
	students.GET("/surveys/:surveyId", h.Student.GetSurvey)
	students.POST("/surveys/:surveyId/responses", h.Student.SubmitSurvey)

	teachers := authed.Group("/teachers/courses", middleware.RequireRoles(models.RoleTeacher))
	teachers.POST("", h.Teacher.CreateCourse)
	teachers.GET("/my-courses", h.Teacher.MyCourses)
	teachers.PUT("/:courseId", h.Teacher.UpdateCourse)
	teachers.GET("/:courseId/students", h.Teacher.Students)
	teachers.GET("/:courseId/attendance", h.Teacher.AttendanceSheet)
	teachers.POST("/:courseId/attendance", h.Teacher.RecordAttendance)
	teachers.GET("/:courseId/attendance/export", h.Teacher.ExportAttendance)
	teachers.GET("/:courseId/notices", h.Teacher.ListNotices)
	teachers.POST("/:courseId/notices", h.Teacher.CreateNotice)
	teachers.PUT("/:courseId/notices/:noticeId", h.Teacher.UpdateNotice)
	teachers.DELETE("/:courseId/notices/:noticeId", h.Teacher.DeleteNotice)
	teachers.GET("/:courseId/surveys", h.Teacher.ListSurveys)
	teachers.POST("/:courseId/surveys", h.Teacher.CreateSurvey)
	teachers.GET("/:courseId/surveys/:surveyId/results", h.Teacher.SurveyResults)

	admin := authed.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/users", h.Admin.ListUsers)
	admin.PUT("/users/:userId/role", h.Admin.UpdateUserRole)
	admin.DELETE("/users/:userId", h.Admin.DeleteUser)
	admin.GET("/courses", h.Admin.ListCourses)
	admin.GET("/courses/pending", h.Admin.PendingCourses)
	admin.PUT("/courses/:courseId/status", h.Admin.UpdateCourseStatus)
	admin.POST("/courses/:courseId/end", h.Admin.EndCourse)
	admin.POST("/courses/:courseId/enroll", h.Admin.EnrollStudent)
	admin.DELETE("/courses/:courseId/unenroll/:studentId", h.Admin.UnenrollStudent)
	admin.GET("/notices", h.Admin.ListNotices)
	admin.POST("/notices", h.Admin.CreateNotice)
	admin.PUT("/notices/:noticeId", h.Admin.UpdateNotice)
	admin.DELETE("/notices/:noticeId", h.Admin.DeleteNotice)
	admin.GET("/surveys", h.Admin.ListSurveys)
	admin.POST("/surveys", h.Admin.CreateSurvey)
	admin.GET("/surveys/:surveyId/results", h.Admin.SurveyResults)

	return r
}
