package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campusportal/internal/app/controllers"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/middleware"
)

// Controllers groups every HTTP controller the router mounts
type Controllers struct {
	Auth       *controllers.AuthController
	Course     *controllers.CourseController
	Enrollment *controllers.EnrollmentController
	Withdrawal *controllers.WithdrawalController
	Finance    *controllers.FinanceController
	News       *controllers.NewsController
	Gallery    *controllers.GalleryController
	Report     *controllers.ReportController
	User       *controllers.UserController
	Upload     *controllers.UploadController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.Auth.SignUp)
		auth.POST("/signin", c.Auth.SignIn)
	}
	v1.GET("/news", c.News.ListNews)
	v1.GET("/news/:id", c.News.GetNews)
	v1.GET("/gallery", c.Gallery.ListItems)
	v1.GET("/reports", c.Report.ListReports)

	// --- Any authenticated profile ---
	member := v1.Group("", authMiddleware.SessionAuth(), authMiddleware.RequireRoles())
	{
		member.GET("/auth/me", c.Auth.Me)
		member.GET("/courses", c.Course.ListCourses)
		member.GET("/courses/:id", c.Course.GetCourse)

		// ownership is checked by the withdrawal service
		member.POST("/withdrawals", c.Withdrawal.RequestWithdrawal)
		member.DELETE("/withdrawals/:id", c.Withdrawal.DeleteWithdrawal)

		me := member.Group("/me")
		{
			me.GET("/courses", c.User.MyCourses)
			me.GET("/withdrawals", c.User.MyWithdrawals)
			me.GET("/scholarships", c.User.MyScholarships)
			me.GET("/allowances", c.User.MyAllowances)
		}
	}

	// --- Admin dashboard ---
	admin := v1.Group("", authMiddleware.SessionAuth(), authMiddleware.RequireRoles(models.RoleAdmin))
	{
		courses := admin.Group("/courses")
		{
			courses.POST("", c.Course.CreateCourse)
			courses.PUT("/:id", c.Course.UpdateCourse)
			courses.DELETE("/:id", c.Course.DeleteCourse)
			courses.GET("/:id/enrollments", c.Course.ListEnrollments)
			courses.POST("/:id/bulk-withdrawals", c.Course.BulkWithdraw)
			courses.POST("/remove-student", c.Course.RemoveStudent)
		}

		enrollments := admin.Group("/enrollments")
		{
			enrollments.POST("", c.Enrollment.AssignCourse)
			enrollments.DELETE("/:id", c.Enrollment.RemoveCourse)
		}

		withdrawals := admin.Group("/withdrawals")
		{
			withdrawals.GET("", c.Withdrawal.ListWithdrawals)
			withdrawals.POST("/admin", c.Withdrawal.AdminWithdraw)
			withdrawals.PUT("/:id/status", c.Withdrawal.UpdateStatus)
		}

		scholarships := admin.Group("/scholarships")
		{
			scholarships.GET("", c.Finance.ListScholarships)
			scholarships.POST("", c.Finance.CreateScholarship)
			scholarships.PUT("/:id", c.Finance.UpdateScholarship)
			scholarships.DELETE("/:id", c.Finance.DeleteScholarship)
		}

		allowances := admin.Group("/allowances")
		{
			allowances.GET("", c.Finance.ListAllowances)
			allowances.POST("", c.Finance.CreateAllowance)
			allowances.PUT("/:id", c.Finance.UpdateAllowance)
			allowances.DELETE("/:id", c.Finance.DeleteAllowance)
		}

		news := admin.Group("/news")
		{
			news.POST("", c.News.CreateNews)
			news.PUT("/:id", c.News.UpdateNews)
			news.DELETE("/:id", c.News.DeleteNews)
		}

		gallery := admin.Group("/gallery")
		{
			gallery.POST("", c.Gallery.CreateItem)
			gallery.PUT("/:id", c.Gallery.UpdateItem)
			gallery.DELETE("/:id", c.Gallery.DeleteItem)
		}

		users := admin.Group("/users")
		{
			users.GET("", c.User.ListUsers)
			users.GET("/:id", c.User.GetUserDetail)
		}

		admin.POST("/uploads/images", c.Upload.UploadImage)
	}

	// --- Admin and teacher ---
	staff := v1.Group("", authMiddleware.SessionAuth(), authMiddleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
	{
		reports := staff.Group("/reports")
		{
			reports.POST("", c.Report.CreateReport)
			reports.PUT("/:id", c.Report.UpdateReport)
			reports.DELETE("/:id", c.Report.DeleteReport)
		}
		staff.POST("/uploads/files", c.Upload.UploadDocument)
	}

	// path used by the existing dashboard client
	router.POST("/api/courses/remove-student",
		authMiddleware.SessionAuth(), authMiddleware.RequireRoles(models.RoleAdmin), c.Course.RemoveStudent)
}
