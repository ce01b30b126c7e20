package routes

import (
	"os"
	"strings"

	"salonbill-backend/config"
	"salonbill-backend/controllers"
	"salonbill-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := allowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.GetMe)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
			customers.POST("/:id/membership", controllers.AssignMembership)
			customers.DELETE("/:id/membership", controllers.RemoveMembership)
		}

		// Catalog routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		packages := api.Group("/packages")
		{
			packages.POST("", controllers.CreatePackage)
			packages.GET("", controllers.GetPackages)
			packages.PUT("/:id", controllers.UpdatePackage)
			packages.DELETE("/:id", controllers.DeletePackage)
		}

		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		employees := api.Group("/employees")
		{
			employees.POST("", controllers.CreateEmployee)
			employees.GET("", controllers.GetEmployees)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)
		}

		// Billing-settings routes
		taxGroups := api.Group("/tax-groups")
		{
			taxGroups.POST("", controllers.CreateTaxGroup)
			taxGroups.GET("", controllers.GetTaxGroups)
			taxGroups.PUT("/:id", controllers.UpdateTaxGroup)
			taxGroups.DELETE("/:id", controllers.DeleteTaxGroup)
		}

		paymentModes := api.Group("/payment-modes")
		{
			paymentModes.POST("", controllers.CreatePaymentMode)
			paymentModes.GET("", controllers.GetPaymentModes)
			paymentModes.DELETE("/:id", controllers.DeletePaymentMode)
		}

		memberships := api.Group("/memberships")
		{
			memberships.POST("", controllers.CreateMembership)
			memberships.GET("", controllers.GetMemberships)
			memberships.PUT("/:id", controllers.UpdateMembership)
			memberships.DELETE("/:id", controllers.DeleteMembership)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("/preview", controllers.PreviewInvoice)
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		// Report routes
		reports := api.Group("/reports")
		{
			reports.GET("/revenue", controllers.GetRevenueReport)
			reports.GET("/tax", controllers.GetTaxReport)
			reports.GET("/staff", controllers.GetStaffRevenueReport)
			reports.GET("/items", controllers.GetItemRevenueReport)
			reports.GET("/payment-modes", controllers.GetPaymentModeReport)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboard)

		// Profile routes
		profile := api.Group("/profile")
		{
			profile.PUT("/salon", controllers.UpdateSalonProfile)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}

		// Reminder routes
		reminders := api.Group("/reminders")
		{
			reminders.POST("/templates", controllers.CreateReminderTemplate)
			reminders.GET("/templates", controllers.GetReminderTemplates)
			reminders.PUT("/templates/:id", controllers.UpdateReminderTemplate)
			reminders.DELETE("/templates/:id", controllers.DeleteReminderTemplate)
			reminders.GET("/logs", controllers.GetReminderLogs)
		}
	}

	return r
}
