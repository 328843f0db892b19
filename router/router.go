package router

import (
	"log"
	"net/http"

	"surv/controllers"
	"surv/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares: public routes, the
// unauthenticated Twilio webhook, authenticated routes and
// dispatcher-only (admin/manager) routes.
func Initialize(r *gin.Engine) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")

	// Twilio webhook - authenticated by sender phone number, not JWT
	api.POST("/sms/webhook", Logger(), controllers.SMSWebhook)

	// Public (no auth)
	api.POST("/login", Logger(), controllers.Login)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	// Validated routes (token + active user)
	validated := auth.Group("")
	validated.Use(Authorizer())

	validated.GET("/me", Logger(), controllers.Me)
	validated.GET("/users", Logger(), controllers.GetUsers)
	validated.GET("/users/:id", Logger(), controllers.GetUserByID)

	// Customers
	validated.GET("/customers", Logger(), controllers.GetCustomers)
	validated.GET("/customers/:id", Logger(), controllers.GetCustomerByID)
	validated.POST("/customers", Logger(), controllers.CreateCustomer)
	validated.PUT("/customers/:id", Logger(), controllers.UpdateCustomer)

	// Jobs
	validated.GET("/jobs", Logger(), controllers.GetJobs)
	validated.GET("/jobs/:id", Logger(), controllers.GetJobByID)
	validated.POST("/jobs", Logger(), controllers.CreateJob)
	validated.PUT("/jobs/:id", Logger(), controllers.UpdateJob)

	// Recurring jobs (reads)
	validated.GET("/recurring-jobs", Logger(), controllers.GetRecurringJobs)

	// Time tracking
	validated.GET("/time-entries", Logger(), controllers.GetTimeEntries)
	validated.POST("/time-entries", Logger(), controllers.CreateTimeEntry)

	// SMS history
	validated.GET("/sms/messages/:jobId", Logger(), controllers.GetJobMessages)
	validated.GET("/sms/timeline/:jobId", Logger(), controllers.GetJobTimeline)

	// Dispatcher routes (admin or manager)
	dispatch := validated.Group("")
	dispatch.Use(Dispatcher())

	dispatch.POST("/users", Logger(), controllers.CreateUser)
	dispatch.DELETE("/customers/:id", Logger(), controllers.DeleteCustomer)
	dispatch.DELETE("/jobs/:id", Logger(), controllers.DeleteJob)

	dispatch.POST("/recurring-jobs", Logger(), controllers.CreateRecurringJob)
	dispatch.POST("/recurring-jobs/:id/generate", Logger(), controllers.GenerateRecurringJobs)
	dispatch.DELETE("/recurring-jobs/:id", Logger(), controllers.DeleteRecurringJob)

	log.Printf("Routes initialized")
}
