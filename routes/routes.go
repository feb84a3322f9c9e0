package routes

import (
	"github.com/gin-gonic/gin"

	"care-connect/authentication"
	"care-connect/controllers"
	"care-connect/models"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Doctor       *controllers.DoctorController
	Specialty    *controllers.SpecialtyController
	Schedule     *controllers.ScheduleController
	Appointment  *controllers.AppointmentController
	Payment      *controllers.PaymentController
	TokenManager *authentication.TokenManager
}

// SetupRoutes wires the HTTP surface. Groups follow the API modules: auth,
// user, doctor, schedule, doctor-schedule, appointment, payment.
func SetupRoutes(ctl Controllers) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/login", ctl.Auth.Login)
		auth.POST("/refresh-token", ctl.Auth.RefreshToken)
		auth.POST("/forgot-password", ctl.Auth.ForgotPassword)
		auth.POST("/reset-password", ctl.Auth.ResetPassword)
		auth.POST("/change-password",
			authentication.AuthMiddleware(ctl.TokenManager), ctl.Auth.ChangePassword)
	}

	user := api.Group("/user")
	{
		user.POST("/register", ctl.User.RegisterPatient)
		user.GET("/me",
			authentication.AuthMiddleware(ctl.TokenManager), ctl.User.Me)
		user.POST("/create-doctor",
			authentication.AuthMiddleware(ctl.TokenManager, models.RoleAdmin), ctl.User.CreateDoctor)
		user.POST("/create-admin",
			authentication.AuthMiddleware(ctl.TokenManager, models.RoleAdmin), ctl.User.CreateAdmin)
		user.PATCH("/:id/status",
			authentication.AuthMiddleware(ctl.TokenManager, models.RoleAdmin), ctl.User.ChangeStatus)
	}

	patient := api.Group("/patient")
	{
		patient.GET("",
			authentication.AuthMiddleware(ctl.TokenManager, models.RoleAdmin), ctl.User.ListPatients)
	}

	admin := api.Group("/admin")
	{
		admin.GET("",
			authentication.AuthMiddleware(ctl.TokenManager, models.RoleAdmin), ctl.User.ListAdmins)
	}

	doctor := api.Group("/doctor")
	{
		doctor.GET("", ctl.Doctor.ListDoctors)
		doctor.GET("/:id", ctl.Doctor.GetDoctor)
		doctor.DELETE("/:id",
			authentication.AuthMiddleware(ctl.TokenManager, models.RoleAdmin), ctl.Doctor.DeleteDoctor)
	}

	specialties := api.Group("/specialties")
	{
		specialties.GET("", ctl.Specialty.ListSpecialties)
		specialties.POST("",
			authentication.AuthMiddleware(ctl.TokenManager, models.RoleAdmin), ctl.Specialty.CreateSpecialty)
	}

	schedule := api.Group("/schedule")
	{
		schedule.POST("",
			authentication.AuthMiddleware(ctl.TokenManager, models.RoleAdmin), ctl.Schedule.CreateSchedules)
		schedule.GET("",
			authentication.AuthMiddleware(ctl.TokenManager), ctl.Schedule.ListSchedules)
	}

	doctorSchedule := api.Group("/doctor-schedule")
	doctorSchedule.Use(authentication.AuthMiddleware(ctl.TokenManager, models.RoleDoctor))
	{
		doctorSchedule.POST("", ctl.Schedule.SelectSchedules)
		doctorSchedule.GET("/my-schedules", ctl.Schedule.MySchedules)
		doctorSchedule.DELETE("/:schedule_id", ctl.Schedule.RemoveSchedule)
	}

	appointment := api.Group("/appointment")
	{
		appointment.POST("",
			authentication.AuthMiddleware(ctl.TokenManager, models.RolePatient), ctl.Appointment.BookAppointment)
		appointment.GET("/my-appointments",
			authentication.AuthMiddleware(ctl.TokenManager, models.RolePatient), ctl.Appointment.MyAppointments)
		appointment.GET("/doctor-appointments",
			authentication.AuthMiddleware(ctl.TokenManager, models.RoleDoctor), ctl.Appointment.DoctorAppointments)
		appointment.POST("/:id/complete",
			authentication.AuthMiddleware(ctl.TokenManager, models.RoleDoctor), ctl.Appointment.CompleteAppointment)
		appointment.POST("/:id/cancel",
			authentication.AuthMiddleware(ctl.TokenManager, models.RolePatient, models.RoleDoctor, models.RoleAdmin), ctl.Appointment.CancelAppointment)
	}

	payment := api.Group("/payment")
	payment.Use(authentication.AuthMiddleware(ctl.TokenManager, models.RolePatient))
	{
		payment.POST("/initiate", ctl.Payment.InitiatePayment)
		payment.POST("/confirm", ctl.Payment.ConfirmPayment)
	}

	return r
}
