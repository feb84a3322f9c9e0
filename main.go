package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"care-connect/authentication"
	"care-connect/configuration"
	"care-connect/controllers"
	"care-connect/database"
	"care-connect/email"
	"care-connect/routes"
	"care-connect/services"
)

func main() {
	cfg, err := configuration.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	db, err := configuration.ConfigDB(cfg)
	if err != nil {
		log.Fatal("failed to set up database: ", err)
	}
	defer func() {
		if err := configuration.CloseDB(db); err != nil {
			log.Println("failed to close database:", err)
		}
	}()

	redisClient, err := configuration.InitRedis(cfg)
	if err != nil {
		log.Fatal("failed to set up redis: ", err)
	}
	defer redisClient.Close()

	// data access
	userDAO := database.NewUserDAO(db)
	doctorDAO := database.NewDoctorDAO(db)
	scheduleDAO := database.NewScheduleDAO(db)
	doctorScheduleDAO := database.NewDoctorScheduleDAO(db)
	appointmentDAO := database.NewAppointmentDAO(db)
	paymentDAO := database.NewPaymentDAO(db)
	specialtyDAO := database.NewSpecialtyDAO(db)
	resetMarker := database.NewResetMarker(redisClient)

	// collaborators
	tokenManager := authentication.NewTokenManager(cfg.JWTSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.ResetTokenTTL)
	mailer := email.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	gateway := services.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpaySecret)

	// services
	authService := services.NewAuthService(userDAO, tokenManager, resetMarker, mailer,
		cfg.ResetTokenTTL, cfg.ResetPassLink)
	userService := services.NewUserService(userDAO)
	bookingService := services.NewBookingService(doctorDAO, doctorDAO, userDAO, doctorScheduleDAO, appointmentDAO, mailer)
	scheduleService := services.NewScheduleService(scheduleDAO, doctorScheduleDAO, doctorDAO)
	paymentService := services.NewPaymentService(paymentDAO, appointmentDAO, userDAO, gateway)

	r := routes.SetupRoutes(routes.Controllers{
		Auth:         controllers.NewAuthController(authService),
		User:         controllers.NewUserController(userService, userDAO),
		Doctor:       controllers.NewDoctorController(doctorDAO),
		Specialty:    controllers.NewSpecialtyController(specialtyDAO),
		Schedule:     controllers.NewScheduleController(scheduleService),
		Appointment:  controllers.NewAppointmentController(bookingService, doctorDAO),
		Payment:      controllers.NewPaymentController(paymentService),
		TokenManager: tokenManager,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("listening on :" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("forced shutdown:", err)
	}
}
