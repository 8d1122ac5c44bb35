package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"agendakids/config"
	"agendakids/middleware"
	"agendakids/services/agenda/delivery"
	"agendakids/services/agenda/repository"
	"agendakids/services/agenda/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"go.mau.fi/whatsmeow"
)

var log *logrus.Logger
var wg sync.WaitGroup

const requestTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on process environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	// CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID",
	}))

	ctx := context.Background()

	db, err := config.BootDB(ctx)
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	resolver := middleware.NewIdentityResolver()
	ownershipChecks := config.OwnershipChecks()

	// Repositories
	childRepo := repository.NewChildRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	// Reminder channels; both optional
	var dialer *gomail.Dialer
	var emailSender string
	if d, sender, err := config.InitEmailer(); err != nil {
		log.Warnf("Email channel disabled: %v", err)
	} else {
		dialer = d
		emailSender = sender
	}

	var meow *whatsmeow.Client
	if config.RemindersEnabled() {
		meow, err = config.InitWhatsapp(ctx)
		if err != nil {
			log.Warnf("WhatsApp channel disabled: %v", err)
		}
	}

	senderRepo := repository.NewSenderRepository(dialer, emailSender, meow, log)

	// Usecases
	childUC := usecase.NewChildUseCase(childRepo, ownershipChecks, requestTimeout)
	scheduleUC := usecase.NewScheduleUseCase(scheduleRepo, childRepo, ownershipChecks, requestTimeout)
	authUC := usecase.NewAuthUseCase(userRepo, requestTimeout)
	reminderUC := usecase.NewReminderUseCase(reminderRepo, senderRepo, config.GetReminderLead(), log, time.Minute)

	// Delivery
	delivery.NewAuthHandler(app, authUC)
	delivery.NewChildHandler(app, childUC, resolver)
	delivery.NewScheduleHandler(app, scheduleUC, resolver)
	delivery.NewReminderHandler(app, reminderUC, resolver)

	// Background reminder ticker, off unless configured
	stopTicker := make(chan struct{})
	if config.RemindersEnabled() && config.GetReminderInterval() > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(config.GetReminderInterval())
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					result, err := reminderUC.DispatchAll(context.Background())
					if err != nil {
						log.Errorf("Reminder dispatch failed: %v", err)
						continue
					}
					log.Infof("Dispatched %d reminders", result.Dispatched)
				case <-stopTicker:
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server for Public on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, os.Kill)

	<-signalChan

	log.Info("Shutting down the server...")

	close(stopTicker)

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	db.Close()
	log.Info("Server shut down gracefully")
}
