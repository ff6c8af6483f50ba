package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	availabilityRepo "slotwise/database/repository/availability"
	bookingRepo "slotwise/database/repository/booking"
	notificationRepo "slotwise/database/repository/notification"
	paymentRepo "slotwise/database/repository/payment"
	providerRepo "slotwise/database/repository/provider"
	walletRepo "slotwise/database/repository/wallet"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/booking"
	"slotwise/services/notification"
	"slotwise/services/payment"
	"slotwise/services/reporting"
	"slotwise/services/tasks"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitRateLimitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(&middleware.RedisLimiterStore{
		Client:         utils.GetRateLimitClient(),
		RequestsPerMin: config.AppConfig.MaxRequestsPerMin,
	}))
	routes.SetupCORS(router)
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()
	wltRepo := walletRepo.NewMongoWalletRepo()
	payRepo := paymentRepo.NewMongoPaymentRepo()
	provRepo := providerRepo.NewMongoProviderRepo()
	notifRepo := notificationRepo.NewMongoNotificationRepo()

	// payment gateway.
	var gateway payment.Gateway
	gatewayName := config.AppConfig.PaymentGateway
	switch gatewayName {
	case "stripe":
		gateway = payment.NewStripeGateway(
			config.AppConfig.DefaultCurrency,
			config.AppConfig.StripeWebhookSecret,
			config.AppConfig.CheckoutSuccessURL,
			config.AppConfig.CheckoutCancelURL,
			config.AppConfig.CreditPriceCents,
		)
	default:
		gatewayName = "mock"
		gateway = payment.NewMockGateway()
	}
	logger.Sugar().Infof("Using %s payment gateway", gatewayName)

	// services.
	notifService := notification.NewNotificationService(notifRepo)
	scheduler := tasks.NewAsynqScheduler()
	defer scheduler.Close()

	bookingService := &booking.DefaultBookingService{
		AvailabilityRepo: availRepo,
		BookingRepo:      bkRepo,
		WalletRepo:       wltRepo,
		PaymentRepo:      payRepo,
		ProviderRepo:     provRepo,
		Notifier:         notifService,
		Gateway:          gateway,
		GatewayName:      gatewayName,
		Scheduler:        scheduler,
		LookaheadDays:    config.AppConfig.LookaheadDays,
		CreditPriceCents: config.AppConfig.CreditPriceCents,
		ReminderLead:     time.Duration(config.AppConfig.ReminderLeadMins) * time.Minute,
	}

	reportingService := reporting.NewReportingService(bkRepo, provRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Bookings:         bookingService,
		Reports:          reportingService,
		ProviderRepo:     provRepo,
		AvailabilityRepo: availRepo,
		BookingRepo:      bkRepo,
		NotificationRepo: notifRepo,
		MaxTopupCredits:  config.AppConfig.MaxTopupCredits,
	}

	routes.RegisterPublicRoutes(router, handlerBundle)
	routes.RegisterProviderRoutes(router, handlerBundle)
	routes.RegisterWebhookRoutes(router, handlerBundle)
	routes.RegisterHealthRoute(router)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker(notifService)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetRateLimitClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
