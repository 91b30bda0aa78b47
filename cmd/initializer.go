package main

import (
	"database/sql"
	"log"
	"os"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"nyumbaBack/internal/config"
	"nyumbaBack/internal/handlers"
	"nyumbaBack/internal/repositories"
	"nyumbaBack/internal/services"
	"nyumbaBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	tokens   *utils.Manager
	sessions *repositories.SessionStore

	wsManager *WebSocketManager

	subscriptionService *services.SubscriptionService
	maintenanceService  *services.MaintenanceService
	messageService      *services.MessageService

	userHandler         *handlers.UserHandler
	propertyHandler     *handlers.PropertyHandler
	serviceHandler      *handlers.ServiceHandler
	categoryHandler     *handlers.CategoryHandler
	cityHandler         *handlers.CityHandler
	bookingHandler      *handlers.BookingHandler
	chatHandler         *handlers.ChatHandler
	messageHandler      *handlers.MessageHandler
	reviewHandler       *handlers.ReviewHandler
	favoriteHandler     *handlers.FavoriteHandler
	paymentHandler      *handlers.PaymentHandler
	subscriptionHandler *handlers.SubscriptionHandler
	maintenanceHandler  *handlers.MaintenanceHandler
	notificationHandler *handlers.NotificationHandler
	complaintHandler    *handlers.ComplaintHandler
	adminHandler        *handlers.AdminHandler
	imageHandler        *handlers.ImageHandler
}

func initializeApp(db *sql.DB, rdb *redis.Client, fcm *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	tokens, err := utils.NewManager(os.Getenv("JWT_SIGNING_KEY"))
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := &repositories.UserRepository{DB: db}
	sessions := &repositories.SessionStore{Rdb: rdb}
	propertyRepo := &repositories.PropertyRepository{DB: db}
	serviceRepo := &repositories.ServiceRepository{DB: db}
	categoryRepo := &repositories.CategoryRepository{DB: db}
	cityRepo := &repositories.CityRepository{DB: db}
	bookingRepo := &repositories.BookingRepository{DB: db}
	chatRepo := &repositories.ChatRepository{Db: db}
	messageRepo := &repositories.MessageRepository{Db: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}
	favoriteRepo := &repositories.FavoriteRepository{DB: db}
	paymentRepo := &repositories.PaymentRepository{DB: db}
	subscriptionRepo := &repositories.SubscriptionRepository{DB: db}
	maintenanceRepo := &repositories.MaintenanceRepository{DB: db}
	notificationRepo := &repositories.NotificationRepository{DB: db}
	complaintRepo := &repositories.ComplaintRepository{DB: db}
	adminRepo := &repositories.AdminRepository{DB: db}

	// External clients
	sms := services.NewSMSClient(os.Getenv("SMS_API_KEY"), cfg.SMS.Endpoint)
	momo, err := services.NewMomoService(services.MomoConfig{
		BaseURL:           cfg.Momo.BaseURL,
		SubscriptionKey:   os.Getenv("MOMO_SUBSCRIPTION_KEY"),
		APIUser:           os.Getenv("MOMO_API_USER"),
		APIKey:            os.Getenv("MOMO_API_KEY"),
		TargetEnvironment: cfg.Momo.TargetEnvironment,
		CallbackURL:       cfg.Momo.CallbackURL,
		Currency:          cfg.Momo.Currency,
	})
	if err != nil {
		return nil, err
	}

	wsManager := NewWebSocketManager()

	// Services
	notificationService := &services.NotificationService{NotificationRepo: notificationRepo, FCM: fcm}
	userService := &services.UserService{UserRepo: userRepo, Sessions: sessions, SMS: sms, Tokens: tokens}
	subscriptionService := &services.SubscriptionService{SubscriptionRepo: subscriptionRepo, ServiceRepo: serviceRepo}
	propertyService := &services.PropertyService{PropertyRepo: propertyRepo, ServiceRepo: serviceRepo, SubService: subscriptionService, UserRepo: userRepo}
	serviceService := &services.ServiceService{ServiceRepo: serviceRepo, CategoryRepo: categoryRepo, SubService: subscriptionService, UserRepo: userRepo}
	categoryService := &services.CategoryService{CategoryRepo: categoryRepo}
	cityService := &services.CityService{CityRepo: cityRepo}
	bookingService := &services.BookingService{BookingRepo: bookingRepo, ServiceRepo: serviceRepo, PropertyRepo: propertyRepo, Notifications: notificationService}
	chatService := &services.ChatService{ChatRepo: chatRepo}
	messageService := &services.MessageService{MessageRepo: messageRepo, ChatRepo: chatRepo, Hub: wsManager, Notifications: notificationService}
	reviewService := &services.ReviewService{ReviewRepo: reviewRepo, PropertyRepo: propertyRepo, ServiceRepo: serviceRepo}
	favoriteService := &services.FavoriteService{FavoriteRepo: favoriteRepo, PropertyRepo: propertyRepo, ServiceRepo: serviceRepo}
	paymentService := &services.PaymentService{PaymentRepo: paymentRepo, BookingRepo: bookingRepo, Subscriptions: subscriptionService, Momo: momo, Notifications: notificationService}
	maintenanceService := &services.MaintenanceService{MaintenanceRepo: maintenanceRepo, PropertyRepo: propertyRepo, Notifications: notificationService}
	complaintService := &services.ComplaintService{ComplaintRepo: complaintRepo}
	adminService := &services.AdminService{AdminRepo: adminRepo, UserRepo: userRepo, PropertyRepo: propertyRepo, ServiceRepo: serviceRepo, BookingRepo: bookingRepo, PaymentRepo: paymentRepo, Notifications: notificationService}

	return &application{
		errorLog: errorLog,
		infoLog:  infoLog,
		db:       db,

		tokens:   tokens,
		sessions: sessions,

		wsManager: wsManager,

		subscriptionService: subscriptionService,
		maintenanceService:  maintenanceService,
		messageService:      messageService,

		userHandler:         &handlers.UserHandler{Service: userService},
		propertyHandler:     &handlers.PropertyHandler{Service: propertyService},
		serviceHandler:      &handlers.ServiceHandler{Service: serviceService},
		categoryHandler:     &handlers.CategoryHandler{Service: categoryService},
		cityHandler:         &handlers.CityHandler{Service: cityService},
		bookingHandler:      &handlers.BookingHandler{Service: bookingService},
		chatHandler:         &handlers.ChatHandler{Service: chatService},
		messageHandler:      &handlers.MessageHandler{Service: messageService},
		reviewHandler:       &handlers.ReviewHandler{Service: reviewService},
		favoriteHandler:     &handlers.FavoriteHandler{Service: favoriteService},
		paymentHandler:      &handlers.PaymentHandler{Service: paymentService},
		subscriptionHandler: &handlers.SubscriptionHandler{Service: subscriptionService},
		maintenanceHandler:  &handlers.MaintenanceHandler{Service: maintenanceService},
		notificationHandler: &handlers.NotificationHandler{Service: notificationService},
		complaintHandler:    &handlers.ComplaintHandler{Service: complaintService},
		adminHandler:        &handlers.AdminHandler{Service: adminService},
		imageHandler:        &handlers.ImageHandler{},
	}, nil
}
