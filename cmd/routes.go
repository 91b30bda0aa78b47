package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	providerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("provider"))
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Auth
	mux.Post("/api/auth/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/api/auth/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/api/auth/sign_out", authMiddleware.ThenFunc(app.userHandler.SignOut))
	mux.Post("/api/auth/verify_phone", standardMiddleware.ThenFunc(app.userHandler.VerifyPhone))
	mux.Post("/api/auth/resend_code", standardMiddleware.ThenFunc(app.userHandler.ResendCode))
	mux.Post("/api/auth/request_reset", standardMiddleware.ThenFunc(app.userHandler.RequestPasswordReset))
	mux.Post("/api/auth/verify_reset_code", standardMiddleware.ThenFunc(app.userHandler.VerifyResetCode))
	mux.Post("/api/auth/reset_password", standardMiddleware.ThenFunc(app.userHandler.ResetPassword))

	// Users
	mux.Get("/api/users/me", authMiddleware.ThenFunc(app.userHandler.GetMe))
	mux.Put("/api/users/me", authMiddleware.ThenFunc(app.userHandler.UpdateUser))
	mux.Post("/api/users/me/avatar", authMiddleware.ThenFunc(app.userHandler.UploadAvatar))
	mux.Post("/api/users/me/change_password", authMiddleware.ThenFunc(app.userHandler.ChangePassword))
	mux.Post("/api/users/me/change_phone", authMiddleware.ThenFunc(app.userHandler.ChangePhone))
	mux.Post("/api/users/me/change_email", authMiddleware.ThenFunc(app.userHandler.ChangeEmail))
	mux.Post("/api/users/me/upgrade", authMiddleware.ThenFunc(app.userHandler.UpgradeToProvider))
	mux.Get("/api/users/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Del("/api/users/:id", authMiddleware.ThenFunc(app.userHandler.DeleteUser))

	// Properties
	mux.Post("/api/properties", providerMiddleware.ThenFunc(app.propertyHandler.CreateProperty))
	mux.Post("/api/properties/filtered", standardMiddleware.ThenFunc(app.propertyHandler.GetFilteredProperties))
	mux.Get("/api/properties/mine", providerMiddleware.ThenFunc(app.propertyHandler.GetMyProperties))
	mux.Get("/api/properties/:id", standardMiddleware.ThenFunc(app.propertyHandler.GetPropertyByID))
	mux.Put("/api/properties/:id", providerMiddleware.ThenFunc(app.propertyHandler.UpdateProperty))
	mux.Post("/api/properties/:id/archive", providerMiddleware.ThenFunc(app.propertyHandler.ArchiveProperty))
	mux.Post("/api/properties/:id/unarchive", providerMiddleware.ThenFunc(app.propertyHandler.UnarchiveProperty))
	mux.Del("/api/properties/:id", authMiddleware.ThenFunc(app.propertyHandler.DeleteProperty))

	// Home services
	mux.Post("/api/services", providerMiddleware.ThenFunc(app.serviceHandler.CreateService))
	mux.Post("/api/services/filtered", standardMiddleware.ThenFunc(app.serviceHandler.GetFilteredServices))
	mux.Get("/api/services/mine", providerMiddleware.ThenFunc(app.serviceHandler.GetMyServices))
	mux.Get("/api/services/:id", standardMiddleware.ThenFunc(app.serviceHandler.GetServiceByID))
	mux.Put("/api/services/:id", providerMiddleware.ThenFunc(app.serviceHandler.UpdateService))
	mux.Del("/api/services/:id", authMiddleware.ThenFunc(app.serviceHandler.DeleteService))

	// Categories and cities
	mux.Post("/api/categories", adminMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Get("/api/categories", standardMiddleware.ThenFunc(app.categoryHandler.GetAllCategories))
	mux.Get("/api/categories/:id", standardMiddleware.ThenFunc(app.categoryHandler.GetCategoryByID))
	mux.Put("/api/categories/:id", adminMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/api/categories/:id", adminMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))
	mux.Post("/api/categories/:id/subcategories", adminMiddleware.ThenFunc(app.categoryHandler.CreateSubcategory))
	mux.Get("/api/categories/:id/subcategories", standardMiddleware.ThenFunc(app.categoryHandler.GetSubcategoriesByCategory))
	mux.Del("/api/subcategories/:id", adminMiddleware.ThenFunc(app.categoryHandler.DeleteSubcategory))

	mux.Post("/api/cities", adminMiddleware.ThenFunc(app.cityHandler.CreateCity))
	mux.Get("/api/cities", standardMiddleware.ThenFunc(app.cityHandler.GetCities))
	mux.Get("/api/cities/:id", standardMiddleware.ThenFunc(app.cityHandler.GetCityByID))
	mux.Put("/api/cities/:id", adminMiddleware.ThenFunc(app.cityHandler.UpdateCity))
	mux.Del("/api/cities/:id", adminMiddleware.ThenFunc(app.cityHandler.DeleteCity))

	// Bookings
	mux.Post("/api/bookings", authMiddleware.ThenFunc(app.bookingHandler.CreateBooking))
	mux.Get("/api/bookings/mine", authMiddleware.ThenFunc(app.bookingHandler.GetMyBookings))
	mux.Get("/api/bookings/incoming", providerMiddleware.ThenFunc(app.bookingHandler.GetIncomingBookings))
	mux.Get("/api/bookings/:id", authMiddleware.ThenFunc(app.bookingHandler.GetBookingByID))
	mux.Put("/api/bookings/:id/status", authMiddleware.ThenFunc(app.bookingHandler.ChangeStatus))

	// Messaging
	mux.Get("/ws", http.HandlerFunc(app.WebSocketHandler))
	mux.Post("/api/chats", authMiddleware.ThenFunc(app.chatHandler.OpenChat))
	mux.Get("/api/chats", authMiddleware.ThenFunc(app.chatHandler.GetConversations))
	mux.Get("/api/chats/:id", authMiddleware.ThenFunc(app.chatHandler.GetChatByID))
	mux.Del("/api/chats/:id", authMiddleware.ThenFunc(app.chatHandler.DeleteChat))
	mux.Post("/api/chats/:id/messages", authMiddleware.ThenFunc(app.messageHandler.SendMessage))
	mux.Get("/api/chats/:id/messages", authMiddleware.ThenFunc(app.messageHandler.GetMessages))
	mux.Post("/api/chats/:id/read", authMiddleware.ThenFunc(app.messageHandler.MarkChatRead))
	mux.Del("/api/messages/:id", authMiddleware.ThenFunc(app.messageHandler.DeleteMessage))

	// Reviews
	mux.Post("/api/reviews", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/api/reviews/:type/:id", standardMiddleware.ThenFunc(app.reviewHandler.GetReviewsByListing))
	mux.Put("/api/reviews/:id", authMiddleware.ThenFunc(app.reviewHandler.UpdateReview))
	mux.Del("/api/reviews/:id", authMiddleware.ThenFunc(app.reviewHandler.DeleteReview))

	// Favorites
	mux.Post("/api/favorites", authMiddleware.ThenFunc(app.favoriteHandler.AddToFavorites))
	mux.Get("/api/favorites", authMiddleware.ThenFunc(app.favoriteHandler.GetFavorites))
	mux.Del("/api/favorites/:type/:id", authMiddleware.ThenFunc(app.favoriteHandler.RemoveFromFavorites))

	// Payments
	mux.Post("/api/payments", authMiddleware.ThenFunc(app.paymentHandler.InitiatePayment))
	mux.Get("/api/payments/mine", authMiddleware.ThenFunc(app.paymentHandler.GetMyPayments))
	mux.Get("/api/payments/:reference", authMiddleware.ThenFunc(app.paymentHandler.CheckPayment))
	mux.Post("/api/payments/callback", standardMiddleware.ThenFunc(app.paymentHandler.Callback))

	// Subscriptions
	mux.Get("/api/subscriptions/plans", standardMiddleware.ThenFunc(app.subscriptionHandler.GetPlans))
	mux.Get("/api/subscriptions/me", providerMiddleware.ThenFunc(app.subscriptionHandler.GetProfile))

	// Maintenance
	mux.Post("/api/properties/:id/maintenance", providerMiddleware.ThenFunc(app.maintenanceHandler.CreateAsset))
	mux.Get("/api/properties/:id/maintenance", providerMiddleware.ThenFunc(app.maintenanceHandler.GetAssetsByProperty))
	mux.Get("/api/maintenance/mine", providerMiddleware.ThenFunc(app.maintenanceHandler.GetMyAssets))
	mux.Post("/api/maintenance/:id/complete", providerMiddleware.ThenFunc(app.maintenanceHandler.CompleteService))
	mux.Put("/api/maintenance/:id", providerMiddleware.ThenFunc(app.maintenanceHandler.UpdateAsset))
	mux.Del("/api/maintenance/:id", providerMiddleware.ThenFunc(app.maintenanceHandler.DeleteAsset))

	// Notifications
	mux.Get("/api/notifications", authMiddleware.ThenFunc(app.notificationHandler.GetNotifications))
	mux.Get("/api/notifications/unread", authMiddleware.ThenFunc(app.notificationHandler.UnreadCount))
	mux.Post("/api/notifications/read", authMiddleware.ThenFunc(app.notificationHandler.MarkAllRead))
	mux.Post("/api/device_tokens", authMiddleware.ThenFunc(app.notificationHandler.SaveDeviceToken))
	mux.Del("/api/device_tokens", authMiddleware.ThenFunc(app.notificationHandler.DeleteDeviceToken))

	// Complaints
	mux.Post("/api/complaints", authMiddleware.ThenFunc(app.complaintHandler.CreateComplaint))
	mux.Get("/api/complaints", adminMiddleware.ThenFunc(app.complaintHandler.GetComplaints))
	mux.Post("/api/complaints/:id/resolve", adminMiddleware.ThenFunc(app.complaintHandler.ResolveComplaint))
	mux.Del("/api/complaints/:id", adminMiddleware.ThenFunc(app.complaintHandler.DeleteComplaint))

	// Images
	mux.Post("/api/images", authMiddleware.ThenFunc(app.imageHandler.Upload))

	// Admin
	mux.Get("/api/admin/dashboard", adminMiddleware.ThenFunc(app.adminHandler.GetDashboard))
	mux.Get("/api/admin/users", adminMiddleware.ThenFunc(app.userHandler.GetUsers))
	mux.Get("/api/admin/signups", adminMiddleware.ThenFunc(app.adminHandler.RecentSignups))
	mux.Get("/api/admin/properties/pending", adminMiddleware.ThenFunc(app.adminHandler.GetPendingProperties))
	mux.Get("/api/admin/services/pending", adminMiddleware.ThenFunc(app.adminHandler.GetPendingServices))
	mux.Put("/api/admin/properties/:id/moderate", adminMiddleware.ThenFunc(app.adminHandler.ModerateProperty))
	mux.Put("/api/admin/services/:id/moderate", adminMiddleware.ThenFunc(app.adminHandler.ModerateService))
	mux.Post("/api/admin/users/:id/block", adminMiddleware.ThenFunc(app.adminHandler.BlockUser))
	mux.Post("/api/admin/users/:id/unblock", adminMiddleware.ThenFunc(app.adminHandler.UnblockUser))

	return mux
}
