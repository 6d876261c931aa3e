// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/config"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/handlers"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/middleware"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/services"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	mailer := services.NewSMTPMailer(cfg)
	notificationService := services.NewNotificationService(cfg, mailer)
	paypalService := services.NewPayPalService(cfg)

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db, storageService)
	reservationService := services.NewReservationService(db)
	paymentService := services.NewPaymentService(db, cfg, paypalService, notificationService)
	contactService := services.NewContactService(db, notificationService)
	teamService := services.NewTeamService(db, storageService)
	clientService := services.NewClientService(db, storageService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	contactHandler := handlers.NewContactHandler(contactService)
	teamHandler := handlers.NewTeamHandler(teamService)
	clientHandler := handlers.NewClientHandler(clientService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/user", middleware.OptionalAuth(), authHandler.GetCurrentUser)

			roles := auth.Group("/roles")
			roles.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				roles.POST("/grant", authHandler.GrantRole)
				roles.POST("/revoke", authHandler.RevokeRole)
			}
		}

		// Product catalog
		produits := api.Group("/produits")
		{
			produits.GET("", productHandler.GetProducts)
			produits.GET("/:id", productHandler.GetProduct)

			protected := produits.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/image", middleware.UploadRateLimit(), productHandler.UploadProductImage)
			}
		}

		produitsWithImage := api.Group("/produits-with-image")
		produitsWithImage.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.UploadRateLimit())
		{
			produitsWithImage.POST("", productHandler.CreateProductWithImage)
			produitsWithImage.PUT("/:id", productHandler.UpdateProductWithImage)
		}

		// Reservations
		reservations := api.Group("/reservations")
		{
			reservations.POST("", reservationHandler.CreateReservation)
			reservations.GET("/disponibilite/:produitId", reservationHandler.CheckAvailability)
			reservations.GET("/client/:email", reservationHandler.GetReservationsByEmail)

			protected := reservations.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.GET("", reservationHandler.GetReservations)
				protected.GET("/stats", reservationHandler.GetStats)
				protected.GET("/revenus", reservationHandler.GetRevenue)
				protected.GET("/a-venir", reservationHandler.GetUpcomingReservations)
				protected.GET("/produit/:produitId", reservationHandler.GetReservationsByProduct)
				protected.GET("/:id", reservationHandler.GetReservation)
				protected.PUT("/:id/statut", reservationHandler.UpdateStatus)
				protected.DELETE("/:id", reservationHandler.DeleteReservation)
			}
		}

		// Online payments (PayPal + card)
		payments := api.Group("/payments")
		{
			payments.POST("/initiate-paypal", paymentHandler.InitiatePayPalPayment)
			payments.POST("/capture-paypal/:orderId", paymentHandler.CapturePayPalPayment)
			payments.GET("/status-paypal/:orderId", paymentHandler.GetPayPalOrderStatus)
			payments.POST("/cancel-paypal", paymentHandler.CancelPayPalPayment)
			payments.POST("/intent/:reservationId", paymentHandler.CreateCardPaymentIntent)
			payments.POST("/confirm", paymentHandler.ConfirmCardPayment)
			payments.POST("/refund/:reservationId", middleware.AuthRequired(), middleware.AdminRequired(), paymentHandler.RefundCardPayment)
		}

		// Contact form
		contact := api.Group("/contact")
		{
			contact.POST("/send-email", middleware.ContactRateLimit(), contactHandler.SendEmail)

			messages := contact.Group("/messages")
			messages.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				messages.GET("", contactHandler.GetMessages)
				messages.GET("/:id", contactHandler.GetMessage)
				messages.PUT("/:id/status", contactHandler.UpdateMessageStatus)
				messages.DELETE("/:id", contactHandler.DeleteMessage)
			}
		}

		// Team registry
		team := api.Group("/team-members")
		{
			team.GET("/actifs", teamHandler.GetActiveMembers)

			protected := team.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.GET("", teamHandler.GetTeamMembers)
				protected.GET("/stats", teamHandler.GetStats)
				protected.GET("/departement/:department", teamHandler.GetMembersByDepartment)
				protected.GET("/:id", teamHandler.GetTeamMember)
				protected.POST("", middleware.UploadRateLimit(), teamHandler.CreateTeamMember)
				protected.PUT("/:id", teamHandler.UpdateTeamMember)
				protected.PUT("/:id/activate", teamHandler.ActivateTeamMember)
				protected.PUT("/:id/deactivate", teamHandler.DeactivateTeamMember)
				protected.DELETE("/:id", teamHandler.DeleteTeamMember)
			}
		}

		// Client registry and payment ledger
		clients := api.Group("/clients")
		clients.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			clients.GET("", clientHandler.GetClients)
			clients.POST("", clientHandler.CreateClient)
			clients.GET("/:id", clientHandler.GetClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
			clients.GET("/cni/:cni/payments", clientHandler.GetClientPayments)
		}

		paiements := api.Group("/paiements")
		paiements.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			paiements.GET("", clientHandler.GetPayments)
			paiements.POST("", middleware.UploadRateLimit(), clientHandler.CreatePayment)
			paiements.GET("/:id", clientHandler.GetPayment)
			paiements.PUT("/:id/status", clientHandler.UpdatePaymentStatus)
			paiements.GET("/:id/receipt", clientHandler.GetPaymentReceipt)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
