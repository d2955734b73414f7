package api

import (
	"net/http"

	authDelivery "genprd-backend/internal/auth/delivery"
	authUsecase "genprd-backend/internal/auth/usecase"
	dashboardDelivery "genprd-backend/internal/dashboard/delivery"
	dashboardUsecase "genprd-backend/internal/dashboard/usecase"
	personnelDelivery "genprd-backend/internal/personnel/delivery"
	personnelUsecase "genprd-backend/internal/personnel/usecase"
	prdDelivery "genprd-backend/internal/prd/delivery"
	prdUsecase "genprd-backend/internal/prd/usecase"
	"genprd-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	prdUc prdUsecase.PRDUsecase,
	personnelUc personnelUsecase.PersonnelUsecase,
	dashboardUc dashboardUsecase.DashboardUsecase,
	cfg *config.Config,
) {
	authHandler := authDelivery.NewAuthHandler(authUc, cfg)
	prdHandler := prdDelivery.NewPRDHandler(prdUc)
	personnelHandler := personnelDelivery.NewPersonnelHandler(personnelUc)
	dashboardHandler := dashboardDelivery.NewDashboardHandler(dashboardUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/web/google", authHandler.WebGoogleLogin)
			auth.GET("/web/google/callback", authHandler.WebGoogleCallback)
			auth.GET("/mobile/google", authHandler.MobileGoogleLogin)
			auth.GET("/mobile/google/callback", authHandler.MobileGoogleCallback)
			auth.POST("/verify-google-token", authHandler.VerifyGoogleToken)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authDelivery.AuthMiddleware(authUc), authHandler.Logout)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
		}

		// User profile routes (protected)
		users := api.Group("/users")
		users.Use(authDelivery.AuthMiddleware(authUc))
		{
			users.GET("/profile", authHandler.GetProfile)
			users.PUT("/profile", authHandler.UpdateProfile)
			users.PUT("/fcm-token", authHandler.UpdateFCMToken)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(authDelivery.AuthMiddleware(authUc))
		{
			dashboard.GET("", dashboardHandler.Summary)
		}

		// Personnel routes (protected)
		personnel := api.Group("/personnel")
		personnel.Use(authDelivery.AuthMiddleware(authUc))
		{
			personnel.GET("", personnelHandler.List)
			personnel.POST("", personnelHandler.Create)
			personnel.GET("/:id", personnelHandler.Get)
			personnel.PUT("/:id", personnelHandler.Update)
			personnel.DELETE("/:id", personnelHandler.Delete)
		}

		// PRD routes (protected)
		prds := api.Group("/prd")
		prds.Use(authDelivery.AuthMiddleware(authUc))
		{
			prds.GET("", prdHandler.List)
			prds.POST("", prdHandler.Create)
			prds.GET("/recent", prdHandler.Recent)
			prds.GET("/:id", prdHandler.Get)
			prds.PUT("/:id", prdHandler.Update)
			prds.DELETE("/:id", prdHandler.Delete)
			prds.PATCH("/:id/archive", prdHandler.Archive)
			prds.PATCH("/:id/pin", prdHandler.TogglePin)
			prds.PATCH("/:id/stage", prdHandler.UpdateStage)
			prds.GET("/:id/download", prdHandler.Download)
		}
	}
}
