package api

import (
	authUsecase "genprd-backend/internal/auth/usecase"
	dashboardUsecase "genprd-backend/internal/dashboard/usecase"
	personnelUsecase "genprd-backend/internal/personnel/usecase"
	prdUsecase "genprd-backend/internal/prd/usecase"
	"genprd-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase      authUsecase.AuthUsecase
	prdUsecase       prdUsecase.PRDUsecase
	personnelUsecase personnelUsecase.PersonnelUsecase
	dashboard        dashboardUsecase.DashboardUsecase
	config           *config.Config
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	prdUc prdUsecase.PRDUsecase,
	personnelUc personnelUsecase.PersonnelUsecase,
	dashboardUc dashboardUsecase.DashboardUsecase,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:      authUc,
		prdUsecase:       prdUc,
		personnelUsecase: personnelUc,
		dashboard:        dashboardUc,
		config:           cfg,
	}
}

func (h *Handler) Start(addr string) error {
	if h.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.prdUsecase, h.personnelUsecase, h.dashboard, h.config)

	return r.Run(addr)
}
