package main

import (
	"context"

	api "genprd-backend/cmd/api"
	authdomain "genprd-backend/internal/auth/domain"
	authRepo "genprd-backend/internal/auth/repository"
	authUsecase "genprd-backend/internal/auth/usecase"
	dashboardUsecase "genprd-backend/internal/dashboard/usecase"
	personneldomain "genprd-backend/internal/personnel/domain"
	personnelRepo "genprd-backend/internal/personnel/repository"
	personnelUsecase "genprd-backend/internal/personnel/usecase"
	prddomain "genprd-backend/internal/prd/domain"
	prdRepo "genprd-backend/internal/prd/repository"
	"genprd-backend/internal/prd/scheduler"
	prdUsecase "genprd-backend/internal/prd/usecase"
	"genprd-backend/pkg/config"
	"genprd-backend/pkg/database"
	"genprd-backend/pkg/fcm"
	"genprd-backend/pkg/googleauth"
	"genprd-backend/pkg/llm"
	"genprd-backend/pkg/logger"
	"genprd-backend/pkg/pdf"
	"genprd-backend/pkg/token"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env)

	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.PasswordResetToken{},
		&prddomain.PRD{},
		&personneldomain.Personnel{},
	); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate database")
	}

	// Repositories
	userRepo := authRepo.NewUserRepository(db)
	prdRepository := prdRepo.NewGormPRDRepository(db)
	personnelRepository := personnelRepo.NewGormPersonnelRepository(db)

	// External services
	googleService := googleauth.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)
	llmClient := llm.NewClient(cfg.LLMServiceURL)

	pdfGenerator, err := pdf.NewGenerator(context.Background(), cfg.GCSBucketName, cfg.GCSFolderName, cfg.GCSKeyFile)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to initialize PDF exporter")
	}

	codec := token.NewCodec(cfg.JWTSecret, cfg.RefreshSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)

	// Use cases
	authUc := authUsecase.NewAuthUsecase(userRepo, codec, googleService)
	prdUc := prdUsecase.NewPRDUsecase(prdRepository, personnelRepository, userRepo, llmClient, pdfGenerator)
	personnelUc := personnelUsecase.NewPersonnelUsecase(personnelRepository)
	dashboardUc := dashboardUsecase.NewDashboardUsecase(prdRepository, personnelRepository)

	// FCM is optional; deadline reminders are disabled without it.
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			logger.Log.WithError(err).Warn("failed to initialize FCM client, push notifications disabled")
			fcmClient = nil
		}
	} else {
		logger.Log.Info("no Firebase credentials configured, FCM disabled")
	}

	reminderScheduler := scheduler.NewDeadlineReminderScheduler(prdRepository, userRepo, fcmClient)
	reminderScheduler.Start()
	defer reminderScheduler.Stop()

	handler := api.NewHandler(authUc, prdUc, personnelUc, dashboardUc, cfg)

	logger.Log.WithField("port", cfg.Port).Info("server starting")
	if err := handler.Start(":" + cfg.Port); err != nil {
		logger.Log.WithError(err).Fatal("failed to start server")
	}
}
