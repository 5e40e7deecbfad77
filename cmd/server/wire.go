// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"climatework_backend/internal/account"
	"climatework_backend/internal/app"
	"climatework_backend/internal/coach"
	"climatework_backend/internal/config"
	"climatework_backend/internal/firebase"
	"climatework_backend/internal/invite"
	"climatework_backend/internal/jobs"
	"climatework_backend/internal/notification"
	"climatework_backend/internal/onboarding"
	"climatework_backend/internal/org"
	"climatework_backend/internal/platform/database"
	"climatework_backend/internal/platform/logger"
	"climatework_backend/internal/shared"
	"climatework_backend/internal/talent"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Identity provider
		firebase.NewService,
		wire.Bind(new(shared.TokenVerifier), new(*firebase.Service)),

		// Repositories
		account.NewGORMRepository,
		talent.NewGORMRepository,
		coach.NewGORMRepository,
		org.NewGORMRepository,
		invite.NewGORMRepository,

		// Collaborators
		notification.NewLogSender,
		provideSlugAllocator,
		provideInviteDispatcher,

		// Onboarding core
		account.NewResolver,
		onboarding.NewClassifier,
		onboarding.NewTalentProvisioner,
		onboarding.NewCoachProvisioner,
		onboarding.NewEmployerProvisioner,
		onboarding.NewService,
		wire.Bind(new(onboarding.Service), new(*onboarding.ServiceImplementation)),
		onboarding.NewHandler,

		// Jobs
		jobs.NewInviteExpiryJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideSlugAllocator(repo org.Repository, appLogger *zap.Logger) *org.SlugAllocator {
	return org.NewSlugAllocator(repo, appLogger)
}

func provideInviteDispatcher(
	repo invite.Repository,
	sender notification.Sender,
	cfg *config.Config,
	appLogger *zap.Logger,
) *invite.Dispatcher {
	return invite.NewDispatcher(repo, sender, cfg.AppBaseURL, appLogger)
}

func provideCleanup(appLogger *zap.Logger, db *gorm.DB) func() {
	return func() {
		appLogger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := appLogger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
