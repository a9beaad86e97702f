//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/unievents/internal/bootstrap"
	"github.com/yanqian/unievents/internal/domain/auth"
	"github.com/yanqian/unievents/internal/domain/calendar"
	"github.com/yanqian/unievents/internal/domain/club"
	"github.com/yanqian/unievents/internal/domain/event"
	"github.com/yanqian/unievents/internal/infra/config"
	httpiface "github.com/yanqian/unievents/internal/interface/http"
	"github.com/yanqian/unievents/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideLocation,
		provideCalendarConfig,
		provideEventConfig,
		provideClubConfig,
		provideAuthConfig,
		providePostgresPool,
		provideValkeyClient,
		provideEventRepository,
		provideClubStore,
		provideClubRepository,
		provideUserRepository,
		provideEventCache,
		provideRevocationStore,
		provideLogoStorage,
		provideEventSource,
		provideEventLister,
		provideSeeder,
		event.NewService,
		calendar.NewService,
		club.NewService,
		auth.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
