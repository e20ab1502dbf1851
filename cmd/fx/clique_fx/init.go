package clique_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"cliquemap/internal/api/controllers"
	"cliquemap/internal/repositories"
	"cliquemap/internal/services"
)

var Module = fx.Provide(
	provideCliqueService, provideCliqueRepo, provideBanRepo, provideCliqueController)

func provideCliqueRepo(db *gorm.DB) repositories.CliqueRepository {
	return repositories.NewCliqueRepository(db)
}

func provideBanRepo(db *gorm.DB) repositories.BanRepository {
	return repositories.NewBanRepository(db)
}

func provideCliqueService(
	cliqueRepo repositories.CliqueRepository,
	accountRepo repositories.AccountRepository,
	markerRepo repositories.MarkerRepository,
	reviewRepo repositories.ReviewRepository,
	eventRepo repositories.EventRepository,
	notificationRepo repositories.NotificationRepository,
	banRepo repositories.BanRepository,
	lifecycle services.LifecycleServiceInterface,
) services.CliqueServiceInterface {
	return services.NewCliqueService(
		cliqueRepo, accountRepo, markerRepo, reviewRepo, eventRepo,
		notificationRepo, banRepo, lifecycle)
}

func provideCliqueController(cliqueService services.CliqueServiceInterface) *controllers.CliqueController {
	return controllers.NewCliqueController(cliqueService)
}
