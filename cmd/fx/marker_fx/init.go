package marker_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"cliquemap/internal/api/controllers"
	"cliquemap/internal/repositories"
	"cliquemap/internal/services"
)

var Module = fx.Provide(
	provideMarkerService, provideMarkerRepo, provideReviewRepo, provideMarkerController)

func provideMarkerRepo(db *gorm.DB) repositories.MarkerRepository {
	return repositories.NewMarkerRepository(db)
}

func provideReviewRepo(db *gorm.DB) repositories.ReviewRepository {
	return repositories.NewReviewRepository(db)
}

func provideMarkerService(
	markerRepo repositories.MarkerRepository,
	reviewRepo repositories.ReviewRepository,
	eventRepo repositories.EventRepository,
	cliqueRepo repositories.CliqueRepository,
	accountRepo repositories.AccountRepository,
	lifecycle services.LifecycleServiceInterface,
) services.MarkerServiceInterface {
	return services.NewMarkerService(
		markerRepo, reviewRepo, eventRepo, cliqueRepo, accountRepo, lifecycle)
}

func provideMarkerController(markerService services.MarkerServiceInterface) *controllers.MarkerController {
	return controllers.NewMarkerController(markerService)
}
