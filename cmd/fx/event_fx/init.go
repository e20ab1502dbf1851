package event_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"cliquemap/internal/api/controllers"
	"cliquemap/internal/repositories"
	"cliquemap/internal/services"
)

var Module = fx.Provide(
	provideEventService, provideEventRepo, provideEventController)

func provideEventRepo(db *gorm.DB) repositories.EventRepository {
	return repositories.NewEventRepository(db)
}

func provideEventService(
	eventRepo repositories.EventRepository,
	markerRepo repositories.MarkerRepository,
	cliqueRepo repositories.CliqueRepository,
) services.EventServiceInterface {
	return services.NewEventService(eventRepo, markerRepo, cliqueRepo)
}

func provideEventController(eventService services.EventServiceInterface) *controllers.EventController {
	return controllers.NewEventController(eventService)
}
