package notification_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"cliquemap/internal/api/controllers"
	"cliquemap/internal/repositories"
	"cliquemap/internal/services"
)

var Module = fx.Provide(
	provideNotificationService, provideNotificationRepo, provideNotificationController, provideMasterController)

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepository {
	return repositories.NewNotificationRepository(db)
}

func provideNotificationService(
	notificationRepo repositories.NotificationRepository,
	cliqueRepo repositories.CliqueRepository,
	accountRepo repositories.AccountRepository,
) services.NotificationServiceInterface {
	return services.NewNotificationService(notificationRepo, cliqueRepo, accountRepo)
}

func provideNotificationController(notificationService services.NotificationServiceInterface) *controllers.NotificationController {
	return controllers.NewNotificationController(notificationService)
}

func provideMasterController(
	accountService services.AccountServiceInterface,
	cliqueService services.CliqueServiceInterface,
	markerService services.MarkerServiceInterface,
	notificationService services.NotificationServiceInterface,
) *controllers.MasterController {
	return controllers.NewMasterController(accountService, cliqueService, markerService, notificationService)
}
