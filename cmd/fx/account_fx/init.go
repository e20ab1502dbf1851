package account_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"cliquemap/internal/api/controllers"
	"cliquemap/internal/repositories"
	"cliquemap/internal/services"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideAccountController)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	cliqueRepo repositories.CliqueRepository,
	markerRepo repositories.MarkerRepository,
	reviewRepo repositories.ReviewRepository,
	eventRepo repositories.EventRepository,
	banRepo repositories.BanRepository,
	lifecycle services.LifecycleServiceInterface,
) services.AccountServiceInterface {
	return services.NewAccountService(
		accountRepo, cliqueRepo, markerRepo, reviewRepo, eventRepo, banRepo,
		lifecycle, os.Getenv("MASTER_EMAIL"))
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
