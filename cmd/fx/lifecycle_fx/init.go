package lifecycle_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"cliquemap/internal/services"
)

var Module = fx.Provide(
	provideLifecycleService)

func provideLifecycleService(db *gorm.DB) services.LifecycleServiceInterface {
	return services.NewLifecycleService(db)
}
