package services

import (
	"log/slog"

	"github.com/siperka/siperka_backend/internal/clients/rates"
	portsrepo "github.com/siperka/siperka_backend/internal/core/ports/repositories"
	portssvc "github.com/siperka/siperka_backend/internal/core/ports/services"
	"github.com/siperka/siperka_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The provider chain is ordered: official SOAP service first, page scrape
	// second, then the two market APIs.
	frankfurter := rates.NewFrankfurterProvider(cfg.FrankfurterURL, cfg.ProviderTimeout)
	providers := []rates.CurrentRateProvider{
		rates.NewBISoapProvider(cfg.BISoapURL, cfg.ProviderTimeout),
		rates.NewBIHTMLProvider(cfg.BIPageURL, cfg.ProviderTimeout),
		frankfurter,
		rates.NewExchangerateAPIProvider(cfg.ExchangerateAPIURL, cfg.ProviderTimeout),
	}

	cache := NewRateCache(cfg.RateCacheTTL)
	container.Rate = NewRateService(providers, frankfurter, repos.RateStoreRepo, cache, logger)
	container.Estimation = NewEstimationService(container.Rate, repos.ProcurementRepo, repos.EstimationRepo, logger)

	return container
}

// Compile-time interface implementation checks.
var (
	_ portssvc.RateSvcFacade       = (*RateService)(nil)
	_ portssvc.EstimationSvcFacade = (*EstimationService)(nil)
)
