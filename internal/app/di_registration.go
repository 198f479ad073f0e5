package app

import (
	"fmt"
	"log/slog"

	registrationRepository "github.com/allisson/rsvp/internal/registration/repository"
	registrationService "github.com/allisson/rsvp/internal/registration/service"
	registrationUsecase "github.com/allisson/rsvp/internal/registration/usecase"
)

// TokenService returns the capability token codec.
func (c *Container) TokenService() registrationService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = registrationService.NewTokenService()
	})
	return c.tokenService
}

// CapabilityResolver returns the capability token resolver.
func (c *Container) CapabilityResolver() (registrationService.CapabilityResolver, error) {
	c.capabilityResolverInit.Do(func() {
		tokenRepo, err := c.TokenRepository()
		if err != nil {
			c.initErrors["capabilityResolver"] = fmt.Errorf("failed to get token repository for resolver: %w", err)
			return
		}
		c.capabilityResolver = registrationService.NewCapabilityResolver(
			tokenRepo,
			c.TokenService(),
			c.Clock(),
		)
	})
	if storedErr, exists := c.initErrors["capabilityResolver"]; exists {
		return nil, storedErr
	}
	return c.capabilityResolver, nil
}

// RegistrationRepository returns the registration repository instance.
func (c *Container) RegistrationRepository() (registrationUsecase.RegistrationRepository, error) {
	c.registrationRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["registrationRepo"] = fmt.Errorf("failed to get database for registration repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.registrationRepo = registrationRepository.NewMySQLRegistrationRepository(db)
		case "postgres":
			c.registrationRepo = registrationRepository.NewPostgreSQLRegistrationRepository(db)
		default:
			c.initErrors["registrationRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["registrationRepo"]; exists {
		return nil, storedErr
	}
	return c.registrationRepo, nil
}

// tokenRepository is the concrete token repository shape shared by the use
// case layer and the resolver's lookup interface.
type tokenRepository interface {
	registrationUsecase.TokenRepository
	registrationService.TokenLookup
}

// TokenRepository returns the capability token repository instance.
func (c *Container) TokenRepository() (tokenRepository, error) {
	c.tokenRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["tokenRepo"] = fmt.Errorf("failed to get database for token repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.tokenRepo = registrationRepository.NewMySQLTokenRepository(db)
		case "postgres":
			c.tokenRepo = registrationRepository.NewPostgreSQLTokenRepository(db)
		default:
			c.initErrors["tokenRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["tokenRepo"]; exists {
		return nil, storedErr
	}
	return c.tokenRepo, nil
}

// RegistrationUseCase returns the registration use case, wrapped with metrics
// instrumentation.
func (c *Container) RegistrationUseCase() (registrationUsecase.RegistrationUseCase, error) {
	c.registrationUseCaseInit.Do(func() {
		useCase, err := c.initRegistrationUseCase()
		if err != nil {
			c.initErrors["registrationUseCase"] = err
			return
		}
		c.registrationUseCase = useCase
	})
	if storedErr, exists := c.initErrors["registrationUseCase"]; exists {
		return nil, storedErr
	}
	return c.registrationUseCase, nil
}

// AdminUseCase returns the admin use case instance.
func (c *Container) AdminUseCase() (registrationUsecase.AdminUseCase, error) {
	c.adminUseCaseInit.Do(func() {
		registrationRepo, err := c.RegistrationRepository()
		if err != nil {
			c.initErrors["adminUseCase"] = fmt.Errorf("failed to get registration repository for admin use case: %w", err)
			return
		}
		c.adminUseCase = registrationUsecase.NewAdminUseCase(registrationRepo)
	})
	if storedErr, exists := c.initErrors["adminUseCase"]; exists {
		return nil, storedErr
	}
	return c.adminUseCase, nil
}

// RetentionUseCase returns the retention use case instance.
func (c *Container) RetentionUseCase() (registrationUsecase.RetentionUseCase, error) {
	c.retentionUseCaseInit.Do(func() {
		registrationRepo, err := c.RegistrationRepository()
		if err != nil {
			c.initErrors["retentionUseCase"] = fmt.Errorf("failed to get registration repository for retention use case: %w", err)
			return
		}

		tokenRepo, err := c.TokenRepository()
		if err != nil {
			c.initErrors["retentionUseCase"] = fmt.Errorf("failed to get token repository for retention use case: %w", err)
			return
		}

		c.retentionUseCase = registrationUsecase.NewRetentionUseCase(
			registrationRepo,
			tokenRepo,
			c.Clock(),
			c.Logger(),
		)
	})
	if storedErr, exists := c.initErrors["retentionUseCase"]; exists {
		return nil, storedErr
	}
	return c.retentionUseCase, nil
}

// initRegistrationUseCase assembles the registration use case with all dependencies.
func (c *Container) initRegistrationUseCase() (registrationUsecase.RegistrationUseCase, error) {
	registrationRepo, err := c.RegistrationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get registration repository for registration use case: %w", err)
	}

	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for registration use case: %w", err)
	}

	resolver, err := c.CapabilityResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability resolver for registration use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for registration use case: %w", err)
	}

	notifier, err := c.Notifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get notifier for registration use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for registration use case: %w", err)
	}

	useCase := registrationUsecase.NewRegistrationUseCase(
		c.config,
		registrationRepo,
		tokenRepo,
		resolver,
		c.TokenService(),
		txManager,
		notifier,
		c.Clock(),
		c.Logger(),
	)

	return registrationUsecase.NewRegistrationUseCaseWithMetrics(useCase, businessMetrics), nil
}

// logRateLimitOverride emits the startup warning for a disabled limiter group.
func logRateLimitOverride(logger *slog.Logger, group string) {
	logger.Warn("rate limiting disabled by configuration override", slog.String("group", group))
}
