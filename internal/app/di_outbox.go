package app

import (
	"fmt"

	"github.com/allisson/rsvp/internal/notifier"
	outboxRepository "github.com/allisson/rsvp/internal/outbox/repository"
	outboxUsecase "github.com/allisson/rsvp/internal/outbox/usecase"
	registrationUsecase "github.com/allisson/rsvp/internal/registration/usecase"
)

// EmailRepository returns the email outbox repository instance.
func (c *Container) EmailRepository() (outboxUsecase.EmailRepository, error) {
	c.emailRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["emailRepo"] = fmt.Errorf("failed to get database for email repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.emailRepo = outboxRepository.NewMySQLEmailRepository(db)
		case "postgres":
			c.emailRepo = outboxRepository.NewPostgreSQLEmailRepository(db)
		default:
			c.initErrors["emailRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["emailRepo"]; exists {
		return nil, storedErr
	}
	return c.emailRepo, nil
}

// Notifier returns the manage-link notifier. It enqueues emails into the
// transactional outbox; actual delivery happens in the relay loop.
func (c *Container) Notifier() (registrationUsecase.Notifier, error) {
	c.notifierInit.Do(func() {
		emailRepo, err := c.EmailRepository()
		if err != nil {
			c.initErrors["notifier"] = fmt.Errorf("failed to get email repository for notifier: %w", err)
			return
		}
		c.notifier = notifier.NewOutboxNotifier(emailRepo, c.Clock())
	})
	if storedErr, exists := c.initErrors["notifier"]; exists {
		return nil, storedErr
	}
	return c.notifier, nil
}

// OutboxUseCase returns the email relay use case instance.
func (c *Container) OutboxUseCase() (outboxUsecase.UseCase, error) {
	c.outboxUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["outboxUseCase"] = fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
			return
		}

		emailRepo, err := c.EmailRepository()
		if err != nil {
			c.initErrors["outboxUseCase"] = fmt.Errorf("failed to get email repository for outbox use case: %w", err)
			return
		}

		useCaseConfig := outboxUsecase.Config{
			Interval:   c.config.OutboxInterval,
			BatchSize:  c.config.OutboxBatchSize,
			MaxRetries: c.config.OutboxMaxRetries,
		}

		sender := notifier.NewSMTPSender(c.config.SMTPAddr, c.config.SMTPFrom)
		c.outboxUseCase = outboxUsecase.NewOutboxUseCase(
			useCaseConfig,
			txManager,
			emailRepo,
			sender,
			c.Clock(),
			c.Logger(),
		)
	})
	if storedErr, exists := c.initErrors["outboxUseCase"]; exists {
		return nil, storedErr
	}
	return c.outboxUseCase, nil
}
