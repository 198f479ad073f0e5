// Package usecase implements business logic orchestration for the registration lifecycle.
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/rsvp/internal/clock"
	"github.com/allisson/rsvp/internal/config"
	apperrors "github.com/allisson/rsvp/internal/errors"
	"github.com/allisson/rsvp/internal/registration/domain"
	regService "github.com/allisson/rsvp/internal/registration/service"
	customValidation "github.com/allisson/rsvp/internal/validation"
)

// registrationUseCase implements RegistrationUseCase.
type registrationUseCase struct {
	config           *config.Config
	registrationRepo RegistrationRepository
	tokenRepo        TokenRepository
	resolver         regService.CapabilityResolver
	tokenService     regService.TokenService
	txManager        TxManager
	notifier         Notifier
	clock            clock.Clock
	logger           *slog.Logger
}

// TxManager mirrors database.TxManager without importing it, so the use case
// stays mockable without a database.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Register validates guest input and creates a confirmed registration with its
// first capability token.
//
// This method:
//  1. Validates the guest fields against domain constraints
//  2. Persists the registration and the token hash in one transaction
//  3. Emails the manage URL built from the raw token
//  4. Returns only the registration ID
//
// Security Notes:
//   - The raw token is never returned to the HTTP caller; the manage link
//     travels by email only
//   - A notifier failure propagates as a reportable error since the guest has
//     no other way to learn their link was not delivered
func (u *registrationUseCase) Register(
	ctx context.Context,
	input *domain.CreateRegistrationInput,
) (*domain.RegisterOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	rawToken, tokenHash, err := u.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	registration := &domain.Registration{
		ID:            uuid.Must(uuid.NewV7()),
		GuestName:     input.GuestName,
		Email:         input.Email,
		AdultsCount:   input.AdultsCount,
		ChildrenCount: input.ChildrenCount,
		Dietary:       input.Dietary,
		Notes:         input.Notes,
		Status:        domain.StatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.registrationRepo.Create(ctx, registration); err != nil {
			return err
		}
		return u.tokenRepo.Create(ctx, u.newToken(registration.ID, tokenHash, now))
	})
	if err != nil {
		return nil, err
	}

	email := ManageLinkEmail{
		To:        registration.Email,
		GuestName: registration.GuestName,
		ManageURL: u.manageURL(rawToken),
	}
	if err := u.notifier.SendManageLink(ctx, email); err != nil {
		// The registration is committed but the guest cannot reach it. Surface
		// the degraded state instead of pretending success.
		u.logger.Error("manage link delivery failed after registration commit",
			slog.String("registration_id", registration.ID.String()),
			slog.Any("error", err),
		)
		return nil, apperrors.Wrap(err, "failed to send manage link email")
	}

	return &domain.RegisterOutput{RegistrationID: registration.ID}, nil
}

// GetByToken resolves the raw token and loads the owning registration. Any
// resolution failure surfaces as the generic manage-link not-found.
func (u *registrationUseCase) GetByToken(
	ctx context.Context,
	rawToken string,
) (*domain.Registration, error) {
	_, registrationID, err := u.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	registration, err := u.registrationRepo.Get(ctx, registrationID)
	if err != nil {
		// A valid token pointing at a missing registration shouldn't happen due
		// to foreign key constraints; collapse to the generic failure anyway.
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrManageLinkNotFound
		}
		return nil, err
	}

	return registration, nil
}

// UpdateByToken applies a guest edit and rotates the capability token.
//
// Rotation is mandatory on every successful edit: it limits the blast radius
// of a leaked link and invalidates any link previously exposed in browser
// history or a forwarded email. Within one transaction the registration is
// updated, the new token inserted and the resolved token revoked, in that
// order, so a store that cannot roll back never ends up with a guest who lost
// access to their own registration.
func (u *registrationUseCase) UpdateByToken(
	ctx context.Context,
	rawToken string,
	input *domain.UpdateRegistrationInput,
) (*domain.UpdateOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	tokenID, registrationID, err := u.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	registration, err := u.registrationRepo.Get(ctx, registrationID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrManageLinkNotFound
		}
		return nil, err
	}

	newRawToken, newTokenHash, err := u.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	registration.GuestName = input.GuestName
	registration.Email = input.Email
	registration.AdultsCount = input.AdultsCount
	registration.ChildrenCount = input.ChildrenCount
	registration.Dietary = input.Dietary
	registration.Notes = input.Notes
	registration.UpdatedAt = now

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.registrationRepo.Update(ctx, registration); err != nil {
			return err
		}
		if err := u.tokenRepo.Create(ctx, u.newToken(registration.ID, newTokenHash, now)); err != nil {
			return err
		}
		return u.tokenRepo.Revoke(ctx, tokenID, now)
	})
	if err != nil {
		return nil, err
	}

	manageURL := u.manageURL(newRawToken)
	email := ManageLinkEmail{
		To:        registration.Email,
		GuestName: registration.GuestName,
		ManageURL: manageURL,
	}
	if err := u.notifier.SendManageLink(ctx, email); err != nil {
		u.logger.Error("manage link delivery failed after update commit",
			slog.String("registration_id", registration.ID.String()),
			slog.Any("error", err),
		)
		return nil, apperrors.Wrap(err, "failed to send manage link email")
	}

	return &domain.UpdateOutput{
		Registration: registration,
		ManageURL:    manageURL,
	}, nil
}

// CancelByToken transitions the registration to cancelled and revokes every
// token ever issued for it, not just the resolved one. Because the tokens are
// all revoked here, a second cancel attempt with any previously issued token
// fails resolution as not-found, which doubles as enforcement of the terminal
// state without extra bookkeeping.
func (u *registrationUseCase) CancelByToken(ctx context.Context, rawToken string) error {
	_, registrationID, err := u.resolver.Resolve(ctx, rawToken)
	if err != nil {
		return err
	}

	registration, err := u.registrationRepo.Get(ctx, registrationID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return domain.ErrManageLinkNotFound
		}
		return err
	}

	now := u.clock.Now()
	registration.Status = domain.StatusCancelled
	registration.UpdatedAt = now

	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.registrationRepo.Update(ctx, registration); err != nil {
			return err
		}
		_, err := u.tokenRepo.RevokeAll(ctx, registrationID, now)
		return err
	})
}

// ResendManageLink recovers access for a guest who lost their link.
//
// Anti-enumeration contract: for a registered-confirmed, registered-cancelled
// or unregistered email the outward outcome is identical. Internal errors are
// logged and swallowed. All branches pay the configured minimum wall-clock
// duration so network-observable timing cannot distinguish them.
func (u *registrationUseCase) ResendManageLink(ctx context.Context, email string) error {
	start := time.Now()
	defer u.padLatency(start)

	u.resend(ctx, email)
	return nil
}

// resend performs the side-effecting half of the resend flow. Every failure is
// logged server-side only; nothing here may alter the outward response.
func (u *registrationUseCase) resend(ctx context.Context, email string) {
	registration, err := u.registrationRepo.GetByEmail(ctx, email)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			u.logger.Error("resend lookup failed", slog.Any("error", err))
		}
		return
	}

	if registration.Status != domain.StatusConfirmed {
		return
	}

	rawToken, tokenHash, err := u.tokenService.GenerateToken()
	if err != nil {
		u.logger.Error("resend token generation failed", slog.Any("error", err))
		return
	}

	now := u.clock.Now()
	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := u.tokenRepo.RevokeAll(ctx, registration.ID, now); err != nil {
			return err
		}
		return u.tokenRepo.Create(ctx, u.newToken(registration.ID, tokenHash, now))
	})
	if err != nil {
		u.logger.Error("resend token rotation failed",
			slog.String("registration_id", registration.ID.String()),
			slog.Any("error", err),
		)
		return
	}

	manageEmail := ManageLinkEmail{
		To:        registration.Email,
		GuestName: registration.GuestName,
		ManageURL: u.manageURL(rawToken),
	}
	if err := u.notifier.SendManageLink(ctx, manageEmail); err != nil {
		u.logger.Error("resend manage link delivery failed",
			slog.String("registration_id", registration.ID.String()),
			slog.Any("error", err),
		)
	}
}

// padLatency sleeps until the resend flow reaches its minimum duration. An
// explicit elapsed-time floor, not a timing trick: compute the result, then
// sleep for whatever remains.
func (u *registrationUseCase) padLatency(start time.Time) {
	if remaining := u.config.ResendMinDuration - time.Since(start); remaining > 0 {
		time.Sleep(remaining)
	}
}

// newToken builds a capability token record with a fresh TTL.
func (u *registrationUseCase) newToken(
	registrationID uuid.UUID,
	tokenHash string,
	now time.Time,
) *domain.CapabilityToken {
	return &domain.CapabilityToken{
		ID:             uuid.Must(uuid.NewV7()),
		RegistrationID: registrationID,
		TokenHash:      tokenHash,
		ExpiresAt:      now.Add(u.config.ManageTokenTTL),
		RevokedAt:      nil,
		CreatedAt:      now,
	}
}

// manageURL embeds the raw token as a path segment. Never a query string, so
// intermediaries cannot cache or log it.
func (u *registrationUseCase) manageURL(rawToken string) string {
	return strings.TrimRight(u.config.ManageURLBase, "/") + "/" + rawToken
}

// NewRegistrationUseCase creates a RegistrationUseCase with the provided dependencies.
func NewRegistrationUseCase(
	cfg *config.Config,
	registrationRepo RegistrationRepository,
	tokenRepo TokenRepository,
	resolver regService.CapabilityResolver,
	tokenService regService.TokenService,
	txManager TxManager,
	notifier Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) RegistrationUseCase {
	return &registrationUseCase{
		config:           cfg,
		registrationRepo: registrationRepo,
		tokenRepo:        tokenRepo,
		resolver:         resolver,
		tokenService:     tokenService,
		txManager:        txManager,
		notifier:         notifier,
		clock:            clk,
		logger:           logger,
	}
}
