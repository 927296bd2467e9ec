package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/flowcounts/backend/internal/core/domain"
	portsrepo "github.com/flowcounts/backend/internal/core/ports/repositories"
	portssvc "github.com/flowcounts/backend/internal/core/ports/services"
	"github.com/flowcounts/backend/internal/dto"
)

// digitsOnly reports whether s is non-empty and made of ASCII digits.
func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// accountServiceImpl implements the AccountSvcFacade interface
type accountServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	events      portssvc.EventPublisher
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountServiceImpl)

// WithAccountEventPublisher adds the domain event publisher dependency
func WithAccountEventPublisher(events portssvc.EventPublisher) AccountServiceOption {
	return func(s *accountServiceImpl) {
		s.events = events
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountServiceImpl{
		accountRepo: repo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountServiceImpl implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountServiceImpl)(nil)

// publish emits a domain event if a publisher is configured.
func (s *accountServiceImpl) publish(ctx context.Context, kind domain.EventKind, actorID string, payload any) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, domain.Event{
		Kind:       kind,
		OccurredAt: time.Now(),
		ActorID:    actorID,
		Payload:    payload,
	})
}

// validateAccountFields collects every metadata failure into verr.
// checkNumber is false on updates, where the number is immutable.
func (s *accountServiceImpl) validateAccountFields(account domain.Account, verr *apperrors.ValidationError, checkNumber bool) {
	if checkNumber && !digitsOnly(account.Number) {
		verr.Add("number", "account number must contain only digits, got %q", account.Number)
	}
	if account.Name == "" {
		verr.Add("name", "account name is required")
	}
	if account.Description == "" {
		verr.Add("description", "account description is required")
	}
	if account.Subcategory == "" {
		verr.Add("subcategory", "account subcategory is required")
	}
	if !domain.ValidCategory(account.Category) {
		verr.Add("category", "unknown account category %q", account.Category)
	}
	if !domain.ValidNormalSide(account.NormalSide) {
		verr.Add("normalSide", "normal side must be DEBIT or CREDIT, got %q", account.NormalSide)
	}
	if !domain.ValidStatement(account.Statement) {
		verr.Add("statement", "statement must be IS, BS or RE, got %q", account.Statement)
	}
}

func (s *accountServiceImpl) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	if err := s.RequireAccountManager(ctx, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		Number:         req.Number,
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		NormalSide:     req.NormalSide,
		Statement:      req.Statement,
		DisplayOrder:   req.DisplayOrder,
		Comment:        req.Comment,
		InitialBalance: req.InitialBalance,
		Balance:        req.InitialBalance, // Seeded once; only posting mutates it afterwards
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	verr := &apperrors.ValidationError{}
	s.validateAccountFields(account, verr, true)
	if req.InitialBalance.IsNegative() {
		verr.Add("initialBalance", "initial balance must not be negative, got %s", req.InitialBalance)
	}
	if digitsOnly(account.Number) {
		existing, err := s.accountRepo.FindAccountByNumber(ctx, account.Number)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check account number uniqueness",
				slog.String("number", account.Number))
			return nil, err
		}
		if existing != nil {
			verr.Add("number", "account number %s is already in use", account.Number)
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	saved, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Raced with another create on the same number
			verr.Add("number", "account number %s is already in use", account.Number)
			return nil, verr
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("number", account.Number))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.Int64("account_id", saved.AccountID),
		slog.String("number", saved.Number))
	s.publish(ctx, domain.EventAccountCreated, actor.UserID, *saved)
	return saved, nil
}

func (s *accountServiceImpl) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.Int64("account_id", accountID))
		}
		return nil, err // Propagate error (including NotFound)
	}

	s.LogDebug(ctx, "Account retrieved successfully",
		slog.Int64("account_id", account.AccountID))
	return account, nil
}

func (s *accountServiceImpl) GetAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs",
			slog.String("account_ids", fmt.Sprintf("%v", accountIDs)))
		return nil, err
	}
	return accounts, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		return []domain.Account{}, nil // Return empty slice if repo returns nil
	}

	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountServiceImpl) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	if err := s.RequireAccountManager(ctx, actor); err != nil {
		return nil, err
	}

	// Fetch the existing account
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err // GetAccountByID already logs errors
	}

	// Apply updates
	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.Subcategory != nil {
		account.Subcategory = *req.Subcategory
		updated = true
	}
	if req.Category != nil || req.NormalSide != nil {
		// Category and normal side determine balance arithmetic together, so
		// a change to either must supply both.
		if req.Category == nil || req.NormalSide == nil {
			verr := &apperrors.ValidationError{}
			verr.Add("category", "category and normal side must be updated together")
			return nil, verr
		}
		account.Category = *req.Category
		account.NormalSide = *req.NormalSide
		updated = true
	}
	if req.Statement != nil {
		account.Statement = *req.Statement
		updated = true
	}
	if req.DisplayOrder != nil {
		account.DisplayOrder = *req.DisplayOrder
		updated = true
	}
	if req.Comment != nil {
		account.Comment = *req.Comment
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.Int64("account_id", accountID))
		return account, nil
	}

	verr := &apperrors.ValidationError{}
	s.validateAccountFields(*account, verr, false)
	if verr.HasErrors() {
		return nil, verr
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actor.UserID

	err = s.accountRepo.UpdateAccount(ctx, *account)
	if err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.Int64("account_id", account.AccountID))
	return account, nil
}

func (s *accountServiceImpl) DeactivateAccount(ctx context.Context, accountID int64, actor domain.Actor) error {
	if err := s.RequireAccountManager(ctx, actor); err != nil {
		return err
	}

	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	// An account holding a balance still appears on statements; deactivating
	// it would hide money.
	if !account.Balance.IsZero() {
		s.LogDebug(ctx, "Refusing to deactivate account with non-zero balance",
			slog.Int64("account_id", accountID),
			slog.String("balance", account.Balance.String()))
		return fmt.Errorf("account %s has balance %s: %w", account.Number, account.Balance.StringFixed(2), apperrors.ErrConflict)
	}
	if !account.IsActive {
		return fmt.Errorf("account %s is already inactive: %w", account.Number, apperrors.ErrConflict)
	}

	if err := s.accountRepo.SetAccountActive(ctx, accountID, false, actor.UserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.Int64("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully",
		slog.Int64("account_id", accountID))
	s.publish(ctx, domain.EventAccountDeactivated, actor.UserID, *account)
	return nil
}

func (s *accountServiceImpl) ActivateAccount(ctx context.Context, accountID int64, actor domain.Actor) error {
	if err := s.RequireAccountManager(ctx, actor); err != nil {
		return err
	}

	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.IsActive {
		return fmt.Errorf("account %s is already active: %w", account.Number, apperrors.ErrConflict)
	}

	if err := s.accountRepo.SetAccountActive(ctx, accountID, true, actor.UserID); err != nil {
		s.LogError(ctx, err, "Failed to activate account",
			slog.Int64("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account activated successfully",
		slog.Int64("account_id", accountID))
	s.publish(ctx, domain.EventAccountActivated, actor.UserID, *account)
	return nil
}
