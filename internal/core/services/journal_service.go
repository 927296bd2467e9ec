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
	"github.com/flowcounts/backend/internal/utils/accounting"
)

var (
	ErrEntryNotPending = errors.New("journal entry is not pending")
	ErrReasonMissing   = errors.New("rejection reason is required")
)

// journalService implements the approval workflow over journal entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
	events      portssvc.EventPublisher
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalEventPublisher adds the domain event publisher dependency
func WithJournalEventPublisher(events portssvc.EventPublisher) JournalServiceOption {
	return func(s *journalService) {
		s.events = events
	}
}

// NewJournalService creates a new journal service with the provided options
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) publish(ctx context.Context, kind domain.EventKind, actorID string, payload any) {
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

// buildEntry converts the request into a domain entry and validates it
// against the full rule set, collecting every failure.
func (s *journalService) buildEntry(ctx context.Context, entryDate, description string, lineReqs []dto.EntryLineRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	now := time.Now()
	entry := domain.JournalEntry{
		Description: description,
		Status:      domain.Pending,
		Lines:       make([]domain.JournalLine, len(lineReqs)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	dateErr := ""
	if entryDate != "" {
		parsed, err := time.Parse("2006-01-02", entryDate)
		if err != nil {
			dateErr = fmt.Sprintf("entry date must be YYYY-MM-DD, got %q", entryDate)
		} else {
			entry.EntryDate = parsed
		}
	}

	accountIDs := make([]int64, 0, len(lineReqs))
	for i, lr := range lineReqs {
		entry.Lines[i] = domain.JournalLine{
			AccountID:   lr.AccountID,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Description: lr.Description,
			LineOrder:   i + 1,
		}
		accountIDs = append(accountIDs, lr.AccountID)
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueInt64s(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry validation")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	// One validation pass reports every problem, including the date format.
	vErr := accounting.ValidateEntry(entry, accountsMap)
	if dateErr != "" {
		verr, ok := vErr.(*apperrors.ValidationError)
		if !ok {
			verr = &apperrors.ValidationError{}
		}
		verr.Add("entryDate", "%s", dateErr)
		vErr = verr
	}
	if vErr != nil {
		return nil, vErr
	}

	entry.Lines = accounting.NormalizeLines(entry.Lines)
	return &entry, nil
}

// SubmitEntry validates and persists a new PENDING entry.
func (s *journalService) SubmitEntry(ctx context.Context, req dto.CreateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	entry, err := s.buildEntry(ctx, req.EntryDate, req.Description, req.Lines, actor)
	if err != nil {
		return nil, err
	}

	saved, err := s.journalRepo.SaveEntry(ctx, *entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry submitted",
		slog.Int64("entry_id", saved.EntryID),
		slog.Int("line_count", len(saved.Lines)))
	s.publish(ctx, domain.EventEntrySubmitted, actor.UserID, *saved)
	return saved, nil
}

// GetEntryByID retrieves a specific entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry",
				slog.Int64("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves entries newest-first, optionally status-filtered.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	if params.Status != nil && !domain.ValidEntryStatus(*params.Status) {
		verr := &apperrors.ValidationError{}
		verr.Add("status", "unknown status %q", *params.Status)
		return nil, verr
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, err := s.journalRepo.ListEntries(ctx, params.Status, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}

	s.LogDebug(ctx, "Journal entries listed", slog.Int("count", len(entries)))
	return entries, nil
}

// EditEntry rewrites a PENDING entry after re-validating the full line set.
func (s *journalService) EditEntry(ctx context.Context, entryID int64, req dto.UpdateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	existing, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.Pending {
		s.LogDebug(ctx, "Refusing to edit decided entry",
			slog.Int64("entry_id", entryID),
			slog.String("status", string(existing.Status)))
		return nil, fmt.Errorf("%w: entry %d is %s: %w", ErrEntryNotPending, entryID, existing.Status, apperrors.ErrStateTransition)
	}

	entry, err := s.buildEntry(ctx, req.EntryDate, req.Description, req.Lines, actor)
	if err != nil {
		return nil, err
	}
	entry.EntryID = entryID
	entry.CreatedAt = existing.CreatedAt
	entry.CreatedBy = existing.CreatedBy
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actor.UserID

	if err := s.journalRepo.ReplaceEntry(ctx, *entry); err != nil {
		if errors.Is(err, apperrors.ErrStateTransition) {
			// Decided between our read and the write
			return nil, err
		}
		s.LogError(ctx, err, "Failed to replace journal entry",
			slog.Int64("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry updated", slog.Int64("entry_id", entryID))
	return s.GetEntryByID(ctx, entryID)
}

// DeleteEntry removes a PENDING entry. Decided entries are permanent history.
func (s *journalService) DeleteEntry(ctx context.Context, entryID int64, actor domain.Actor) error {
	existing, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if existing.Status != domain.Pending {
		return fmt.Errorf("%w: entry %d is %s: %w", ErrEntryNotPending, entryID, existing.Status, apperrors.ErrStateTransition)
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry",
			slog.Int64("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted",
		slog.Int64("entry_id", entryID),
		slog.String("deleted_by", actor.UserID))
	return nil
}

// ApproveEntry posts a PENDING entry to account balances and marks it
// APPROVED, all inside one repository transaction. If anything fails the
// transaction rolls back and the entry stays PENDING.
func (s *journalService) ApproveEntry(ctx context.Context, entryID int64, actor domain.Actor) (*domain.JournalEntry, error) {
	if err := s.RequireReviewer(ctx, actor); err != nil {
		return nil, err
	}

	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Pending {
		return nil, fmt.Errorf("%w: entry %d is %s: %w", ErrEntryNotPending, entryID, entry.Status, apperrors.ErrStateTransition)
	}

	// The repository locks the entry and its accounts, requires the accounts
	// active, and derives the balance deltas from the locked rows, so the
	// posting never trusts state read outside the transaction.
	now := time.Now()
	if err := s.journalRepo.ApproveEntry(ctx, entryID, actor.UserID, now); err != nil {
		if errors.Is(err, apperrors.ErrStateTransition) {
			// Lost the race to a concurrent reviewer; nothing was posted.
			s.LogInfo(ctx, "Entry already decided by concurrent review",
				slog.Int64("entry_id", entryID))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to post journal entry",
			slog.Int64("entry_id", entryID))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPostingFailed, err)
	}

	approved, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry approved and posted",
		slog.Int64("entry_id", entryID),
		slog.String("reviewed_by", actor.UserID))
	s.publish(ctx, domain.EventEntryApproved, actor.UserID, *approved)
	return approved, nil
}

// RejectEntry marks a PENDING entry REJECTED with a reason. No balances change.
func (s *journalService) RejectEntry(ctx context.Context, entryID int64, req dto.RejectEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	if err := s.RequireReviewer(ctx, actor); err != nil {
		return nil, err
	}
	if req.Reason == "" {
		verr := &apperrors.ValidationError{}
		verr.Add("reason", "%s", ErrReasonMissing.Error())
		return nil, verr
	}

	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Pending {
		return nil, fmt.Errorf("%w: entry %d is %s: %w", ErrEntryNotPending, entryID, entry.Status, apperrors.ErrStateTransition)
	}

	now := time.Now()
	if err := s.journalRepo.RejectEntry(ctx, entryID, req.Reason, actor.UserID, now); err != nil {
		if errors.Is(err, apperrors.ErrStateTransition) {
			s.LogInfo(ctx, "Entry already decided by concurrent review",
				slog.Int64("entry_id", entryID))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to reject journal entry",
			slog.Int64("entry_id", entryID))
		return nil, err
	}

	rejected, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry rejected",
		slog.Int64("entry_id", entryID),
		slog.String("reviewed_by", actor.UserID))
	s.publish(ctx, domain.EventEntryRejected, actor.UserID, *rejected)
	return rejected, nil
}

// uniqueInt64s returns a slice containing only the unique values from the input.
func uniqueInt64s(input []int64) []int64 {
	seen := make(map[int64]struct{}, len(input))
	result := make([]int64, 0, len(input))
	for _, v := range input {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}
