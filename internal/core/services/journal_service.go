package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/branchbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/ledger_backend/internal/core/ports/services"
	"github.com/branchbooks/ledger_backend/internal/dto"
	"github.com/branchbooks/ledger_backend/internal/utils/accounting"
	"github.com/google/uuid"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// JournalService implements the journal entry operations of the ledger core.
type JournalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	authorizer  portssvc.BranchAuthorizerSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(logger *slog.Logger, journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, authorizer portssvc.BranchAuthorizerSvc) *JournalService {
	return &JournalService{
		BaseService: NewBaseService(logger),
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		authorizer:  authorizer,
	}
}

var _ portssvc.JournalSvcFacade = (*JournalService)(nil)

// buildLines converts line requests into domain lines carrying fresh IDs and
// audit fields.
func buildLines(entryID string, reqs []dto.CreateJournalLineRequest, caller domain.Caller, now time.Time) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqs))
	for i, lr := range reqs {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lr.AccountID,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Description: lr.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     caller.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: caller.UserID,
			},
		}
	}
	return lines
}

// checkLineAccounts verifies every referenced account exists, is active and
// matches the entry currency. Returns the fetched accounts for further checks.
func (s *JournalService) checkLineAccounts(ctx context.Context, lines []domain.JournalLine, currencyCode string) ([]domain.Account, error) {
	idSet := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, seen := idSet[line.AccountID]; !seen {
			idSet[line.AccountID] = struct{}{}
			ids = append(ids, line.AccountID)
		}
	}

	found, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(ids))
	for _, id := range ids {
		account, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, id)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		if account.CurrencyCode != currencyCode {
			return nil, fmt.Errorf("%w: account %s currency %s does not match entry currency %s",
				apperrors.ErrValidation, id, account.CurrencyCode, currencyCode)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// authorizeIfTransfer applies the transfer rules when the entry is an account
// transfer: at least two distinct accounts must be involved, and the injected
// authorizer must permit the caller to move value between them.
func (s *JournalService) authorizeIfTransfer(ctx context.Context, caller domain.Caller, refType *domain.ReferenceType, accounts []domain.Account) error {
	if refType == nil || *refType != domain.RefAccountTransfer {
		return nil
	}
	if len(accounts) < 2 {
		return fmt.Errorf("%w: account transfer must involve at least two distinct accounts", apperrors.ErrValidation)
	}
	return s.authorizer.AuthorizeAccountTransfer(ctx, caller, accounts)
}

// CreateEntry validates and persists a new balanced journal entry.
func (s *JournalService) CreateEntry(ctx context.Context, caller domain.Caller, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	if req.ReferenceType != nil && !req.ReferenceType.IsValid() {
		return nil, fmt.Errorf("%w: invalid reference type %q", apperrors.ErrValidation, *req.ReferenceType)
	}

	now := time.Now()
	entryDate := now
	if req.Date != nil {
		entryDate = *req.Date
	}

	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Lines, caller, now)

	if err := accounting.ValidateEntryLines(lines); err != nil {
		return nil, err
	}

	accounts, err := s.checkLineAccounts(ctx, lines, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeIfTransfer(ctx, caller, req.ReferenceType, accounts); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:       entryID,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		EntryDate:     entryDate,
		CurrencyCode:  req.CurrencyCode,
		TotalAmount:   accounting.EntryAmount(lines),
		IsBalanced:    true,
		Lines:         lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entryID),
		slog.Int("line_count", len(lines)),
		slog.String("total_amount", entry.TotalAmount.String()),
	)
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *JournalService) GetEntryByID(ctx context.Context, caller domain.Caller, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a page of entries, optionally with their lines.
func (s *JournalService) ListEntries(ctx context.Context, caller domain.Caller, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := normalizeLimit(params.Limit)

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	if params.IncludeLines && len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.EntryID
		}
		linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			return nil, err
		}
		for i := range entries {
			entries[i].Lines = linesByEntry[entries[i].EntryID]
		}
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

// UpdateEntry patches header fields and, when a line set is supplied,
// replaces all lines after full re-validation. A patched entry must satisfy
// the same rules as a new one; nothing about an update relaxes them.
func (s *JournalService) UpdateEntry(ctx context.Context, caller domain.Caller, entryID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if req.ReferenceType != nil {
		if !req.ReferenceType.IsValid() {
			return nil, fmt.Errorf("%w: invalid reference type %q", apperrors.ErrValidation, *req.ReferenceType)
		}
		entry.ReferenceType = req.ReferenceType
	}
	if req.ReferenceID != nil {
		entry.ReferenceID = req.ReferenceID
	}
	if req.Date != nil {
		entry.EntryDate = *req.Date
	}

	now := time.Now()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = caller.UserID

	if req.Lines == nil {
		// Header-only update. When the patch turns the entry into a
		// transfer, the existing lines still have to pass the transfer rules.
		if req.ReferenceType != nil && *req.ReferenceType == domain.RefAccountTransfer {
			lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
			if err != nil {
				return nil, err
			}
			accounts, err := s.checkLineAccounts(ctx, lines, entry.CurrencyCode)
			if err != nil {
				return nil, err
			}
			if err := s.authorizeIfTransfer(ctx, caller, entry.ReferenceType, accounts); err != nil {
				return nil, err
			}
		}

		if err := s.journalRepo.UpdateEntryHeader(ctx, *entry); err != nil {
			return nil, err
		}
		return s.GetEntryByID(ctx, caller, entryID)
	}

	lines := buildLines(entryID, *req.Lines, caller, now)

	if err := accounting.ValidateEntryLines(lines); err != nil {
		return nil, err
	}

	accounts, err := s.checkLineAccounts(ctx, lines, entry.CurrencyCode)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeIfTransfer(ctx, caller, entry.ReferenceType, accounts); err != nil {
		return nil, err
	}

	entry.TotalAmount = accounting.EntryAmount(lines)
	entry.Lines = lines

	if err := s.journalRepo.ReplaceEntry(ctx, *entry, lines); err != nil {
		logger.Error("Failed to replace journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal entry updated",
		slog.String("entry_id", entryID),
		slog.Int("line_count", len(lines)),
	)
	return entry, nil
}

// DeleteEntry removes the entry and all of its lines.
func (s *JournalService) DeleteEntry(ctx context.Context, caller domain.Caller, entryID string) error {
	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		return err
	}
	s.GetLogger(ctx).Info("Journal entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", caller.UserID))
	return nil
}

// ListLinesByAccount retrieves a page of lines touching one account.
func (s *JournalService) ListLinesByAccount(ctx context.Context, caller domain.Caller, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := normalizeLimit(params.Limit)
	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListLinesResponse{
		Lines:     dto.ToJournalLineResponses(lines),
		NextToken: nextToken,
	}, nil
}
