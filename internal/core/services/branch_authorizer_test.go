package services_test

import (
	"context"
	"testing"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/branchbooks/ledger_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestBranchAuthorizer_AuthorizeAccountTransfer(t *testing.T) {
	authorizer := services.NewBranchAuthorizer(nil)
	ctx := context.Background()

	ownBranch := domain.Account{AccountID: "a1", BranchID: "branch-1"}
	otherBranch := domain.Account{AccountID: "a2", BranchID: "branch-2"}

	t.Run("non-admin within own branch", func(t *testing.T) {
		caller := domain.Caller{UserID: "u1", BranchID: "branch-1"}
		err := authorizer.AuthorizeAccountTransfer(ctx, caller, []domain.Account{ownBranch, {AccountID: "a3", BranchID: "branch-1"}})
		assert.NoError(t, err)
	})

	t.Run("non-admin crossing branches", func(t *testing.T) {
		caller := domain.Caller{UserID: "u1", BranchID: "branch-1"}
		err := authorizer.AuthorizeAccountTransfer(ctx, caller, []domain.Account{ownBranch, otherBranch})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("admin crossing branches", func(t *testing.T) {
		caller := domain.Caller{UserID: "u1", BranchID: "branch-1", Admin: true}
		err := authorizer.AuthorizeAccountTransfer(ctx, caller, []domain.Account{ownBranch, otherBranch})
		assert.NoError(t, err)
	})
}
