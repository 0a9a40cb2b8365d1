package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/branchbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/branchbooks/ledger_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetAccountBalanceData(ctx context.Context, accountID string, asOf time.Time) (*domain.TrialBalanceRow, error) {
	args := m.Called(ctx, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceRow), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	service           *services.ReportingService

	caller domain.Caller
	asOf   time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(nil, suite.mockReportingRepo, suite.mockAccountRepo)

	suite.caller = domain.Caller{UserID: "user-1", BranchID: "branch-1"}
	suite.asOf = time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (suite *ReportingServiceTestSuite) TestTrialBalance_NetDerivation() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: "cash", AccountName: "Cash", AccountType: domain.Asset, Debit: d("500"), Credit: d("200")},
		{AccountID: "revenue", AccountName: "Revenue", AccountType: domain.Revenue, Debit: d("0"), Credit: d("300")},
		// nets to zero, must be omitted from the report
		{AccountID: "suspense", AccountName: "Suspense", AccountType: domain.Asset, Debit: d("50"), Credit: d("50")},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.asOf).Return(rows, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.caller, suite.asOf)

	suite.Require().NoError(err)
	suite.Equal(suite.asOf, tb.AsOfDate)
	suite.Require().Len(tb.Lines, 2, "net-zero account must be omitted")

	suite.Equal("cash", tb.Lines[0].AccountID)
	suite.True(tb.Lines[0].DebitBalance.Equal(d("300")), "net debit goes to the debit column")
	suite.True(tb.Lines[0].CreditBalance.IsZero())

	suite.Equal("revenue", tb.Lines[1].AccountID)
	suite.True(tb.Lines[1].CreditBalance.Equal(d("300")), "net credit is reported as its absolute value")
	suite.True(tb.Lines[1].DebitBalance.IsZero())

	suite.True(tb.TotalDebits.Equal(d("300")))
	suite.True(tb.TotalCredits.Equal(d("300")))
	suite.True(tb.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Empty() {
	ctx := context.Background()
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.asOf).Return([]domain.TrialBalanceRow{}, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.caller, suite.asOf)

	suite.Require().NoError(err)
	suite.Empty(tb.Lines)
	suite.True(tb.TotalDebits.IsZero())
	suite.True(tb.TotalCredits.IsZero())
	suite.True(tb.IsBalanced, "an empty ledger is trivially balanced")
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_SurfacesImbalance() {
	ctx := context.Background()
	// corrupt data: debits and credits do not cancel out
	rows := []domain.TrialBalanceRow{
		{AccountID: "cash", AccountName: "Cash", AccountType: domain.Asset, Debit: d("500"), Credit: d("0")},
		{AccountID: "revenue", AccountName: "Revenue", AccountType: domain.Revenue, Debit: d("0"), Credit: d("300")},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.asOf).Return(rows, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.caller, suite.asOf)

	suite.Require().NoError(err, "imbalance is surfaced on the report, not turned into an error")
	suite.False(tb.IsBalanced)
	suite.True(tb.TotalDebits.Equal(d("500")))
	suite.True(tb.TotalCredits.Equal(d("300")))
}

func (suite *ReportingServiceTestSuite) TestAccountBalance() {
	ctx := context.Background()
	row := &domain.TrialBalanceRow{AccountID: "cash", AccountName: "Cash", AccountType: domain.Asset, Debit: d("500"), Credit: d("120")}
	suite.mockReportingRepo.On("GetAccountBalanceData", ctx, "cash", suite.asOf).Return(row, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.caller, "cash", suite.asOf)

	suite.Require().NoError(err)
	suite.Equal("cash", balance.AccountID)
	suite.True(balance.Net.Equal(d("380")))
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_NotFound() {
	ctx := context.Background()
	suite.mockReportingRepo.On("GetAccountBalanceData", ctx, "missing", suite.asOf).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AccountBalance(ctx, suite.caller, "missing", suite.asOf)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
