package services_test

import (
	"context"
	"testing"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/branchbooks/ledger_backend/internal/core/services"
	"github.com/branchbooks/ledger_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo    *MockSaleRepository
	mockAccountRepo *MockAccountRepository
	service         *services.SaleService

	caller     domain.Caller
	receivable domain.Account
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewSaleService(nil, suite.mockSaleRepo, suite.mockAccountRepo)

	suite.caller = domain.Caller{UserID: uuid.NewString(), BranchID: "branch-1"}
	suite.receivable = domain.Account{
		AccountID:    uuid.NewString(),
		BranchID:     "branch-1",
		Name:         "Accounts Receivable",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		IsActive:     true,
	}
}

func (suite *SaleServiceTestSuite) validRequest() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		MemoNo:              "M-1001",
		CustomerID:          uuid.NewString(),
		CurrencyCode:        "USD",
		TotalAmount:         decimal.NewFromInt(100),
		ReceivableAccountID: suite.receivable.AccountID,
	}
}

func (suite *SaleServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockSaleRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale")).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, suite.caller, req)

	suite.Require().NoError(err)
	suite.NotEmpty(sale.SaleID)
	suite.Equal(domain.Unpaid, sale.PaymentType, "a new sale always starts unpaid")
	suite.Equal(suite.caller.BranchID, sale.BranchID)
	suite.Equal("M-1001", sale.MemoNo)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_NonPositiveTotal() {
	ctx := context.Background()
	req := suite.validRequest()
	req.TotalAmount = decimal.Zero

	_, err := suite.service.CreateSale(ctx, suite.caller, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "SaveSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_ReceivableCurrencyMismatch() {
	ctx := context.Background()
	req := suite.validRequest()
	suite.receivable.CurrencyCode = "EUR"

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()

	_, err := suite.service.CreateSale(ctx, suite.caller, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestGetSaleByID_WithPayments() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, TotalAmount: decimal.NewFromInt(100)}
	payments := []domain.Payment{{PaymentID: uuid.NewString(), SaleID: saleID, Amount: decimal.NewFromInt(40)}}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("FindPaymentsBySaleID", ctx, saleID).Return(payments, nil).Once()

	got, err := suite.service.GetSaleByID(ctx, suite.caller, saleID)

	suite.Require().NoError(err)
	suite.Len(got.Payments, 1)
}

func (suite *SaleServiceTestSuite) TestGetSaleByID_NotFound() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetSaleByID(ctx, suite.caller, saleID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
