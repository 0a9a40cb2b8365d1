package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	portssvc "github.com/branchbooks/ledger_backend/internal/core/ports/services"
	"github.com/branchbooks/ledger_backend/internal/dto"
	"github.com/branchbooks/ledger_backend/internal/handlers"
	"github.com/branchbooks/ledger_backend/internal/middleware"
	"github.com/branchbooks/ledger_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock Service Facades ---

type MockSaleService struct {
	mock.Mock
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

func (m *MockSaleService) CreateSale(ctx context.Context, caller domain.Caller, req dto.CreateSaleRequest) (*domain.Sale, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) GetSaleByID(ctx context.Context, caller domain.Caller, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, caller, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) ListSales(ctx context.Context, caller domain.Caller, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSalesResponse), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

func (m *MockPaymentService) ApplyPayment(ctx context.Context, caller domain.Caller, saleID string, req dto.ApplyPaymentRequest) (*domain.PaymentResult, error) {
	args := m.Called(ctx, caller, saleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}

// --- Test Suite ---

type SaleHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockSaleService    *MockSaleService
	mockPaymentService *MockPaymentService
	jwtSecret          string

	userID   string
	branchID string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *SaleHandlerTestSuite) generateTestToken(userID, branchID string) string {
	claims := middleware.LedgerClaims{
		BranchID: branchID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ledger-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.userID = uuid.NewString()
	suite.branchID = "branch-1"

	suite.mockSaleService = new(MockSaleService)
	suite.mockPaymentService = new(MockPaymentService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{
		Sale:    suite.mockSaleService,
		Payment: suite.mockPaymentService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// serve sends an authenticated JSON request through the router.
func (suite *SaleHandlerTestSuite) serve(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.Require().NoError(err)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID, suite.branchID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SaleHandlerTestSuite) callerMatcher() interface{} {
	return mock.MatchedBy(func(c domain.Caller) bool {
		return c.UserID == suite.userID && c.BranchID == suite.branchID
	})
}

// --- Test Cases ---

func (suite *SaleHandlerTestSuite) TestApplyPayment_Success() {
	saleID := uuid.NewString()
	req := dto.ApplyPaymentRequest{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(40)}
	result := &domain.PaymentResult{
		SaleID:           saleID,
		PaymentID:        uuid.NewString(),
		PaidAmountAfter:  decimal.NewFromInt(40),
		OutstandingAfter: decimal.NewFromInt(60),
		PaymentType:      domain.Partial,
	}

	suite.mockPaymentService.On("ApplyPayment", mock.Anything, suite.callerMatcher(), saleID,
		mock.MatchedBy(func(r dto.ApplyPaymentRequest) bool {
			return r.AccountID == req.AccountID && r.Amount.Equal(req.Amount)
		}),
	).Return(result, nil).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/sales/%s/payments", saleID), req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ApplyPaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(result.PaymentID, resp.PaymentID)
	suite.Equal("PARTIAL", resp.PaymentType)
	suite.True(resp.OutstandingAfter.Equal(decimal.NewFromInt(60)))
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestApplyPayment_AlreadyPaid() {
	saleID := uuid.NewString()
	req := dto.ApplyPaymentRequest{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(10)}

	suite.mockPaymentService.On("ApplyPayment", mock.Anything, suite.callerMatcher(), saleID, mock.Anything).
		Return(nil, apperrors.ErrAlreadyPaid).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/sales/%s/payments", saleID), req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already fully paid")
}

func (suite *SaleHandlerTestSuite) TestApplyPayment_Overpay() {
	saleID := uuid.NewString()
	req := dto.ApplyPaymentRequest{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(999)}

	suite.mockPaymentService.On("ApplyPayment", mock.Anything, suite.callerMatcher(), saleID, mock.Anything).
		Return(nil, apperrors.ErrOverpay).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/sales/%s/payments", saleID), req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "exceeds outstanding")
}

func (suite *SaleHandlerTestSuite) TestApplyPayment_SaleBusy() {
	saleID := uuid.NewString()
	req := dto.ApplyPaymentRequest{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(10)}

	suite.mockPaymentService.On("ApplyPayment", mock.Anything, suite.callerMatcher(), saleID, mock.Anything).
		Return(nil, apperrors.ErrSaleBusy).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/sales/%s/payments", saleID), req)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("1", w.Header().Get("Retry-After"))
}

func (suite *SaleHandlerTestSuite) TestApplyPayment_SaleNotFound() {
	saleID := uuid.NewString()
	req := dto.ApplyPaymentRequest{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(10)}

	suite.mockPaymentService.On("ApplyPayment", mock.Anything, suite.callerMatcher(), saleID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/sales/%s/payments", saleID), req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SaleHandlerTestSuite) TestApplyPayment_ValidationError() {
	saleID := uuid.NewString()
	req := dto.ApplyPaymentRequest{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(-5)}

	suite.mockPaymentService.On("ApplyPayment", mock.Anything, suite.callerMatcher(), saleID, mock.Anything).
		Return(nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/sales/%s/payments", saleID), req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "must be positive")
}

func (suite *SaleHandlerTestSuite) TestApplyPayment_MissingToken() {
	saleID := uuid.NewString()
	req := dto.ApplyPaymentRequest{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(10)}

	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(req))
	httpReq, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/sales/%s/payments", saleID), &buf)
	httpReq.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleHandlerTestSuite) TestCreateSale_Success() {
	req := dto.CreateSaleRequest{
		MemoNo:              "M-2001",
		CustomerID:          uuid.NewString(),
		CurrencyCode:        "USD",
		TotalAmount:         decimal.NewFromInt(100),
		ReceivableAccountID: uuid.NewString(),
	}
	sale := &domain.Sale{
		SaleID:              uuid.NewString(),
		BranchID:            suite.branchID,
		MemoNo:              req.MemoNo,
		CustomerID:          req.CustomerID,
		CurrencyCode:        req.CurrencyCode,
		TotalAmount:         req.TotalAmount,
		ReceivableAccountID: req.ReceivableAccountID,
		PaymentType:         domain.Unpaid,
		AuditFields:         domain.AuditFields{CreatedAt: time.Now()},
	}

	suite.mockSaleService.On("CreateSale", mock.Anything, suite.callerMatcher(), mock.AnythingOfType("dto.CreateSaleRequest")).
		Return(sale, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/sales", req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(sale.SaleID, resp.SaleID)
	suite.Equal("UNPAID", resp.PaymentType)
}

func (suite *SaleHandlerTestSuite) TestCreateSale_UnknownReceivable() {
	req := dto.CreateSaleRequest{
		CustomerID:          uuid.NewString(),
		CurrencyCode:        "USD",
		TotalAmount:         decimal.NewFromInt(100),
		ReceivableAccountID: uuid.NewString(),
	}

	suite.mockSaleService.On("CreateSale", mock.Anything, suite.callerMatcher(), mock.AnythingOfType("dto.CreateSaleRequest")).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodPost, "/api/v1/sales", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Receivable account not found")
}

func (suite *SaleHandlerTestSuite) TestGetSale_NotFound() {
	saleID := uuid.NewString()

	suite.mockSaleService.On("GetSaleByID", mock.Anything, suite.callerMatcher(), saleID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, "/api/v1/sales/"+saleID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestSaleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}
