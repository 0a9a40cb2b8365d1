package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	portssvc "github.com/branchbooks/ledger_backend/internal/core/ports/services"
	"github.com/branchbooks/ledger_backend/internal/dto"
	"github.com/branchbooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles HTTP requests related to sales and payments.
type saleHandler struct {
	saleService    portssvc.SaleSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

// newSaleHandler creates a new saleHandler.
func newSaleHandler(saleService portssvc.SaleSvcFacade, paymentService portssvc.PaymentSvcFacade) *saleHandler {
	return &saleHandler{
		saleService:    saleService,
		paymentService: paymentService,
	}
}

// createSale godoc
// @Summary Create a sale
// @Description Registers a receivable in the UNPAID state
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale"
// @Success 201 {object} dto.SaleResponse "The created sale"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 409 {object} map[string]string "Sale already exists"
// @Failure 500 {object} map[string]string "Failed to create sale"
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), caller, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			// receivable account lookup failed
			c.JSON(http.StatusBadRequest, gin.H{"error": "Receivable account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating sale", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Sale already exists"})
		default:
			logger.Error("Failed to create sale in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		}
		return
	}

	resp := dto.ToSaleResponse(sale)
	c.JSON(http.StatusCreated, resp)
}

// getSale godoc
// @Summary Get a sale
// @Description Retrieves a sale with its payments by sale ID
// @Tags sales
// @Produce  json
// @Param   saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse "The sale"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 500 {object} map[string]string "Failed to retrieve sale"
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	caller, _ := middleware.GetCallerFromContext(c)
	sale, err := h.saleService.GetSaleByID(c.Request.Context(), caller, saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		logger.Error("Failed to get sale from service", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sale"})
		return
	}

	resp := dto.ToSaleResponse(sale)
	c.JSON(http.StatusOK, resp)
}

// listSales godoc
// @Summary List sales
// @Description Retrieves a paginated list of sales, newest first
// @Tags sales
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListSalesResponse "A page of sales"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to list sales"
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	caller, _ := middleware.GetCallerFromContext(c)
	resp, err := h.saleService.ListSales(c.Request.Context(), caller, params)
	if err != nil {
		logger.Error("Failed to list sales from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// applyPayment godoc
// @Summary Apply a payment to a sale
// @Description Applies a payment against the sale's outstanding amount and posts the matching journal entry atomically
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   saleID path string true "Sale ID"
// @Param   payment body dto.ApplyPaymentRequest true "Payment"
// @Success 200 {object} dto.ApplyPaymentResponse "The payment result"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 404 {object} map[string]string "Sale or account not found"
// @Failure 409 {object} map[string]string "Sale already paid or payment exceeds outstanding"
// @Failure 503 {object} map[string]string "Sale locked by a concurrent payment, retry later"
// @Router /sales/{saleID}/payments [post]
func (h *saleHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for applyPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.paymentService.ApplyPayment(c.Request.Context(), caller, saleID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyPaid):
			logger.Warn("Payment rejected, sale already paid", slog.String("sale_id", saleID))
			c.JSON(http.StatusConflict, gin.H{"error": "Sale is already fully paid"})
		case errors.Is(err, apperrors.ErrOverpay):
			logger.Warn("Payment rejected, overpay attempt", slog.String("sale_id", saleID))
			c.JSON(http.StatusConflict, gin.H{"error": "Payment exceeds outstanding amount"})
		case errors.Is(err, apperrors.ErrSaleBusy):
			logger.Warn("Payment rejected, sale busy", slog.String("sale_id", saleID))
			c.Header("Retry-After", "1")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sale is locked by a concurrent payment, retry later"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale or account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error applying payment", slog.String("error", err.Error()), slog.String("sale_id", saleID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to apply payment in service", slog.String("error", err.Error()), slog.String("sale_id", saleID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply payment"})
		}
		return
	}

	resp := dto.ToApplyPaymentResponse(result)
	c.JSON(http.StatusOK, resp)
}

// registerSaleRoutes registers sale and payment specific routes
func registerSaleRoutes(group *gin.RouterGroup, saleService portssvc.SaleSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newSaleHandler(saleService, paymentService)

	sales := group.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.POST("/:saleID/payments", h.applyPayment)
	}
}
