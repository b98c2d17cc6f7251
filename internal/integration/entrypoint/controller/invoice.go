// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/usecase/invoice"
	"github.com/worldbooks/backend/internal/domain/entity"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
	"github.com/worldbooks/backend/internal/integration/entrypoint/dto"
)

// InvoiceController handles invoice endpoints.
type InvoiceController struct {
	listUseCase   *invoice.ListInvoicesUseCase
	createUseCase *invoice.CreateInvoiceUseCase
	getUseCase    *invoice.GetInvoiceUseCase
	updateUseCase *invoice.UpdateInvoiceUseCase
	deleteUseCase *invoice.DeleteInvoiceUseCase
	recentUseCase *invoice.RecentInvoicesUseCase
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	listUseCase *invoice.ListInvoicesUseCase,
	createUseCase *invoice.CreateInvoiceUseCase,
	getUseCase *invoice.GetInvoiceUseCase,
	updateUseCase *invoice.UpdateInvoiceUseCase,
	deleteUseCase *invoice.DeleteInvoiceUseCase,
	recentUseCase *invoice.RecentInvoicesUseCase,
) *InvoiceController {
	return &InvoiceController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		recentUseCase: recentUseCase,
	}
}

// List handles GET /invoices requests. The status filter matches the
// effective status, so "overdue" finds pending invoices past their due
// date.
func (c *InvoiceController) List(ctx *gin.Context) {
	var input invoice.ListInvoicesInput

	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err == nil {
			input.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err == nil {
			input.EndDate = &endDate
		}
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		for _, s := range strings.Split(statusStr, ",") {
			input.Statuses = append(input.Statuses, entity.InvoiceStatus(strings.TrimSpace(s)))
		}
	}
	input.Currency = ctx.Query("currency")
	input.Customer = ctx.Query("customer")

	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve invoices",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(output))
}

// Create handles POST /invoices requests.
func (c *InvoiceController) Create(ctx *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid due date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return
	}
	totalAmount, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid total amount",
		})
		return
	}

	input := invoice.CreateInvoiceInput{
		Number:       req.Number,
		CustomerName: req.CustomerName,
		Date:         date,
		DueDate:      dueDate,
		TotalAmount:  totalAmount,
		Currency:     req.Currency,
		Status:       entity.InvoiceStatus(req.Status),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(output.Invoice))
}

// Get handles GET /invoices/:id requests.
func (c *InvoiceController) Get(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid invoice ID",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), invoice.GetInvoiceInput{
		InvoiceID: id,
	})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice))
}

// Update handles PATCH /invoices/:id requests.
func (c *InvoiceController) Update(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid invoice ID",
		})
		return
	}

	var req dto.UpdateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := invoice.UpdateInvoiceInput{
		InvoiceID:    id,
		Number:       req.Number,
		CustomerName: req.CustomerName,
		Currency:     req.Currency,
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		input.Date = &date
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid due date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		input.DueDate = &dueDate
	}
	if req.TotalAmount != nil {
		totalAmount, err := decimal.NewFromString(*req.TotalAmount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid total amount",
			})
			return
		}
		input.TotalAmount = &totalAmount
	}
	if req.Status != nil {
		status := entity.InvoiceStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice))
}

// Delete handles DELETE /invoices/:id requests.
func (c *InvoiceController) Delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid invoice ID",
		})
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), invoice.DeleteInvoiceInput{
		InvoiceID: id,
	}); err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Recent handles GET /invoices/recent requests.
func (c *InvoiceController) Recent(ctx *gin.Context) {
	limit := 5
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil {
			limit = n
		}
	}

	output, err := c.recentUseCase.Execute(ctx.Request.Context(), invoice.RecentInvoicesInput{
		Limit: limit,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve recent invoices",
		})
		return
	}

	invoices := make([]dto.InvoiceResponse, len(output.Invoices))
	for i, inv := range output.Invoices {
		invoices[i] = dto.ToInvoiceResponse(inv)
	}
	ctx.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// handleInvoiceError maps domain errors to HTTP responses.
func (c *InvoiceController) handleInvoiceError(ctx *gin.Context, err error) {
	var invErr *domainerror.InvoiceError
	if errors.As(err, &invErr) {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domainerror.ErrInvoiceNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domainerror.ErrDuplicateInvoiceNumber):
			status = http.StatusConflict
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: invErr.Message,
			Code:  string(invErr.Code),
		})
		return
	}
	if errors.Is(err, domainerror.ErrInvoiceNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Invoice not found",
			Code:  string(domainerror.ErrCodeInvoiceNotFound),
		})
		return
	}
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
	})
}
