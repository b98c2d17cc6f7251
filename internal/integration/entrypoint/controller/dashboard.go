// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/worldbooks/backend/internal/application/usecase/dashboard"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
	"github.com/worldbooks/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	kpisUseCase *dashboard.GetDashboardKPIsUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(kpisUseCase *dashboard.GetDashboardKPIsUseCase) *DashboardController {
	return &DashboardController{
		kpisUseCase: kpisUseCase,
	}
}

// KPIs handles GET /dashboard/kpis requests.
//
// Query parameters:
//
//	period    "YYYY-MM" for a month or "YYYY-MM-DD..YYYY-MM-DD" for an
//	          inclusive range; defaults to the current month
//	currency  reporting currency; defaults to USD
func (c *DashboardController) KPIs(ctx *gin.Context) {
	period := dashboard.CurrentMonthPeriod(time.Now().UTC())
	if periodStr := ctx.Query("period"); periodStr != "" {
		parsed, err := dashboard.ParsePeriod(periodStr)
		if err != nil {
			c.handleDashboardError(ctx, err)
			return
		}
		period = parsed
	}

	reportingCurrency := ctx.Query("currency")
	if reportingCurrency == "" {
		reportingCurrency = "USD"
	}

	output, err := c.kpisUseCase.Execute(ctx.Request.Context(), dashboard.GetDashboardKPIsInput{
		Period:            period,
		ReportingCurrency: reportingCurrency,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardKPIsResponse(output))
}

// handleDashboardError maps domain errors to HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Failed to compute dashboard KPIs",
	})
}
