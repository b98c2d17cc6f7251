// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/application/usecase/seed"
	"github.com/worldbooks/backend/internal/integration/entrypoint/dto"
)

// LedgerController handles store-wide endpoints: the revision counter and
// sample-data seeding.
type LedgerController struct {
	revision    adapter.RevisionReader
	seedUseCase *seed.SeedSampleDataUseCase
	seedEnabled bool
}

// NewLedgerController creates a new ledger controller instance.
func NewLedgerController(revision adapter.RevisionReader, seedUseCase *seed.SeedSampleDataUseCase, seedEnabled bool) *LedgerController {
	return &LedgerController{
		revision:    revision,
		seedUseCase: seedUseCase,
		seedEnabled: seedEnabled,
	}
}

// Revision handles GET /ledger/revision requests. The counter increases
// on every successful mutation and never on reads, so clients can poll it
// cheaply to detect changes.
func (c *LedgerController) Revision(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.RevisionResponse{
		Revision: c.revision.Revision(),
	})
}

// Seed handles POST /seed requests. Seeding only applies to an empty
// ledger; a store holding data responds with seeded=false and is left
// untouched.
func (c *LedgerController) Seed(ctx *gin.Context) {
	if !c.seedEnabled {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: "Seeding is disabled",
		})
		return
	}

	output, err := c.seedUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to seed sample data",
		})
		return
	}

	status := http.StatusOK
	if output.Seeded {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.SeedResponse{
		Seeded:             output.Seeded,
		TransactionsLoaded: output.TransactionsLoaded,
		InvoicesLoaded:     output.InvoicesLoaded,
	})
}
