package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
	"github.com/mamadbah2/livestock-pricing/internal/form"
	"github.com/mamadbah2/livestock-pricing/internal/service/pricelist"
)

// PriceListService describes the operations the HTTP layer can perform.
type PriceListService interface {
	ImportXLSX(ctx context.Context, filename string, r io.Reader) (*pricelist.ImportReport, error)
	ImportSheet(ctx context.Context) (*pricelist.ImportReport, error)
	Apply(ctx context.Context, id string, state *form.State) error
	Submit(ctx context.Context, values models.PriceListForm) (*models.PriceList, error)
	LoadForEdit(ctx context.Context, id string) (models.PriceListForm, error)
}

// PriceListHandler exposes the price-list import, submit and edit flows over HTTP.
type PriceListHandler struct {
	svc    PriceListService
	logger *zap.Logger
}

// NewPriceListHandler constructs the HTTP handler adapter.
func NewPriceListHandler(svc PriceListService, logger *zap.Logger) *PriceListHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceListHandler{svc: svc, logger: logger}
}

// Import parses an uploaded workbook sent as the multipart field "file".
func (h *PriceListHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.logger.Warn("missing upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "multipart field \"file\" is required", Kind: kindBadRequest})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("failed opening upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unable to read upload", Kind: kindBadRequest})
		return
	}
	defer file.Close()

	report, err := h.svc.ImportXLSX(c.Request.Context(), header.Filename, file)
	if err != nil {
		h.writeError(c, "import price list", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ImportSheet imports from the configured Google Sheet.
func (h *PriceListHandler) ImportSheet(c *gin.Context) {
	report, err := h.svc.ImportSheet(c.Request.Context())
	if err != nil {
		h.writeError(c, "import price list sheet", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Apply merges a pending import into the form values sent in the body. An empty
// body applies onto a blank form.
func (h *PriceListHandler) Apply(c *gin.Context) {
	values := models.NewPriceListForm()
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&values); err != nil && !errors.Is(err, io.EOF) {
			h.logger.Warn("invalid form payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Kind: kindBadRequest})
			return
		}
	}

	state := form.New(values)
	if err := h.svc.Apply(c.Request.Context(), c.Param("id"), state); err != nil {
		h.writeError(c, "apply import", err)
		return
	}
	c.JSON(http.StatusOK, state.Values())
}

// Submit validates and sends a price list to the marketplace.
func (h *PriceListHandler) Submit(c *gin.Context) {
	var values models.PriceListForm
	if err := c.ShouldBindJSON(&values); err != nil {
		h.logger.Warn("invalid form payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Kind: kindBadRequest})
		return
	}

	created, err := h.svc.Submit(c.Request.Context(), values)
	if err != nil {
		h.writeError(c, "submit price list", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Form returns a stored price list as decimal form values.
func (h *PriceListHandler) Form(c *gin.Context) {
	values, err := h.svc.LoadForEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "load price list", err)
		return
	}
	c.JSON(http.StatusOK, values)
}

func (h *PriceListHandler) writeError(c *gin.Context, op string, err error) {
	status, body := describeError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(op+" failed", zap.Int("status", status), zap.Error(err))
	} else {
		h.logger.Warn(op+" rejected", zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, body)
}
