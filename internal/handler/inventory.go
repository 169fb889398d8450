package handler

import (
	"net/http"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/middleware"
	"github.com/Kitchen-Control/CentralKitchen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ListLots godoc
// @Summary List inventory lots with expiry status
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.LotResponse
// @Router /v1/inventory/lots [get]
func (h *InventoryHandler) ListLots(c *gin.Context) {
	resp, err := h.svc.ListLots(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) PendingImports(c *gin.Context) {
	resp, err := h.svc.PendingImports(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ApproveImport godoc
// @Summary Approve a finished batch into inventory
// @Description Creates the lot and its IMPORT ledger entry. Approving the same batch twice is a no-op.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ApproveImportRequest true "Batch to import"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/inventory/imports [post]
func (h *InventoryHandler) ApproveImport(c *gin.Context) {
	var req dto.ApproveImportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	batchID, err := uuid.Parse(req.BatchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid batch_id"))
		return
	}
	actor := middleware.ActorFromClaims(c)
	if err := h.svc.ApproveImport(c.Request.Context(), actor, batchID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) Dispose(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	actor := middleware.ActorFromClaims(c)
	if err := h.svc.Dispose(c.Request.Context(), actor, lotID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) Procure(c *gin.Context) {
	var req dto.ProcureRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor := middleware.ActorFromClaims(c)
	resp, err := h.svc.Procure(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	var filter dto.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	data, total, err := h.svc.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

func (h *InventoryHandler) Marketplace(c *gin.Context) {
	resp, err := h.svc.Marketplace(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
