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

type ProductionHandler struct{ svc service.ProductionService }

func NewProductionHandler(svc service.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

// CreatePlan godoc
// @Summary Open a production plan
// @Tags production
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreatePlanRequest true "Plan date and target lines"
// @Success 201 {object} dto.PlanResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/production/plans [post]
func (h *ProductionHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor := middleware.ActorFromClaims(c)
	resp, err := h.svc.CreatePlan(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductionHandler) ListPlans(c *gin.Context) {
	resp, err := h.svc.ListPlans(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductionHandler) GetPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetPlan(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductionHandler) CompletePlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	actor := middleware.ActorFromClaims(c)
	if err := h.svc.CompletePlan(c.Request.Context(), actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateBatch starts a production run under a plan. The batch expiry date
// derives from the product's shelf life.
func (h *ProductionHandler) CreateBatch(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.CreateBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor := middleware.ActorFromClaims(c)
	resp, err := h.svc.CreateBatch(c.Request.Context(), actor, planID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductionHandler) CompleteBatch(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batch_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid batch_id"))
		return
	}
	actor := middleware.ActorFromClaims(c)
	if err := h.svc.CompleteBatch(c.Request.Context(), actor, batchID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
