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

type DeliveriesHandler struct{ svc service.DeliveryService }

func NewDeliveriesHandler(svc service.DeliveryService) *DeliveriesHandler {
	return &DeliveriesHandler{svc: svc}
}

// Create godoc
// @Summary Group open orders under a delivery trip
// @Tags deliveries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateDeliveryRequest true "Shipper, date and order ids"
// @Success 201 {object} dto.DeliveryResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/deliveries [post]
func (h *DeliveriesHandler) Create(c *gin.Context) {
	var req dto.CreateDeliveryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor := middleware.ActorFromClaims(c)
	resp, err := h.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DeliveriesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DeliveriesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Mine lists the trips assigned to the calling shipper.
func (h *DeliveriesHandler) Mine(c *gin.Context) {
	actor := middleware.ActorFromClaims(c)
	resp, err := h.svc.ListByShipper(c.Request.Context(), actor.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Start flips the delivery to PROCESSING and all member orders to DELIVERING,
// then queues the trip manifest PDF for the shipper.
func (h *DeliveriesHandler) Start(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	actor := middleware.ActorFromClaims(c)
	if err := h.svc.Start(c.Request.Context(), actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
