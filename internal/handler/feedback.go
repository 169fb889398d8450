package handler

import (
	"net/http"

	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/middleware"
	"github.com/Kitchen-Control/CentralKitchen/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct{ svc service.FeedbackService }

func NewFeedbackHandler(svc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// EligibleOrders lists the calling store's delivered orders still awaiting
// a rating.
func (h *FeedbackHandler) EligibleOrders(c *gin.Context) {
	actor := middleware.ActorFromClaims(c)
	resp, err := h.svc.EligibleOrders(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Rate a delivered order
// @Description One rating per order; a repeat submission returns 409.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitFeedbackRequest true "Rating"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.SubmitFeedbackRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor := middleware.ActorFromClaims(c)
	resp, err := h.svc.Submit(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FeedbackHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
