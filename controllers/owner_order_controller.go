package controllers

import (
	"strconv"

	"fooddelivery/pkg/apperr"
	"fooddelivery/pkg/resp"
	"fooddelivery/repository"
	"fooddelivery/services"
	"fooddelivery/utils"

	"github.com/gin-gonic/gin"
)

// OwnerOrderController exposes the restaurant-side order operations,
// including the cancellation saga entry point.
type OwnerOrderController struct {
	Orders   *services.OrderService
	Saga     *services.CancellationSaga
	RestRepo *repository.RestaurantRepository
}

func NewOwnerOrderController(orders *services.OrderService, saga *services.CancellationSaga, restRepo *repository.RestaurantRepository) *OwnerOrderController {
	return &OwnerOrderController{Orders: orders, Saga: saga, RestRepo: restRepo}
}

// GET /partner/restaurants/:id/orders
func (oc *OwnerOrderController) List(c *gin.Context) {
	restID, _ := strconv.Atoi(c.Param("id"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var statusID *uint
	if s := c.Query("statusId"); s != "" {
		v, _ := strconv.Atoi(s)
		id := uint(v)
		statusID = &id
	}

	out, err := oc.Orders.ListForRestaurant(utils.CurrentUserID(c), uint(restID), statusID, page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /partner/restaurants/:id/orders/:oid/status
func (oc *OwnerOrderController) UpdateStatus(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("oid"))

	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := oc.Orders.AdvanceStatus(utils.CurrentUserID(c), uint(orderID), in.Status); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"status": in.Status})
}

// POST /partner/restaurants/:id/orders/:oid/cancel
func (oc *OwnerOrderController) Cancel(c *gin.Context) {
	restID, _ := strconv.Atoi(c.Param("id"))
	orderID, _ := strconv.Atoi(c.Param("oid"))

	// the saga authenticates the restaurant; here we only check the caller
	// actually owns it
	ok, err := oc.RestRepo.IsOwnedBy(uint(restID), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if !ok {
		resp.Error(c, apperr.Forbidden("access denied"))
		return
	}

	var in struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := oc.Saga.Execute(c.Request.Context(), uint(restID), uint(orderID), in.Reason)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, result)
}
