package controllers

import (
	"strconv"

	"fooddelivery/pkg/resp"
	"fooddelivery/services"
	"fooddelivery/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// POST /orders
func (oc *OrderController) Place(c *gin.Context) {
	var req services.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := oc.Orders.PlaceOrder(c.Request.Context(), utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, result)
}

// GET /orders
func (oc *OrderController) ListForMe(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := oc.Orders.ListForCustomer(utils.CurrentUserID(c), limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /orders/:id/summary
func (oc *OrderController) Summary(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	summary, err := oc.Orders.GetOrderSummary(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, summary)
}

// POST /orders/:id/cancel
func (oc *OrderController) Cancel(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := oc.Orders.CancelOrderByCustomer(c.Request.Context(), utils.CurrentUserID(c), uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cancelled": true})
}
