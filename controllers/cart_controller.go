package controllers

import (
	"strconv"

	"fooddelivery/pkg/resp"
	"fooddelivery/services"
	"fooddelivery/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

// GET /cart
func (cc *CartController) Get(c *gin.Context) {
	cart, subtotal, err := cc.Cart.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart, "subtotal": subtotal})
}

// POST /cart/items
func (cc *CartController) AddItem(c *gin.Context) {
	var in services.AddToCartIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := cc.Cart.Add(utils.CurrentUserID(c), &in); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"added": true})
}

// PATCH /cart/items/:id
func (cc *CartController) UpdateQty(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := cc.Cart.UpdateQty(utils.CurrentUserID(c), uint(id), in.Qty); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// DELETE /cart/items/:id
func (cc *CartController) RemoveItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := cc.Cart.RemoveItem(utils.CurrentUserID(c), uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

// DELETE /cart
func (cc *CartController) Clear(c *gin.Context) {
	if err := cc.Cart.Clear(utils.CurrentUserID(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
