package controllers

import (
	"fooddelivery/entity"
	"fooddelivery/pkg/apperr"
	"fooddelivery/pkg/resp"
	"fooddelivery/repository"
	"fooddelivery/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	Repo *repository.CustomerRepository
}

func NewCustomerController(repo *repository.CustomerRepository) *CustomerController {
	return &CustomerController{Repo: repo}
}

// GET /profile/addresses
func (cc *CustomerController) ListAddresses(c *gin.Context) {
	customer, err := cc.Repo.GetByUserID(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if customer == nil {
		resp.Error(c, apperr.NotFound("customer not found"))
		return
	}
	addrs, err := cc.Repo.ListAddresses(customer.ID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": addrs})
}

type addressReq struct {
	Label   string `json:"label" binding:"required"`
	Line1   string `json:"line1" binding:"required"`
	Line2   string `json:"line2"`
	City    string `json:"city" binding:"required"`
	ZipCode string `json:"zipCode"`
}

// POST /profile/addresses
func (cc *CustomerController) CreateAddress(c *gin.Context) {
	customer, err := cc.Repo.GetByUserID(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if customer == nil {
		resp.Error(c, apperr.NotFound("customer not found"))
		return
	}

	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	addr := entity.Address{
		CustomerID: customer.ID,
		Label:      req.Label,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		ZipCode:    req.ZipCode,
	}
	if err := cc.Repo.CreateAddress(&addr); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, addr)
}
