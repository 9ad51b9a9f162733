package controllers

import (
	"strconv"

	"fooddelivery/pkg/apperr"
	"fooddelivery/pkg/resp"
	"fooddelivery/repository"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Repo     *repository.RestaurantRepository
	MenuRepo *repository.MenuRepository
}

func NewRestaurantController(repo *repository.RestaurantRepository, menuRepo *repository.MenuRepository) *RestaurantController {
	return &RestaurantController{Repo: repo, MenuRepo: menuRepo}
}

// GET /restaurants
func (rc *RestaurantController) List(c *gin.Context) {
	items, err := rc.Repo.List(true)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /restaurants/:id
func (rc *RestaurantController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	rest, err := rc.Repo.GetByID(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if rest == nil {
		resp.Error(c, apperr.NotFound("restaurant not found"))
		return
	}
	resp.OK(c, rest)
}

// GET /restaurants/:id/menus
func (rc *RestaurantController) Menus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	menus, err := rc.MenuRepo.ListForRestaurant(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": menus})
}
