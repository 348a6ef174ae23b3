package handler

import (
	"errors"
	"net/http"

	"deal_market/internal/domain/deal/service"
	"deal_market/pkg/response"
	"deal_market/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DealHandler 优惠处理器
type DealHandler struct {
	service service.DealService
}

func NewDealHandler(service service.DealService) *DealHandler {
	return &DealHandler{service: service}
}

// BrowseQuery 优惠浏览参数
type BrowseQuery struct {
	utils.Pagination
	Category string `form:"category"`
}

func (h *DealHandler) handleDealError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, response.ErrDealNotFound, "Deal not found")
	case errors.Is(err, service.ErrDealLimitReached):
		response.Fail(c, response.ErrDealLimitReached, err.Error())
	case errors.Is(err, service.ErrInvalidWindow), errors.Is(err, service.ErrInvalidDiscount):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	case errors.Is(err, service.ErrNotDealOwner):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// CreateDeal 商家发布优惠
// @Summary 商家发布优惠
// @Tags Deal
// @Router /deals [post]
func (h *DealHandler) CreateDeal(c *gin.Context) {
	ownerID := c.GetString("userID")

	var input service.DealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.Title == "" || input.Category == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "title and category are required")
		return
	}

	deal, err := h.service.CreateDeal(ownerID, input)
	if err != nil {
		h.handleDealError(c, err)
		return
	}
	response.Success(c, deal)
}

// UpdateDeal 更新自己的优惠
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	ownerID := c.GetString("userID")
	dealID := c.Param("id")

	var input service.DealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	deal, err := h.service.UpdateDeal(ownerID, dealID, input)
	if err != nil {
		h.handleDealError(c, err)
		return
	}
	response.Success(c, deal)
}

// DeactivateDeal 下线优惠
func (h *DealHandler) DeactivateDeal(c *gin.Context) {
	if err := h.service.DeactivateDeal(c.GetString("userID"), c.Param("id")); err != nil {
		h.handleDealError(c, err)
		return
	}
	response.Success(c, nil)
}

// ActivateDeal 重新上线优惠
func (h *DealHandler) ActivateDeal(c *gin.Context) {
	if err := h.service.ActivateDeal(c.GetString("userID"), c.Param("id")); err != nil {
		h.handleDealError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetDeal 优惠详情（公开）
func (h *DealHandler) GetDeal(c *gin.Context) {
	deal, err := h.service.GetDeal(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrDealNotFound, "Deal not found")
		return
	}
	response.Success(c, deal)
}

// GetMyDeals 商家查看自己门店的优惠
func (h *DealHandler) GetMyDeals(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	deals, total, err := h.service.GetMyDeals(c.GetString("userID"), p.Page, p.Limit)
	if err != nil {
		h.handleDealError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: deals, Total: total, Page: p.Page, Limit: p.Limit})
}

// GetStoreDeals 门店在售优惠（公开）
func (h *DealHandler) GetStoreDeals(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	deals, total, err := h.service.GetStoreDeals(c.Param("id"), p.Page, p.Limit)
	if err != nil {
		h.handleDealError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: deals, Total: total, Page: p.Page, Limit: p.Limit})
}

// BrowseDeals 优惠浏览（公开）
// @Summary 浏览生效中的优惠
// @Tags Deal
// @Router /deals [get]
func (h *DealHandler) BrowseDeals(c *gin.Context) {
	var q BrowseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	deals, total, err := h.service.Browse(q.Category, q.Page, q.Limit)
	if err != nil {
		h.handleDealError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: deals, Total: total, Page: q.Page, Limit: q.Limit})
}
