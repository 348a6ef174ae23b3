package handler

import (
	"errors"
	"net/http"
	"time"

	"deal_market/internal/domain/store/service"
	"deal_market/pkg/response"
	"deal_market/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StoreHandler 门店处理器
type StoreHandler struct {
	service service.StoreService
}

func NewStoreHandler(service service.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

// SearchQuery 门店筛选参数
type SearchQuery struct {
	utils.Pagination
	Category    string `form:"category"`
	Keyword     string `form:"keyword"`
	PriceRating int    `form:"priceRating"`
}

// StatsQuery 统计查询参数
type StatsQuery struct {
	From string `form:"from"` // YYYY-MM-DD
	To   string `form:"to"`
}

// CreateStore 商家建店
// @Summary 商家创建门店
// @Tags Store
// @Router /stores [post]
func (h *StoreHandler) CreateStore(c *gin.Context) {
	ownerID := c.GetString("userID")

	var input service.StoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.Name == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "name is required")
		return
	}

	store, err := h.service.CreateStore(ownerID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreExists):
			response.Fail(c, response.ErrStoreExists, err.Error())
		case errors.Is(err, service.ErrInvalidPriceBand):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, store)
}

// UpdateStore 更新自己的门店
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	ownerID := c.GetString("userID")

	var input service.StoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	store, err := h.service.UpdateStore(ownerID, input)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, response.ErrStoreNotFound, "Store not found")
		case errors.Is(err, service.ErrInvalidPriceBand):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, store)
}

// GetStore 门店详情（公开）
func (h *StoreHandler) GetStore(c *gin.Context) {
	id := c.Param("id")
	store, err := h.service.GetStore(id)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrStoreNotFound, "Store not found")
		return
	}
	response.Success(c, store)
}

// GetMyStore 商家查看自己的门店
func (h *StoreHandler) GetMyStore(c *gin.Context) {
	ownerID := c.GetString("userID")
	store, err := h.service.GetMyStore(ownerID)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrStoreNotFound, "Store not found")
		return
	}
	response.Success(c, store)
}

// SearchStores 门店浏览/筛选（公开）
func (h *StoreHandler) SearchStores(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	stores, total, err := h.service.SearchStores(q.Category, q.Keyword, q.PriceRating, q.Page, q.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to search stores")
		return
	}
	response.Success(c, utils.PageResult{List: stores, Total: total, Page: q.Page, Limit: q.Limit})
}

// GetStats 商家统计报表，默认最近 30 天
func (h *StoreHandler) GetStats(c *gin.Context) {
	ownerID := c.GetString("userID")

	var q StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if q.From != "" {
		parsed, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid from date")
			return
		}
		from = parsed
	}
	if q.To != "" {
		parsed, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid to date")
			return
		}
		to = parsed
	}

	summary, series, err := h.service.GetStats(ownerID, from, to)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrStoreNotFound, "Store not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"summary": summary, "daily": series})
}
