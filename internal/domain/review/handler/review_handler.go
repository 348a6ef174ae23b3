package handler

import (
	"errors"
	"net/http"

	"deal_market/internal/domain/review/service"
	"deal_market/pkg/response"
	"deal_market/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReviewHandler 评价处理器
type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(service service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) handleReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, response.ErrReviewNotFound, "Review not found")
	case errors.Is(err, service.ErrInvalidRating):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	case errors.Is(err, service.ErrNoVisit):
		response.Fail(c, response.ErrReviewNotAllowed, err.Error())
	case errors.Is(err, service.ErrAlreadyExists):
		response.Fail(c, response.ErrReviewExists, err.Error())
	case errors.Is(err, service.ErrNotReviewOwner):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// CreateReview 消费者评价门店
// @Summary 评价门店
// @Tags Review
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.StoreID == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "storeId is required")
		return
	}

	review, err := h.service.CreateReview(c.GetString("userID"), input)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// UpdateReview 修改自己的评价
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	review, err := h.service.UpdateReview(c.GetString("userID"), c.Param("id"), input)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// Publish 管理端发布评价
func (h *ReviewHandler) Publish(c *gin.Context) {
	review, err := h.service.Publish(c.Param("id"))
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// GetStoreReviews 门店公开评价（公开）
func (h *ReviewHandler) GetStoreReviews(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	reviews, total, err := h.service.GetStoreReviews(c.Param("id"), p.Page, p.Limit)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: reviews, Total: total, Page: p.Page, Limit: p.Limit})
}

// GetMyReviews 消费者查看自己的评价
func (h *ReviewHandler) GetMyReviews(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	reviews, total, err := h.service.GetMyReviews(c.GetString("userID"), p.Page, p.Limit)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: reviews, Total: total, Page: p.Page, Limit: p.Limit})
}

// GetUnpublished 管理端待审核列表
func (h *ReviewHandler) GetUnpublished(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	reviews, total, err := h.service.GetUnpublished(p.Page, p.Limit)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: reviews, Total: total, Page: p.Page, Limit: p.Limit})
}
