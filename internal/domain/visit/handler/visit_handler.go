package handler

import (
	"errors"
	"net/http"

	"deal_market/internal/domain/visit/service"
	"deal_market/pkg/response"
	"deal_market/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VisitHandler 到店处理器
type VisitHandler struct {
	service service.VisitService
}

func NewVisitHandler(service service.VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

// ListQuery 预约列表参数
type ListQuery struct {
	utils.Pagination
	Status string `form:"status"`
}

func (h *VisitHandler) handleVisitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, response.ErrVisitNotFound, "Visit not found")
	case errors.Is(err, service.ErrBadTransition):
		response.Fail(c, response.ErrVisitBadTransition, err.Error())
	case errors.Is(err, service.ErrNotVisitOwner):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	case errors.Is(err, service.ErrVisitInPast),
		errors.Is(err, service.ErrDealUnavailable),
		errors.Is(err, service.ErrDealWrongStore):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// Schedule 消费者预约到店
// @Summary 预约到店
// @Tags Visit
// @Router /visits [post]
func (h *VisitHandler) Schedule(c *gin.Context) {
	var input service.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.StoreID == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "storeId is required")
		return
	}

	visit, err := h.service.Schedule(c.GetString("userID"), input)
	if err != nil {
		h.handleVisitError(c, err)
		return
	}
	response.Success(c, visit)
}

// Complete 商家核销到店
func (h *VisitHandler) Complete(c *gin.Context) {
	visit, err := h.service.Complete(c.GetString("userID"), c.Param("id"))
	if err != nil {
		h.handleVisitError(c, err)
		return
	}
	response.Success(c, visit)
}

// Cancel 消费者取消预约
func (h *VisitHandler) Cancel(c *gin.Context) {
	visit, err := h.service.Cancel(c.GetString("userID"), c.Param("id"))
	if err != nil {
		h.handleVisitError(c, err)
		return
	}
	response.Success(c, visit)
}

// GetVisit 预约详情
func (h *VisitHandler) GetVisit(c *gin.Context) {
	visit, err := h.service.GetVisit(c.GetString("userID"), c.Param("id"))
	if err != nil {
		h.handleVisitError(c, err)
		return
	}
	response.Success(c, visit)
}

// GetMyVisits 消费者查看自己的预约
func (h *VisitHandler) GetMyVisits(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	visits, total, err := h.service.GetMyVisits(c.GetString("userID"), q.Status, q.Page, q.Limit)
	if err != nil {
		h.handleVisitError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: visits, Total: total, Page: q.Page, Limit: q.Limit})
}

// GetStoreVisits 商家查看门店预约
func (h *VisitHandler) GetStoreVisits(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	visits, total, err := h.service.GetStoreVisits(c.GetString("userID"), q.Status, q.Page, q.Limit)
	if err != nil {
		h.handleVisitError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: visits, Total: total, Page: q.Page, Limit: q.Limit})
}
