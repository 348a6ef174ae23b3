package handler

import (
	"errors"
	"net/http"

	"deal_market/internal/domain/reward/service"
	"deal_market/pkg/response"
	"deal_market/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RewardHandler 积分处理器
type RewardHandler struct {
	service  service.RewardService
	referral service.ReferralService
}

func NewRewardHandler(service service.RewardService, referral service.ReferralService) *RewardHandler {
	return &RewardHandler{service: service, referral: referral}
}

// RedeemInput 兑换输入
type RedeemInput struct {
	Points int64 `json:"points" binding:"required,min=1"`
}

// InviteInput 邀请输入
type InviteInput struct {
	Phone string `json:"phone" binding:"required"`
}

// GetBalance 查询积分余额
// @Summary 查询当前用户积分余额
// @Tags Reward
// @Router /rewards/balance [get]
func (h *RewardHandler) GetBalance(c *gin.Context) {
	userID := c.GetString("userID")
	balance, err := h.service.GetBalance(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"balance": balance})
}

// GetLedger 查询积分流水
func (h *RewardHandler) GetLedger(c *gin.Context) {
	userID := c.GetString("userID")

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	list, total, err := h.service.GetLedger(userID, p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch ledger")
		return
	}
	response.Success(c, utils.PageResult{List: list, Total: total, Page: p.Page, Limit: p.Limit})
}

// Redeem 积分兑换
// @Summary 积分兑换为现金抵扣码
// @Tags Reward
// @Router /rewards/redeem [post]
func (h *RewardHandler) Redeem(c *gin.Context) {
	userID := c.GetString("userID")

	var input RedeemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	redemption, err := h.service.Redeem(userID, input.Points)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRedeemOutOfRange):
			response.Error(c, http.StatusBadRequest, response.ErrRedeemOutOfRange, err.Error())
		case errors.Is(err, service.ErrInsufficientPoints):
			response.Error(c, http.StatusBadRequest, response.ErrPointsInsufficient, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, redemption)
}

// GetRedemptions 查询兑换记录
func (h *RewardHandler) GetRedemptions(c *gin.Context) {
	userID := c.GetString("userID")

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	list, total, err := h.service.GetRedemptions(userID, p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch redemptions")
		return
	}
	response.Success(c, utils.PageResult{List: list, Total: total, Page: p.Page, Limit: p.Limit})
}

// ClaimRedemption 商家核销兑换码
func (h *RewardHandler) ClaimRedemption(c *gin.Context) {
	partnerID := c.GetString("userID")
	code := c.Param("code")

	redemption, err := h.service.ClaimRedemption(code, partnerID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, response.ErrRedemptionNotFound, "Redemption not found")
		case errors.Is(err, service.ErrRedemptionState):
			response.Fail(c, response.ErrRedemptionNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, redemption)
}

// Invite 发起邀请
func (h *RewardHandler) Invite(c *gin.Context) {
	userID := c.GetString("userID")

	var input InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	referral, err := h.referral.Invite(userID, input.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfReferral), errors.Is(err, service.ErrReferralDuplicate):
			response.Error(c, http.StatusBadRequest, response.ErrReferralInvalid, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, referral)
}

// GetReferrals 查询自己发起的邀请
func (h *RewardHandler) GetReferrals(c *gin.Context) {
	userID := c.GetString("userID")

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	list, total, err := h.referral.GetReferrals(userID, p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch referrals")
		return
	}
	response.Success(c, utils.PageResult{List: list, Total: total, Page: p.Page, Limit: p.Limit})
}
