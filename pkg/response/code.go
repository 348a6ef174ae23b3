package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005
	ErrOTPInvalid   = 10006
	ErrOTPTooOften  = 10007

	// 门店模块错误 200xx
	ErrStoreNotFound = 20001
	ErrStoreExists   = 20002

	// 优惠模块错误 210xx
	ErrDealNotFound     = 21001
	ErrDealLimitReached = 21002
	ErrDealExpired      = 21003

	// 到店模块错误 220xx
	ErrVisitNotFound      = 22001
	ErrVisitBadTransition = 22002

	// 评价模块错误 230xx
	ErrReviewNotFound   = 23001
	ErrReviewExists     = 23002
	ErrReviewNotAllowed = 23003

	// 积分模块错误 240xx
	ErrPointsInsufficient = 24001
	ErrRedeemOutOfRange   = 24002
	ErrRedemptionNotFound = 24003
	ErrReferralInvalid    = 24004

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
