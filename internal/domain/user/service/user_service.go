package service

import (
	"errors"
	"regexp"
	"time"

	"deal_market/internal/domain/user/model"
	"deal_market/internal/domain/user/repository"
	"deal_market/internal/pkg/otp"
	"deal_market/pkg/logger"
	"deal_market/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidPhone 手机号格式不合法
var ErrInvalidPhone = errors.New("invalid phone number")

// 可选国际区号前缀 + 4~15 位数字
var phonePattern = regexp.MustCompile(`^\+?[0-9]{4,15}$`)

// ReferralBinder 注册时绑定邀请关系
// 由 reward 模块的 referral 服务实现，避免 user 依赖 reward 的具体类型
type ReferralBinder interface {
	BindReferee(code string, refereeID string, refereePhone string) error
}

// UserService 用户服务接口
type UserService interface {
	LoginOrRegister(phone, code, referralCode string) (string, error)
	SendOTP(phone string) error
	GetUsers(page, limit int) ([]model.User, int64, error)
	GetUser(id string) (*model.User, error)
	UpdateUser(id string, nickname, avatarURL string) (*model.User, error)
	BecomePartner(id string) (*model.User, error)
	BanUser(id string, until *time.Time) error
	DeleteUser(id string) error
}

// userService 实现
type userService struct {
	repo     repository.UserRepository
	otp      otp.OTPService
	referral ReferralBinder // 可为 nil
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, otp otp.OTPService, referral ReferralBinder) UserService {
	return &userService{repo: repo, otp: otp, referral: referral}
}

// LoginOrRegister 验证码登录，首次登录自动注册
func (s *userService) LoginOrRegister(phone, code, referralCode string) (string, error) {
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}

	// 1. 验证验证码
	if !s.otp.Verify(phone, code) {
		return "", errors.New("invalid verification code")
	}

	// 2. 查询用户是否存在
	user, err := s.repo.GetByPhone(phone)
	isNew := false
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 3. 不存在则注册，验证码通过即视为手机号已验证
			user = &model.User{
				Phone:    phone,
				Nickname: "User_" + phone[len(phone)-4:], // 默认昵称
				Role:     model.RoleConsumer,
				Status:   model.StatusNormal,
				Verified: true,
			}
			if err := s.repo.Create(user); err != nil {
				return "", err
			}
			isNew = true
		} else {
			return "", err
		}
	}

	// 4. 检查用户状态
	if user.Status == model.StatusBanned {
		if user.BannedUntil != nil && time.Now().After(*user.BannedUntil) {
			user.Status = model.StatusNormal
			user.BannedUntil = nil
			s.repo.Update(user)
		} else {
			return "", errors.New("account is banned")
		}
	}
	if user.Status == model.StatusDeleted {
		return "", errors.New("account has been deleted")
	}

	// 5. 新用户带邀请码则绑定邀请关系，失败不阻塞登录
	if isNew && referralCode != "" && s.referral != nil {
		if err := s.referral.BindReferee(referralCode, user.ID, user.Phone); err != nil {
			logger.Warn("Failed to bind referral",
				zap.String("code", referralCode), zap.String("userID", user.ID), zap.Error(err))
		}
	}

	// 6. 生成 Token
	token, tokenExpireAt, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", err
	}

	// 7. 保存token到用户表
	user.Token = token
	user.TokenExpireAt = tokenExpireAt
	if err := s.repo.Update(user); err != nil {
		return "", err
	}

	return token, nil
}

func (s *userService) SendOTP(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	_, err := s.otp.Send(phone)
	return err
}

// GetUsers 获取用户列表（分页）
func (s *userService) GetUsers(page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.GetList(offset, limit)
}

// GetUser 获取单个用户
func (s *userService) GetUser(id string) (*model.User, error) {
	return s.repo.GetByID(id)
}

// UpdateUser 更新用户资料
func (s *userService) UpdateUser(id string, nickname, avatarURL string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if nickname != "" {
		user.Nickname = nickname
	}
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// BecomePartner 消费者升级为商家角色
func (s *userService) BecomePartner(id string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if user.Role == model.RolePartner {
		return user, nil
	}
	user.Role = model.RolePartner

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// BanUser 封禁用户，until 为 nil 表示永久
func (s *userService) BanUser(id string, until *time.Time) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	user.Status = model.StatusBanned
	user.BannedUntil = until
	return s.repo.Update(user)
}

// DeleteUser 删除用户（软删除，标记为已注销）
func (s *userService) DeleteUser(id string) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	// 标记为已注销状态，而不是真正删除
	user.Status = model.StatusDeleted
	return s.repo.Update(user)
}
