package model

import (
	"time"

	baseModel "deal_market/pkg/model"
)

// 用户角色
const (
	RoleConsumer = 1
	RolePartner  = 2
	RoleAdmin    = 9
)

// 用户状态
const (
	StatusNormal  = 1
	StatusBanned  = 2
	StatusDeleted = 3
)

// User 用户模型，手机号唯一标识
type User struct {
	baseModel.BaseModel
	Phone         string     `gorm:"uniqueIndex;not null" json:"phone"`
	Nickname      string     `json:"nickname"`
	AvatarURL     string     `json:"avatarUrl"`
	Role          int        `gorm:"default:1" json:"role"`
	Status        int        `gorm:"default:1" json:"status"`
	Verified      bool       `gorm:"default:false" json:"verified"` // 手机号是否已验证
	BannedUntil   *time.Time `json:"bannedUntil,omitempty"`
	Token         string     `json:"-"` // 当前有效 token，不返回给前端
	TokenExpireAt *time.Time `json:"-"`
}
