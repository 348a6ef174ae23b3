package otp

import (
	"context"
	"fmt"
	"log"
	"time"

	"deal_market/internal/pkg/config"
	"deal_market/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// 验证码有效期 10 分钟，重发间隔 1 分钟
const (
	codeTTL        = 10 * time.Minute
	resendInterval = time.Minute
)

type OTPService interface {
	Send(phone string) (string, error)
	Verify(phone, code string) bool
}

// redisClient 只声明用到的命令，*redis.Client 天然满足
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

type otpService struct {
	rdb redisClient
}

func NewOTPService(rdb *redis.Client) OTPService {
	return &otpService{rdb: rdb}
}

// Send 生成并发送验证码
// 真实场景下应调用短信服务商接口 (如阿里云 SMS)
// 这里生成 6 位随机数存入 Redis，同时打印到日志
// 重发会覆盖旧验证码，旧码立即失效
func (s *otpService) Send(phone string) (string, error) {
	key := fmt.Sprintf("otp:%s", phone)

	// 1. 频率限制：剩余 TTL 超过 (有效期 - 重发间隔) 说明刚发不久
	ttl, err := s.rdb.TTL(context.Background(), key).Result()
	if err == nil && ttl > codeTTL-resendInterval {
		return "", fmt.Errorf("please wait before sending again")
	}

	// 2. 生成验证码（测试环境用固定码，方便联调）
	code := config.GlobalConfig.App.TestOTPCode
	if code == "" {
		code, err = utils.RandomDigits(6)
		if err != nil {
			return "", err
		}
	}

	// 3. 存入 Redis (10分钟过期，Set 覆盖旧码)
	if err := s.rdb.Set(context.Background(), key, code, codeTTL).Err(); err != nil {
		return "", err
	}

	// 4. 发送 (Mock: 打印日志)
	log.Printf("[OTP] Sending code %s to %s", code, phone)

	return code, nil
}

// Verify 验证验证码
// 验证成功后立即删除，防止重放
func (s *otpService) Verify(phone, code string) bool {
	if code == "" {
		return false
	}

	key := fmt.Sprintf("otp:%s", phone)
	val, err := s.rdb.Get(context.Background(), key).Result()
	if err != nil {
		return false
	}

	if val == code {
		s.rdb.Del(context.Background(), key)
		return true
	}
	return false
}
