package utils

import (
	"crypto/rand"
	"math/big"
)

// 兑换码/邀请码字符集，去掉易混淆的 0/O/1/I
const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomCode 生成指定长度的随机大写字母数字码
func RandomCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(codeCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeCharset[n.Int64()]
	}
	return string(buf), nil
}

// RandomDigits 生成指定长度的随机数字验证码
func RandomDigits(length int) (string, error) {
	max := big.NewInt(10)
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
