package utils

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDupKey 唯一约束冲突；驱动没开 TranslateError 时按错误文本兜底
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
