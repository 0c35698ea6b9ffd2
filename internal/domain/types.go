package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound 删除/更新目标不存在时由仓储返回
var ErrNotFound = errors.New("record not found")

// StringList 以 JSON 文本落库的字符串数组（tags / technologies）
type StringList []string

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// Contains 大小写不敏感的成员判断
func (s StringList) Contains(item string) bool {
	for _, v := range s {
		if strings.EqualFold(v, item) {
			return true
		}
	}
	return false
}

// StringMap 以 JSON 文本落库的 string→string 映射（social links）
type StringMap map[string]string

func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = StringMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into StringMap", value)
	}
}

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		m = StringMap{}
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// IsDupKey 判断唯一约束冲突；不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
