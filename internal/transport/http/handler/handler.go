package handler

import (
	"time"

	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/domain"
)

// optString 空串规整为 NULL（显式传 "" 表示清空可选 URL 字段）
func optString(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

// validateSocialLinks 只认固定平台 key
func validateSocialLinks(links domain.StringMap) *apperror.E {
	var violations []apperror.FieldViolation
	for k := range links {
		if _, ok := domain.SocialPlatforms[k]; !ok {
			violations = append(violations, apperror.FieldViolation{
				Field:   "socialLinks." + k,
				Message: "unrecognized platform",
			})
		}
	}
	if len(violations) > 0 {
		return apperror.Validation(violations...)
	}
	return nil
}

// parseDate 接受 RFC3339 或 YYYY-MM-DD
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
