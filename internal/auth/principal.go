package auth

import (
	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/domain"
)

// Principal 已解析的调用者身份，鉴权判断只看它
type Principal struct {
	UserID    string
	SubjectID string
	Email     string
	Role      string
}

func (p *Principal) IsAdmin() bool { return p != nil && p.Role == domain.RoleAdmin }

// RequireAdmin 纯判断，不做 I/O
func RequireAdmin(p *Principal) error {
	if p == nil {
		return apperror.Unauthorized("authentication required")
	}
	if p.Role != domain.RoleAdmin {
		return apperror.Forbidden("admin access required")
	}
	return nil
}
