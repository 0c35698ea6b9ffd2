package auth

import (
	"context"

	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/core/identity"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/utils"
)

// Resolver 把校验过的身份断言对齐到唯一的本地用户
type Resolver struct {
	Verifier identity.Verifier
	Users    domain.UserRepository
	IDGen    func() string
}

func NewResolver(v identity.Verifier, users domain.UserRepository) *Resolver {
	return &Resolver{Verifier: v, Users: users, IDGen: utils.NewID}
}

type resolutionKind int

const (
	useExisting resolutionKind = iota // subject 已有本地用户
	linkByEmail                       // 邮箱命中既有账户，补挂 subject id
	createNew                         // 首次出现
)

type resolution struct {
	kind resolutionKind
	user *domain.User // useExisting/linkByEmail 时为命中的用户
}

// decide 三岔路口单独成函数，分支各自可测
func decide(bySubject, byEmail *domain.User) resolution {
	if bySubject != nil {
		return resolution{kind: useExisting, user: bySubject}
	}
	if byEmail != nil {
		return resolution{kind: linkByEmail, user: byEmail}
	}
	return resolution{kind: createNew}
}

// Resolve 必选鉴权：失败即 401
func (r *Resolver) Resolve(ctx context.Context, rawToken string) (*Principal, error) {
	if rawToken == "" {
		return nil, apperror.Unauthorized("no token provided")
	}
	a, err := r.Verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, apperror.Unauthorized("invalid or expired token")
	}

	bySubject, err := r.Users.FindBySubject(ctx, a.SubjectID)
	if err != nil {
		return nil, apperror.Internal("lookup user failed", err)
	}
	var byEmail *domain.User
	if bySubject == nil && a.Email != "" {
		if byEmail, err = r.Users.FindByEmail(ctx, a.Email); err != nil {
			return nil, apperror.Internal("lookup user failed", err)
		}
	}

	var u *domain.User
	switch res := decide(bySubject, byEmail); res.kind {
	case useExisting:
		u = res.user

	case linkByEmail:
		// 预置账户（按邮箱播种的管理员）首次真实登录时挂上 subject id；
		// 头像与昵称只回填空位，绝不覆盖已有值
		u = res.user
		u.SubjectID = &a.SubjectID
		if u.PhotoURL == nil && a.PictureURL != "" {
			pic := a.PictureURL
			u.PhotoURL = &pic
		}
		if u.Name == nil && a.Name != "" {
			name := a.Name
			u.Name = &name
		}
		if err := r.Users.Update(ctx, u); err != nil {
			return nil, apperror.Internal("link user failed", err)
		}

	case createNew:
		u = newUserFromAssertion(a, r.idgen())
		if err := r.Users.Create(ctx, u); err != nil {
			if !domain.IsDupKey(err) {
				return nil, apperror.Internal("create user failed", err)
			}
			// 并发兜底：另一请求先建成，唯一索引挡下本次，重新按 subject 取
			if u, err = r.Users.FindBySubject(ctx, a.SubjectID); err != nil || u == nil {
				return nil, apperror.Internal("create user failed", err)
			}
		}
	}

	return &Principal{
		UserID:    u.ID,
		SubjectID: a.SubjectID,
		Email:     u.Email, // 取对齐后的用户邮箱，而非原始断言
		Role:      u.Role,
	}, nil
}

// ResolveOptional 可选鉴权：任何失败都当作匿名；只查不建
func (r *Resolver) ResolveOptional(ctx context.Context, rawToken string) *Principal {
	if rawToken == "" {
		return nil
	}
	a, err := r.Verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil
	}
	u, err := r.Users.FindBySubject(ctx, a.SubjectID)
	if err != nil || u == nil {
		return nil
	}
	return &Principal{UserID: u.ID, SubjectID: a.SubjectID, Email: u.Email, Role: u.Role}
}

func (r *Resolver) idgen() string {
	if r.IDGen != nil {
		return r.IDGen()
	}
	return utils.NewID()
}

func newUserFromAssertion(a *identity.Assertion, id string) *domain.User {
	sub := a.SubjectID
	u := &domain.User{
		ID:        id,
		SubjectID: &sub,
		Email:     a.Email,
		Role:      domain.RoleUser,
	}
	if a.Name != "" {
		name := a.Name
		u.Name = &name
	}
	if a.PictureURL != "" {
		pic := a.PictureURL
		u.PhotoURL = &pic
	}
	return u
}
