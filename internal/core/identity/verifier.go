package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Assertion 身份提供方令牌中解出的声明
type Assertion struct {
	SubjectID  string
	Email      string
	Name       string
	PictureURL string
}

// Verifier 外部身份校验的窄接口，便于在测试里替换
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Assertion, error)
}

type Claims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier HS256 实现；sub 即身份提供方的 subject id
type TokenVerifier struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Issue 签发令牌（seed 工具与测试用）
func (v *TokenVerifier) Issue(subjectID, email, name, picture string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:   email,
		Name:    name,
		Picture: picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    v.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.Secret)
}

func (v *TokenVerifier) Verify(_ context.Context, rawToken string) (*Assertion, error) {
	t, err := jwt.ParseWithClaims(rawToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return v.Secret, nil
	}, jwt.WithIssuer(v.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return &Assertion{
		SubjectID:  c.Subject,
		Email:      c.Email,
		Name:       c.Name,
		PictureURL: c.Picture,
	}, nil
}
