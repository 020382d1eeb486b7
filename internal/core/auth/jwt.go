package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-gin-gorm-shop/internal/domain"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// 允许的时钟偏差
const leeway = time.Minute

type Claims struct {
	UID  uint        `json:"uid"`
	Role domain.Role `json:"role"` // buyer / seller / admin
	jwt.RegisteredClaims
}

func (c *Claims) Caller() domain.Caller { return domain.Caller{ID: c.UID, Role: c.Role} }

// JWTer 签发与校验 HS256 access token
type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (j *JWTer) Issue(uid uint, role domain.Role) (string, error) {
	if uid == 0 || !role.Valid() {
		return "", fmt.Errorf("issue token: bad subject uid=%d role=%q", uid, role)
	}
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UID:  uid,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			Subject:   strconv.FormatUint(uint64(uid), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}).SignedString(j.Secret)
}

// Parse 校验签名、签发方与过期时间；uid/role 不合法同样视为无效
func (j *JWTer) Parse(raw string) (*Claims, error) {
	var c Claims
	_, err := jwt.ParseWithClaims(raw, &c,
		func(*jwt.Token) (any, error) { return j.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.UID == 0 || !c.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return &c, nil
}

// ParseBearer 解析 Authorization 头（"Bearer <token>"）
func (j *JWTer) ParseBearer(header string) (*Claims, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, ErrMissingToken
	}
	return j.Parse(raw)
}
