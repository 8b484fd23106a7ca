package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ==================== 会话配置 ====================

// SessionConfig 会话配置，Secret 为空表示不启用会话
type SessionConfig struct {
	Secret string
	Issuer string
}

// Enabled 是否启用 JWT 会话
func (c SessionConfig) Enabled() bool {
	return c.Secret != ""
}

// ==================== Claims 定义 ====================

// RoleAdmin 审核员角色，可修改审核状态
const RoleAdmin = "admin"

// SessionClaims 外部认证签发的会话声明，sub 为用户 ID
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Session 当前请求的登录用户
type Session struct {
	UserID string
	Email  string
	Role   string
}

// ==================== Token ====================

// IssueToken 签发会话 Token
func IssueToken(cfg SessionConfig, s Session, ttl time.Duration) (string, error) {
	if !cfg.Enabled() {
		return "", errors.New("session secret not configured")
	}
	now := time.Now()
	claims := &SessionClaims{
		Email: s.Email,
		Role:  s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken 解析并校验会话 Token
func ParseToken(cfg SessionConfig, tokenString string) (*SessionClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeySession   = "session"
	ContextKeyRequestID = "request_id"
)

// SessionAuth 可选会话中间件
// 无 Authorization 头时放行（由 body 中的 id 标识用户）；携带了但无效则 401
func SessionAuth(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !cfg.Enabled() || authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"details": "authorization header must be Bearer {token}",
			})
			return
		}

		claims, err := ParseToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"details": "session token is invalid or expired",
			})
			return
		}

		c.Set(ContextKeySession, &Session{UserID: claims.Subject, Email: claims.Email, Role: claims.Role})
		c.Next()
	}
}

// RequireRole 角色权限校验：未登录 401，角色不符 403
// 会话未启用时没有人能通过
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		if s == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"details": "a session token is required",
			})
			return
		}
		for _, r := range roles {
			if s.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"details": "requires role " + strings.Join(roles, " or "),
		})
	}
}

// GetSession 从 Context 获取会话，未登录返回 nil
func GetSession(c *gin.Context) *Session {
	if v, exists := c.Get(ContextKeySession); exists {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}

// GetRequestID 从 Context 获取请求 ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
