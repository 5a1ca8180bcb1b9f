package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName 客户端存放 session 句柄的 cookie 名称
const CookieName = "session"

const keyPrefix = "session:"

// Data 服务端 session 记录，登录时写入，请求期间只读
type Data struct {
	UserID   int64  `json:"user_id"`
	NickName string `json:"nick_name"`
	Mobile   string `json:"mobile"`
	IsAdmin  bool   `json:"is_admin"`
}

// Store 基于 redis 的服务端 session 存储
// 客户端只持有签名后的不透明句柄（HS256 JWT，sid 声明指向 redis 记录），
// 记录带绝对过期时长，不做滑动续期。
type Store struct {
	rdb      *redis.Client
	secret   []byte
	lifetime time.Duration
}

func NewStore(rdb *redis.Client, secret string, lifetime time.Duration) *Store {
	return &Store{rdb: rdb, secret: []byte(secret), lifetime: lifetime}
}

// Create 写入 session 记录并返回签名句柄
func (s *Store) Create(ctx context.Context, data Data) (string, error) {
	sid := uuid.New().String()
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, keyPrefix+sid, payload, s.lifetime).Err(); err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"exp": now.Add(s.lifetime).Unix(),
	})
	return token.SignedString(s.secret)
}

// Set 覆盖已有句柄对应的 session 记录（登录态下修改昵称等场景）
func (s *Store) Set(ctx context.Context, handle string, data Data) error {
	sid := s.sid(handle)
	if sid == "" {
		return errors.New("invalid session handle")
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+sid, payload, s.lifetime).Err()
}

// Get 解析句柄并读取 session 记录
// 句柄缺失、签名不合法或记录过期都按匿名处理返回 (nil, nil)；
// redis 访问失败返回错误，由上层按数据层错误响应。
func (s *Store) Get(ctx context.Context, handle string) (*Data, error) {
	sid := s.sid(handle)
	if sid == "" {
		return nil, nil
	}
	raw, err := s.rdb.Get(ctx, keyPrefix+sid).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, nil
	}
	return &data, nil
}

// Destroy 销毁 session 记录；句柄不合法时视为已销毁
func (s *Store) Destroy(ctx context.Context, handle string) error {
	sid := s.sid(handle)
	if sid == "" {
		return nil
	}
	return s.rdb.Del(ctx, keyPrefix+sid).Err()
}

// sid 校验签名并取出 session 编号，失败返回空串
func (s *Store) sid(handle string) string {
	if handle == "" {
		return ""
	}
	token, err := jwt.Parse(handle, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}
