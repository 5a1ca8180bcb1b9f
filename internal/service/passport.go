package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/yezwei/news-xinjin/internal/captcha"
	"github.com/yezwei/news-xinjin/internal/constants"
	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
	"github.com/yezwei/news-xinjin/internal/sms"
	"github.com/yezwei/news-xinjin/pkg/logger"
)

var (
	ErrImageCodeExpired  = errors.New("图片验证码值过期了")
	ErrImageCodeMismatch = errors.New("图片验证码填写错误")
	ErrSMSCodeExpired    = errors.New("短信验证码过期了")
	ErrSMSCodeMismatch   = errors.New("短信验证码填写错误")
	ErrMobileRegistered  = errors.New("用户手机号码已经注册")
	ErrSMSThrottled      = errors.New("短信发送过于频繁")
	ErrSMSGateway        = errors.New("云通信发送短信验证码异常")
	ErrAccountNotFound   = errors.New("用户不存在")
	ErrPasswordWrong     = errors.New("密码填写错误")
)

// 验证码在 redis 中的键名，沿用门户前端已经约定的格式
const (
	imageCodeKeyFmt = "imageCode_%s"
	smsCodeKeyFmt   = "SMS_%s"
)

// PassportService 注册登录服务
type PassportService interface {
	// GenerateImageCode 生成图片验证码并缓存真实值
	GenerateImageCode(ctx context.Context, codeID string) ([]byte, error)
	// SendSMSCode 校验图片验证码后发送短信验证码
	SendSMSCode(ctx context.Context, mobile, imageCode, imageCodeID string) error
	Register(ctx context.Context, mobile, smsCode, password string) (*model.User, error)
	Login(ctx context.Context, mobile, password string) (*model.User, error)
}

type passportService struct {
	users   repository.UserRepository
	rdb     *redis.Client
	sender  sms.Sender
	captcha captcha.Generator

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewPassportService(users repository.UserRepository, rdb *redis.Client, sender sms.Sender, gen captcha.Generator) PassportService {
	return &passportService{
		users:    users,
		rdb:      rdb,
		sender:   sender,
		captcha:  gen,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (s *passportService) GenerateImageCode(ctx context.Context, codeID string) ([]byte, error) {
	text, img, err := s.captcha.Generate()
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf(imageCodeKeyFmt, codeID)
	if err := s.rdb.Set(ctx, key, text, constants.ImageCodeRedisExpires*time.Second).Err(); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *passportService) SendSMSCode(ctx context.Context, mobile, imageCode, imageCodeID string) error {
	// 取出真实值后立即删除，避免同一图片验证码被多次比对
	key := fmt.Sprintf(imageCodeKeyFmt, imageCodeID)
	real, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrImageCodeExpired
	}
	if err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		logger.Warn("删除图片验证码异常", zap.Error(err))
	}
	if !strings.EqualFold(imageCode, real) {
		return ErrImageCodeMismatch
	}

	// 提前判断手机号码是否注册过
	user, err := s.users.GetByMobile(ctx, mobile)
	if err != nil {
		return err
	}
	if user != nil {
		return ErrMobileRegistered
	}

	if !s.limiter(mobile).Allow() {
		return ErrSMSThrottled
	}

	code, err := randomSMSCode()
	if err != nil {
		return err
	}
	minutes := fmt.Sprintf("%d", constants.SMSCodeRedisExpires/60)
	if err := s.sender.SendTemplateSMS(ctx, mobile, []string{code, minutes}, constants.SMSTemplateID); err != nil {
		logger.Error("云通信发送短信验证码异常", zap.String("mobile", mobile), zap.Error(err))
		return ErrSMSGateway
	}

	// 发送成功后缓存验证码值供注册接口比对
	return s.rdb.Set(ctx, fmt.Sprintf(smsCodeKeyFmt, mobile), code, constants.SMSCodeRedisExpires*time.Second).Err()
}

func (s *passportService) Register(ctx context.Context, mobile, smsCode, password string) (*model.User, error) {
	key := fmt.Sprintf(smsCodeKeyFmt, mobile)
	real, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSMSCodeExpired
	}
	if err != nil {
		return nil, err
	}
	if smsCode != real {
		return nil, ErrSMSCodeMismatch
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		logger.Warn("删除短信验证码异常", zap.Error(err))
	}

	exist, err := s.users.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrMobileRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Mobile:       mobile,
		NickName:     mobile, // 注册时昵称默认取手机号码
		PasswordHash: string(hash),
		LastLogin:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *passportService) Login(ctx context.Context, mobile, password string) (*model.User, error) {
	user, err := s.users.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAccountNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrPasswordWrong
	}

	// 登录时间更新失败只记日志，不影响登录
	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		logger.Warn("更新最后登录时间异常", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	return user, nil
}

// limiter 每个手机号一个限速器：每分钟补充一次，突发上限 1
func (s *passportService) limiter(mobile string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[mobile]
	if !ok {
		l = rate.NewLimiter(rate.Every(time.Minute), 1)
		s.limiters[mobile] = l
	}
	return l
}

// randomSMSCode 6 位随机短信验证码，不足 6 位前面补零
func randomSMSCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
