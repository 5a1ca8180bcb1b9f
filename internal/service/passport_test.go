package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/captcha"
	"github.com/yezwei/news-xinjin/internal/repository"
)

type fakeSender struct {
	mobile string
	datas  []string
	err    error
}

func (f *fakeSender) SendTemplateSMS(_ context.Context, mobile string, datas []string, _ int) error {
	f.mobile = mobile
	f.datas = datas
	return f.err
}

type passportEnv struct {
	svc    PassportService
	sender *fakeSender
	rdb    *redis.Client
	mr     *miniredis.Miniredis
	db     *gorm.DB
}

func setupPassport(t *testing.T) *passportEnv {
	t.Helper()
	db := setupDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sender := &fakeSender{}
	svc := NewPassportService(repository.NewUserRepository(db), rdb, sender, captcha.NewDigitGenerator())
	return &passportEnv{svc: svc, sender: sender, rdb: rdb, mr: mr, db: db}
}

// imageCode 读取缓存里的图片验证码真实值
func (e *passportEnv) imageCode(t *testing.T, codeID string) string {
	t.Helper()
	text, err := e.mr.Get("imageCode_" + codeID)
	require.NoError(t, err)
	return text
}

func TestGenerateImageCodeStoresText(t *testing.T) {
	env := setupPassport(t)
	ctx := context.Background()

	img, err := env.svc.GenerateImageCode(ctx, "cid-1")
	require.NoError(t, err)
	assert.NotEmpty(t, img)
	assert.Len(t, env.imageCode(t, "cid-1"), 4)
}

func TestSendSMSCodeHappyPath(t *testing.T) {
	env := setupPassport(t)
	ctx := context.Background()

	_, err := env.svc.GenerateImageCode(ctx, "cid-1")
	require.NoError(t, err)
	text := env.imageCode(t, "cid-1")

	require.NoError(t, env.svc.SendSMSCode(ctx, "13800000001", text, "cid-1"))
	assert.Equal(t, "13800000001", env.sender.mobile)
	require.Len(t, env.sender.datas, 2)

	// 发送的验证码与缓存的一致
	stored, err := env.mr.Get("SMS_13800000001")
	require.NoError(t, err)
	assert.Equal(t, env.sender.datas[0], stored)
	assert.Len(t, stored, 6)

	// 图片验证码比对后即删除
	assert.False(t, env.mr.Exists("imageCode_cid-1"))
}

func TestSendSMSCodeExpiredImageCode(t *testing.T) {
	env := setupPassport(t)
	err := env.svc.SendSMSCode(context.Background(), "13800000001", "ABCD", "cid-absent")
	assert.ErrorIs(t, err, ErrImageCodeExpired)
}

func TestSendSMSCodeWrongImageCode(t *testing.T) {
	env := setupPassport(t)
	ctx := context.Background()

	_, err := env.svc.GenerateImageCode(ctx, "cid-1")
	require.NoError(t, err)

	err = env.svc.SendSMSCode(ctx, "13800000001", "!!!!", "cid-1")
	assert.ErrorIs(t, err, ErrImageCodeMismatch)
	// 比对失败同样销毁验证码，下次须重新获取
	assert.False(t, env.mr.Exists("imageCode_cid-1"))
}

func TestSendSMSCodeImageCodeCaseInsensitive(t *testing.T) {
	env := setupPassport(t)
	ctx := context.Background()

	require.NoError(t, env.rdb.Set(ctx, "imageCode_cid-1", "AB3D", 0).Err())
	require.NoError(t, env.svc.SendSMSCode(ctx, "13800000001", "ab3d", "cid-1"))
}

func TestSendSMSCodeRegisteredMobile(t *testing.T) {
	env := setupPassport(t)
	ctx := context.Background()
	createUserWithMobile(t, env.db, "13800000001")

	require.NoError(t, env.rdb.Set(ctx, "imageCode_cid-1", "AB3D", 0).Err())
	err := env.svc.SendSMSCode(ctx, "13800000001", "AB3D", "cid-1")
	assert.ErrorIs(t, err, ErrMobileRegistered)
}

func TestSendSMSCodeThrottled(t *testing.T) {
	env := setupPassport(t)
	ctx := context.Background()

	require.NoError(t, env.rdb.Set(ctx, "imageCode_cid-1", "AB3D", 0).Err())
	require.NoError(t, env.svc.SendSMSCode(ctx, "13800000001", "AB3D", "cid-1"))

	require.NoError(t, env.rdb.Set(ctx, "imageCode_cid-2", "AB3D", 0).Err())
	err := env.svc.SendSMSCode(ctx, "13800000001", "AB3D", "cid-2")
	assert.ErrorIs(t, err, ErrSMSThrottled)
}

func TestRegisterHappyPath(t *testing.T) {
	env := setupPassport(t)
	ctx := context.Background()

	require.NoError(t, env.rdb.Set(ctx, "SMS_13800000001", "123456", 0).Err())
	user, err := env.svc.Register(ctx, "13800000001", "123456", "secret-pass")
	require.NoError(t, err)

	// 昵称默认取手机号，密码只存散列
	assert.Equal(t, "13800000001", user.NickName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-pass")))
	assert.NotEqual(t, "secret-pass", user.PasswordHash)

	// 短信验证码一次性使用
	assert.False(t, env.mr.Exists("SMS_13800000001"))
}

func TestRegisterWrongOrExpiredSMSCode(t *testing.T) {
	env := setupPassport(t)
	ctx := context.Background()

	_, err := env.svc.Register(ctx, "13800000001", "123456", "pass")
	assert.ErrorIs(t, err, ErrSMSCodeExpired)

	require.NoError(t, env.rdb.Set(ctx, "SMS_13800000001", "123456", 0).Err())
	_, err = env.svc.Register(ctx, "13800000001", "654321", "pass")
	assert.ErrorIs(t, err, ErrSMSCodeMismatch)
}

func TestRegisterDuplicateMobile(t *testing.T) {
	env := setupPassport(t)
	ctx := context.Background()
	createUserWithMobile(t, env.db, "13800000001")

	require.NoError(t, env.rdb.Set(ctx, "SMS_13800000001", "123456", 0).Err())
	_, err := env.svc.Register(ctx, "13800000001", "123456", "pass")
	assert.ErrorIs(t, err, ErrMobileRegistered)
}

func TestLogin(t *testing.T) {
	env := setupPassport(t)
	ctx := context.Background()

	require.NoError(t, env.rdb.Set(ctx, "SMS_13800000001", "123456", 0).Err())
	_, err := env.svc.Register(ctx, "13800000001", "123456", "secret-pass")
	require.NoError(t, err)

	user, err := env.svc.Login(ctx, "13800000001", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "13800000001", user.Mobile)

	_, err = env.svc.Login(ctx, "13800000001", "wrong")
	assert.ErrorIs(t, err, ErrPasswordWrong)

	_, err = env.svc.Login(ctx, "13899999999", "secret-pass")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
