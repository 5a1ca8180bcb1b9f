package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
	"github.com/yezwei/news-xinjin/internal/storage"
)

func newProfileService(t *testing.T, db *gorm.DB) (ProfileService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	svc := NewProfileService(
		repository.NewUserRepository(db),
		repository.NewNewsRepository(db),
		repository.NewCategoryRepository(db),
		store,
	)
	return svc, dir
}

func TestUpdateBaseInfo(t *testing.T) {
	db := setupDB(t)
	svc, _ := newProfileService(t, db)
	ctx := context.Background()
	u := createUser(t, db, 1)

	require.NoError(t, svc.UpdateBaseInfo(ctx, u, "新昵称", "个性签名", "WOMAN"))

	var got model.User
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.Equal(t, "新昵称", got.NickName)
	assert.Equal(t, "个性签名", got.Signature)
	assert.Equal(t, "WOMAN", got.Gender)
}

func TestUpdateBaseInfoBadGender(t *testing.T) {
	db := setupDB(t)
	svc, _ := newProfileService(t, db)
	u := createUser(t, db, 1)

	assert.ErrorIs(t, svc.UpdateBaseInfo(context.Background(), u, "昵称", "", "OTHER"), ErrBadGender)
}

func TestChangePassword(t *testing.T) {
	db := setupDB(t)
	svc, _ := newProfileService(t, db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	hash, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	u.PasswordHash = string(hash)
	require.NoError(t, db.Save(u).Error)

	assert.ErrorIs(t, svc.ChangePassword(ctx, u, "wrong", "new-pass"), ErrOldPasswordWrong)

	require.NoError(t, svc.ChangePassword(ctx, u, "old-pass", "new-pass"))
	var got model.User
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("new-pass")))
}

func TestUpdateAvatarStoresFile(t *testing.T) {
	db := setupDB(t)
	svc, dir := newProfileService(t, db)
	ctx := context.Background()
	u := createUser(t, db, 1)

	name, err := svc.UpdateAvatar(ctx, u, []byte("png-bytes"))
	require.NoError(t, err)
	require.NotEmpty(t, name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	var got model.User
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.Equal(t, name, got.AvatarURL)
}

func TestReleaseNewsEntersReview(t *testing.T) {
	db := setupDB(t)
	svc, _ := newProfileService(t, db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	require.NoError(t, db.Create(&model.Category{Name: "科技"}).Error)
	var cat model.Category
	require.NoError(t, db.First(&cat, "name = ?", "科技").Error)

	news, err := svc.ReleaseNews(ctx, u, "标题", cat.ID, "摘要", "正文", nil)
	require.NoError(t, err)
	assert.Equal(t, model.NewsStatusPending, news.Status)
	assert.Equal(t, "个人发布", news.Source)
	assert.Equal(t, u.ID, news.UserID)

	_, err = svc.ReleaseNews(ctx, u, "标题", 9999, "摘要", "正文", nil)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestListUserNewsIncludesAllStatuses(t *testing.T) {
	db := setupDB(t)
	svc, _ := newProfileService(t, db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	other := createUser(t, db, 2)
	createNews(t, db, u.ID, model.NewsStatusApproved)
	createNews(t, db, u.ID, model.NewsStatusPending)
	createNews(t, db, u.ID, model.NewsStatusRejected)
	createNews(t, db, other.ID, model.NewsStatusApproved)

	items, current, totalPage, err := svc.ListUserNews(ctx, u.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, totalPage)
	assert.Len(t, items, 3)
}
