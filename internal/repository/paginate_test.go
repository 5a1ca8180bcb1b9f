package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserFollow{},
		&model.UserCollection{},
		&model.Category{},
		&model.News{},
		&model.Comment{},
		&model.CommentLike{},
	))
	return db
}

func seedNews(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		news := model.News{
			Title:   fmt.Sprintf("新闻 %d", i),
			Source:  "测试",
			Digest:  "摘要",
			Content: "正文",
			Status:  model.NewsStatusApproved,
		}
		require.NoError(t, db.Create(&news).Error)
	}
}

func TestPaginateBasic(t *testing.T) {
	db := setupDB(t)
	seedNews(t, db, 25)

	var out []*model.News
	current, totalPage, err := Paginate(db.Model(&model.News{}).Order("id ASC"), 2, 10, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, current)
	assert.Equal(t, 3, totalPage)
	assert.Len(t, out, 10)
	assert.Equal(t, "新闻 10", out[0].Title)
}

func TestPaginateOutOfRange(t *testing.T) {
	db := setupDB(t)
	seedNews(t, db, 5)

	// 越界页返回空列表，总页数仍反映真实数据量
	var out []*model.News
	current, totalPage, err := Paginate(db.Model(&model.News{}), 9, 10, &out)
	require.NoError(t, err)
	assert.Equal(t, 9, current)
	assert.Equal(t, 1, totalPage)
	assert.Empty(t, out)
}

func TestPaginateEmptyTable(t *testing.T) {
	db := setupDB(t)

	var out []*model.News
	current, totalPage, err := Paginate(db.Model(&model.News{}), 1, 10, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, totalPage)
	assert.Empty(t, out)
}

func TestPaginateBadPageDefaults(t *testing.T) {
	db := setupDB(t)
	seedNews(t, db, 3)

	var out []*model.News
	current, totalPage, err := Paginate(db.Model(&model.News{}), 0, 0, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, totalPage)
	assert.Len(t, out, 3)
}
