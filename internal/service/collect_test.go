package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
)

func newCollectService(db *gorm.DB) CollectService {
	return NewCollectService(repository.NewNewsRepository(db), repository.NewCollectionRepository(db))
}

func TestCollectAndCancel(t *testing.T) {
	db := setupDB(t)
	svc := newCollectService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	news := createNews(t, db, 0, model.NewsStatusApproved)

	require.NoError(t, svc.Collect(ctx, u.ID, news.ID))
	ok, err := svc.IsCollected(ctx, u.ID, news.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Cancel(ctx, u.ID, news.ID))
	ok, err = svc.IsCollected(ctx, u.ID, news.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCollectTwiceReportsExists(t *testing.T) {
	db := setupDB(t)
	svc := newCollectService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	news := createNews(t, db, 0, model.NewsStatusApproved)

	require.NoError(t, svc.Collect(ctx, u.ID, news.ID))
	assert.ErrorIs(t, svc.Collect(ctx, u.ID, news.ID), ErrAlreadyCollected)

	// 收藏列表里只出现一次
	items, _, _, err := svc.ListCollections(ctx, u.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCancelAbsentReportsNoData(t *testing.T) {
	db := setupDB(t)
	svc := newCollectService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	news := createNews(t, db, 0, model.NewsStatusApproved)

	assert.ErrorIs(t, svc.Cancel(ctx, u.ID, news.ID), ErrNotCollected)
}

func TestCollectUnknownNews(t *testing.T) {
	db := setupDB(t)
	svc := newCollectService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)

	assert.ErrorIs(t, svc.Collect(ctx, u.ID, 9999), ErrNewsNotFound)
	assert.ErrorIs(t, svc.Cancel(ctx, u.ID, 9999), ErrNewsNotFound)
}

func TestListCollectionsPaged(t *testing.T) {
	db := setupDB(t)
	svc := newCollectService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	for i := 0; i < 12; i++ {
		news := createNews(t, db, 0, model.NewsStatusApproved)
		require.NoError(t, svc.Collect(ctx, u.ID, news.ID))
	}

	items, current, totalPage, err := svc.ListCollections(ctx, u.ID, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, totalPage)
	assert.Len(t, items, 2)
}
