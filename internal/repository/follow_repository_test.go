package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
)

func seedUsers(t *testing.T, db *gorm.DB, n int) []*model.User {
	t.Helper()
	users := make([]*model.User, n)
	for i := 0; i < n; i++ {
		users[i] = &model.User{
			Mobile:   fmt.Sprintf("138000000%02d", i),
			NickName: fmt.Sprintf("用户%02d", i),
		}
		require.NoError(t, db.Create(users[i]).Error)
	}
	return users
}

func TestFollowCreateExistsDelete(t *testing.T) {
	db := setupDB(t)
	users := seedUsers(t, db, 2)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	ok, err := repo.Exists(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Create(ctx, users[0].ID, users[1].ID))
	ok, err = repo.Exists(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// 关注关系有方向
	ok, err = repo.Exists(ctx, users[1].ID, users[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Delete(ctx, users[0].ID, users[1].ID))
	ok, err = repo.Exists(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowDuplicateHitsUniqueIndex(t *testing.T) {
	db := setupDB(t)
	users := seedUsers(t, db, 2)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, users[0].ID, users[1].ID))
	assert.Error(t, repo.Create(ctx, users[0].ID, users[1].ID))
}

func TestFollowListFollowed(t *testing.T) {
	db := setupDB(t)
	users := seedUsers(t, db, 6)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	for _, u := range users[1:] {
		require.NoError(t, repo.Create(ctx, users[0].ID, u.ID))
	}

	followed, current, totalPage, err := repo.ListFollowed(ctx, users[0].ID, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, current)
	assert.Equal(t, 2, totalPage)
	assert.Len(t, followed, 4)

	followed, _, _, err = repo.ListFollowed(ctx, users[0].ID, 2, 4)
	require.NoError(t, err)
	assert.Len(t, followed, 1)
}
