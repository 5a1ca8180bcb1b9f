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

func newCommentService(db *gorm.DB) CommentService {
	return NewCommentService(db, repository.NewNewsRepository(db), repository.NewCommentRepository(db))
}

func likeCount(t *testing.T, db *gorm.DB, commentID int64) int {
	t.Helper()
	var c model.Comment
	require.NoError(t, db.First(&c, "id = ?", commentID).Error)
	return c.LikeCount
}

func TestAddCommentAndReply(t *testing.T) {
	db := setupDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	news := createNews(t, db, 0, model.NewsStatusApproved)

	parent, err := svc.Add(ctx, u.ID, news.ID, "写得不错", nil)
	require.NoError(t, err)
	require.NotZero(t, parent.ID)

	reply, err := svc.Add(ctx, u.ID, news.ID, "同感", &parent.ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	views, err := svc.ListByNews(ctx, news.ID, u.ID)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestAddCommentUnknownNews(t *testing.T) {
	db := setupDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)

	_, err := svc.Add(ctx, u.ID, 9999, "内容", nil)
	assert.ErrorIs(t, err, ErrNewsNotFound)
}

func TestLikeIsSilentlyIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	news := createNews(t, db, 0, model.NewsStatusApproved)
	comment, err := svc.Add(ctx, u.ID, news.ID, "内容", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Like(ctx, u.ID, comment.ID))
	assert.Equal(t, 1, likeCount(t, db, comment.ID))

	// 重复点赞无声跳过，计数不再增长
	require.NoError(t, svc.Like(ctx, u.ID, comment.ID))
	assert.Equal(t, 1, likeCount(t, db, comment.ID))

	var cnt int64
	require.NoError(t, db.Model(&model.CommentLike{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestUnlikeIsSilentlyIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	news := createNews(t, db, 0, model.NewsStatusApproved)
	comment, err := svc.Add(ctx, u.ID, news.ID, "内容", nil)
	require.NoError(t, err)

	// 未点赞直接取消：无声跳过，计数不会变负
	require.NoError(t, svc.Unlike(ctx, u.ID, comment.ID))
	assert.Equal(t, 0, likeCount(t, db, comment.ID))

	require.NoError(t, svc.Like(ctx, u.ID, comment.ID))
	require.NoError(t, svc.Unlike(ctx, u.ID, comment.ID))
	require.NoError(t, svc.Unlike(ctx, u.ID, comment.ID))
	assert.Equal(t, 0, likeCount(t, db, comment.ID))
}

func TestLikeUnknownComment(t *testing.T) {
	db := setupDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)

	assert.ErrorIs(t, svc.Like(ctx, u.ID, 9999), ErrCommentNotFound)
	assert.ErrorIs(t, svc.Unlike(ctx, u.ID, 9999), ErrCommentNotFound)
}

func TestListByNewsMarksLiked(t *testing.T) {
	db := setupDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	u := createUser(t, db, 1)
	other := createUser(t, db, 2)
	news := createNews(t, db, 0, model.NewsStatusApproved)

	c1, err := svc.Add(ctx, u.ID, news.ID, "第一条", nil)
	require.NoError(t, err)
	c2, err := svc.Add(ctx, u.ID, news.ID, "第二条", nil)
	require.NoError(t, err)
	require.NoError(t, svc.Like(ctx, other.ID, c1.ID))

	views, err := svc.ListByNews(ctx, news.ID, other.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	likes := map[int64]bool{}
	for _, v := range views {
		likes[v.Comment.ID] = v.IsLike
	}
	assert.True(t, likes[c1.ID])
	assert.False(t, likes[c2.ID])

	// 匿名访问不标记点赞
	views, err = svc.ListByNews(ctx, news.ID, 0)
	require.NoError(t, err)
	for _, v := range views {
		assert.False(t, v.IsLike)
	}
}
