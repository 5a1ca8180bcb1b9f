package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	// ListByNews 查询新闻下的全部评论，时间倒序
	ListByNews(ctx context.Context, newsID int64) ([]*model.Comment, error)
	// LikedCommentIDs 查询用户在给定评论集合中点赞过的评论 id
	LikedCommentIDs(ctx context.Context, userID int64, commentIDs []int64) ([]int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var c model.Comment
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) ListByNews(ctx context.Context, newsID int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Where("news_id = ?", newsID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) LikedCommentIDs(ctx context.Context, userID int64, commentIDs []int64) ([]int64, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.CommentLike{}).
		Select("comment_id").
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Scan(&ids).Error
	return ids, err
}
