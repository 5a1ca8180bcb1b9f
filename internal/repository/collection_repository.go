package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
)

type CollectionRepository interface {
	Create(ctx context.Context, userID, newsID int64) error
	Delete(ctx context.Context, userID, newsID int64) error
	Exists(ctx context.Context, userID, newsID int64) (bool, error)
	// ListNews 分页查询用户收藏的新闻
	ListNews(ctx context.Context, userID int64, page, perPage int) ([]*model.News, int, int, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, userID, newsID int64) error {
	c := &model.UserCollection{UserID: userID, NewsID: newsID}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collectionRepository) Delete(ctx context.Context, userID, newsID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND news_id = ?", userID, newsID).
		Delete(&model.UserCollection{}).Error
}

func (r *collectionRepository) Exists(ctx context.Context, userID, newsID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserCollection{}).
		Where("user_id = ? AND news_id = ?", userID, newsID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *collectionRepository) ListNews(ctx context.Context, userID int64, page, perPage int) ([]*model.News, int, int, error) {
	var news []*model.News
	q := r.db.WithContext(ctx).Model(&model.News{}).
		Joins("JOIN info_user_collection ON info_user_collection.news_id = info_news.id").
		Where("info_user_collection.user_id = ?", userID).
		Order("info_user_collection.created_at DESC")
	current, totalPage, err := Paginate(q, page, perPage, &news)
	return news, current, totalPage, err
}
