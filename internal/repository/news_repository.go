package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
)

type NewsRepository interface {
	GetByID(ctx context.Context, id int64) (*model.News, error)
	Create(ctx context.Context, news *model.News) error
	Save(ctx context.Context, news *model.News) error
	// IncrementClicks 点击量自增，与点击行为同属一次请求内的单条原子更新
	IncrementClicks(ctx context.Context, id int64) error
	// TopClicked 点击排行，只统计审核通过的新闻
	TopClicked(ctx context.Context, limit int) ([]*model.News, error)
	// ListApproved 首页新闻列表；categoryID 为 0 时不过滤分类
	ListApproved(ctx context.Context, categoryID int64, page, perPage int) ([]*model.News, int, int, error)
	// ListByUser 用户发布的新闻列表
	ListByUser(ctx context.Context, userID int64, page, perPage int) ([]*model.News, int, int, error)
	// ListForReview 后台审核列表：status != 0，可按标题关键字过滤
	ListForReview(ctx context.Context, keywords string, page, perPage int) ([]*model.News, int, int, error)
	// ListAll 后台编辑列表：不过滤状态，可按标题关键字过滤
	ListAll(ctx context.Context, keywords string, page, perPage int) ([]*model.News, int, int, error)
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository { return &newsRepository{db: db} }

func (r *newsRepository) GetByID(ctx context.Context, id int64) (*model.News, error) {
	var n model.News
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *newsRepository) Create(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

func (r *newsRepository) Save(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Save(news).Error
}

func (r *newsRepository) IncrementClicks(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.News{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1)).Error
}

func (r *newsRepository) TopClicked(ctx context.Context, limit int) ([]*model.News, error) {
	var news []*model.News
	err := r.db.WithContext(ctx).
		Where("status = ?", model.NewsStatusApproved).
		Order("clicks DESC").
		Limit(limit).
		Find(&news).Error
	return news, err
}

func (r *newsRepository) ListApproved(ctx context.Context, categoryID int64, page, perPage int) ([]*model.News, int, int, error) {
	var news []*model.News
	q := r.db.WithContext(ctx).Model(&model.News{}).
		Where("status = ?", model.NewsStatusApproved)
	if categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	q = q.Order("created_at DESC")
	current, totalPage, err := Paginate(q, page, perPage, &news)
	return news, current, totalPage, err
}

func (r *newsRepository) ListByUser(ctx context.Context, userID int64, page, perPage int) ([]*model.News, int, int, error) {
	var news []*model.News
	q := r.db.WithContext(ctx).Model(&model.News{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	current, totalPage, err := Paginate(q, page, perPage, &news)
	return news, current, totalPage, err
}

func (r *newsRepository) ListForReview(ctx context.Context, keywords string, page, perPage int) ([]*model.News, int, int, error) {
	var news []*model.News
	q := r.db.WithContext(ctx).Model(&model.News{}).
		Where("status != ?", model.NewsStatusApproved)
	if keywords != "" {
		q = q.Where("title LIKE ?", "%"+keywords+"%")
	}
	q = q.Order("created_at DESC")
	current, totalPage, err := Paginate(q, page, perPage, &news)
	return news, current, totalPage, err
}

func (r *newsRepository) ListAll(ctx context.Context, keywords string, page, perPage int) ([]*model.News, int, int, error) {
	var news []*model.News
	q := r.db.WithContext(ctx).Model(&model.News{})
	if keywords != "" {
		q = q.Where("title LIKE ?", "%"+keywords+"%")
	}
	q = q.Order("created_at DESC")
	current, totalPage, err := Paginate(q, page, perPage, &news)
	return news, current, totalPage, err
}
