package service

import (
	"context"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
)

// NewsService 门户侧的新闻查询服务
type NewsService interface {
	// ListHome 首页新闻列表，只含审核通过的新闻；categoryID 为 0 或 1（最新）不过滤分类
	ListHome(ctx context.Context, categoryID int64, page, perPage int) ([]*model.News, int, int, error)
	Get(ctx context.Context, id int64) (*model.News, error)
	// ClickRank 点击排行
	ClickRank(ctx context.Context, limit int) ([]*model.News, error)
	// RecordClick 详情页浏览，点击量加一
	RecordClick(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]*model.Category, error)
}

type newsService struct {
	news       repository.NewsRepository
	categories repository.CategoryRepository
}

func NewNewsService(news repository.NewsRepository, categories repository.CategoryRepository) NewsService {
	return &newsService{news: news, categories: categories}
}

func (s *newsService) ListHome(ctx context.Context, categoryID int64, page, perPage int) ([]*model.News, int, int, error) {
	// 分类 1 固定为“最新”，不做分类过滤
	if categoryID == 1 {
		categoryID = 0
	}
	return s.news.ListApproved(ctx, categoryID, page, perPage)
}

func (s *newsService) Get(ctx context.Context, id int64) (*model.News, error) {
	return s.news.GetByID(ctx, id)
}

func (s *newsService) ClickRank(ctx context.Context, limit int) ([]*model.News, error) {
	return s.news.TopClicked(ctx, limit)
}

func (s *newsService) RecordClick(ctx context.Context, id int64) error {
	return s.news.IncrementClicks(ctx, id)
}

func (s *newsService) Categories(ctx context.Context) ([]*model.Category, error) {
	return s.categories.ListAll(ctx)
}
