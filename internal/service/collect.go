package service

import (
	"context"
	"errors"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
)

var (
	ErrNewsNotFound     = errors.New("新闻对象不存在")
	ErrAlreadyCollected = errors.New("不能重复收藏")
	ErrNotCollected     = errors.New("新闻未收藏，请先收藏")
)

// CollectService 新闻收藏服务
type CollectService interface {
	Collect(ctx context.Context, userID, newsID int64) error
	Cancel(ctx context.Context, userID, newsID int64) error
	IsCollected(ctx context.Context, userID, newsID int64) (bool, error)
	// ListCollections 用户收藏的新闻列表，分页
	ListCollections(ctx context.Context, userID int64, page, perPage int) ([]*model.News, int, int, error)
}

type collectService struct {
	news        repository.NewsRepository
	collections repository.CollectionRepository
}

func NewCollectService(news repository.NewsRepository, collections repository.CollectionRepository) CollectService {
	return &collectService{news: news, collections: collections}
}

func (s *collectService) Collect(ctx context.Context, userID, newsID int64) error {
	news, err := s.news.GetByID(ctx, newsID)
	if err != nil {
		return err
	}
	if news == nil {
		return ErrNewsNotFound
	}
	exists, err := s.collections.Exists(ctx, userID, newsID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyCollected
	}
	return s.collections.Create(ctx, userID, newsID)
}

func (s *collectService) Cancel(ctx context.Context, userID, newsID int64) error {
	news, err := s.news.GetByID(ctx, newsID)
	if err != nil {
		return err
	}
	if news == nil {
		return ErrNewsNotFound
	}
	exists, err := s.collections.Exists(ctx, userID, newsID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotCollected
	}
	return s.collections.Delete(ctx, userID, newsID)
}

func (s *collectService) IsCollected(ctx context.Context, userID, newsID int64) (bool, error) {
	return s.collections.Exists(ctx, userID, newsID)
}

func (s *collectService) ListCollections(ctx context.Context, userID int64, page, perPage int) ([]*model.News, int, int, error) {
	return s.collections.ListNews(ctx, userID, page, perPage)
}
