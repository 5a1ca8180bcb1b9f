package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
	"github.com/yezwei/news-xinjin/internal/storage"
	"github.com/yezwei/news-xinjin/pkg/logger"
)

var (
	ErrEmptyReason    = errors.New("请输入拒绝原因")
	ErrBadReviewAct   = errors.New("审核动作参数错误")
	ErrCategoryExists = errors.New("分类名已存在")
)

// UserStats 后台用户统计
type UserStats struct {
	TotalCount int64 `json:"total_count"`
	MonthCount int64 `json:"mon_count"`
	DayCount   int64 `json:"day_count"`
	// 近 31 天每天的活跃用户数，按日期升序
	ActiveDates  []string `json:"active_date"`
	ActiveCounts []int64  `json:"active_count"`
}

// AdminService 后台管理服务
type AdminService interface {
	Login(ctx context.Context, mobile, password string) (*model.User, error)
	Stats(ctx context.Context) (*UserStats, error)
	ListUsers(ctx context.Context, page, perPage int) ([]*model.User, int, int, error)
	ListForReview(ctx context.Context, keywords string, page, perPage int) ([]*model.News, int, int, error)
	GetNews(ctx context.Context, id int64) (*model.News, error)
	// Review 审核新闻：accept 通过，reject 需要填写拒绝原因
	Review(ctx context.Context, newsID int64, action, reason string) error
	ListForEdit(ctx context.Context, keywords string, page, perPage int) ([]*model.News, int, int, error)
	EditNews(ctx context.Context, newsID int64, title string, categoryID int64, digest, content string, indexImage []byte) error
	Categories(ctx context.Context) ([]*model.Category, error)
	// UpsertCategory id 为 0 时新增分类，否则修改分类名
	UpsertCategory(ctx context.Context, id int64, name string) error
}

type adminService struct {
	users      repository.UserRepository
	news       repository.NewsRepository
	categories repository.CategoryRepository
	store      storage.ObjectStore
}

func NewAdminService(users repository.UserRepository, news repository.NewsRepository, categories repository.CategoryRepository, store storage.ObjectStore) AdminService {
	return &adminService{users: users, news: news, categories: categories, store: store}
}

func (s *adminService) Login(ctx context.Context, mobile, password string) (*model.User, error) {
	user, err := s.users.GetAdminByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAccountNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrPasswordWrong
	}
	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		logger.Warn("更新最后登录时间异常", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	return user, nil
}

func (s *adminService) Stats(ctx context.Context) (*UserStats, error) {
	stats := &UserStats{}
	var err error
	if stats.TotalCount, err = s.users.CountNonAdmin(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	monthBegin := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if stats.MonthCount, err = s.users.CountNonAdminSince(ctx, monthBegin); err != nil {
		return nil, err
	}
	dayBegin := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.DayCount, err = s.users.CountNonAdminSince(ctx, dayBegin); err != nil {
		return nil, err
	}

	// 往前取 31 天的活跃数，最后翻转成按日期升序
	for i := 0; i < 31; i++ {
		begin := dayBegin.AddDate(0, 0, -i)
		end := begin.AddDate(0, 0, 1)
		cnt, err := s.users.CountActiveBetween(ctx, begin, end)
		if err != nil {
			return nil, err
		}
		stats.ActiveDates = append(stats.ActiveDates, begin.Format("2006-01-02"))
		stats.ActiveCounts = append(stats.ActiveCounts, cnt)
	}
	for i, j := 0, len(stats.ActiveDates)-1; i < j; i, j = i+1, j-1 {
		stats.ActiveDates[i], stats.ActiveDates[j] = stats.ActiveDates[j], stats.ActiveDates[i]
		stats.ActiveCounts[i], stats.ActiveCounts[j] = stats.ActiveCounts[j], stats.ActiveCounts[i]
	}
	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context, page, perPage int) ([]*model.User, int, int, error) {
	return s.users.ListNonAdmin(ctx, page, perPage)
}

func (s *adminService) ListForReview(ctx context.Context, keywords string, page, perPage int) ([]*model.News, int, int, error) {
	return s.news.ListForReview(ctx, keywords, page, perPage)
}

func (s *adminService) GetNews(ctx context.Context, id int64) (*model.News, error) {
	news, err := s.news.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if news == nil {
		return nil, ErrNewsNotFound
	}
	return news, nil
}

func (s *adminService) Review(ctx context.Context, newsID int64, action, reason string) error {
	news, err := s.GetNews(ctx, newsID)
	if err != nil {
		return err
	}
	switch action {
	case "accept":
		news.Status = model.NewsStatusApproved
		news.Reason = ""
	case "reject":
		if reason == "" {
			return ErrEmptyReason
		}
		news.Status = model.NewsStatusRejected
		news.Reason = reason
	default:
		return ErrBadReviewAct
	}
	return s.news.Save(ctx, news)
}

func (s *adminService) ListForEdit(ctx context.Context, keywords string, page, perPage int) ([]*model.News, int, int, error) {
	return s.news.ListAll(ctx, keywords, page, perPage)
}

func (s *adminService) EditNews(ctx context.Context, newsID int64, title string, categoryID int64, digest, content string, indexImage []byte) error {
	news, err := s.GetNews(ctx, newsID)
	if err != nil {
		return err
	}
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	news.Title = title
	news.CategoryID = categoryID
	news.Digest = digest
	news.Content = content
	if len(indexImage) > 0 {
		name, err := s.store.Store(ctx, indexImage)
		if err != nil {
			return err
		}
		news.IndexImageURL = name
	}
	return s.news.Save(ctx, news)
}

func (s *adminService) Categories(ctx context.Context) ([]*model.Category, error) {
	return s.categories.ListAll(ctx)
}

func (s *adminService) UpsertCategory(ctx context.Context, id int64, name string) error {
	exist, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if exist != nil && exist.ID != id {
		return ErrCategoryExists
	}

	if id == 0 {
		return s.categories.Create(ctx, &model.Category{Name: name})
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	category.Name = name
	return s.categories.Save(ctx, category)
}
