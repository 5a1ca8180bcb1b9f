package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
	"github.com/yezwei/news-xinjin/internal/storage"
)

var (
	ErrBadGender        = errors.New("性别参数错误")
	ErrOldPasswordWrong = errors.New("原密码错误")
	ErrCategoryNotFound = errors.New("分类对象不存在")
)

// ProfileService 个人中心服务
type ProfileService interface {
	UpdateBaseInfo(ctx context.Context, user *model.User, nickName, signature, gender string) error
	ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error
	// UpdateAvatar 存储头像图片并更新用户头像对象名
	UpdateAvatar(ctx context.Context, user *model.User, data []byte) (string, error)
	// ReleaseNews 个人发布新闻，默认进入审核中状态
	ReleaseNews(ctx context.Context, user *model.User, title string, categoryID int64, digest, content string, indexImage []byte) (*model.News, error)
	ListUserNews(ctx context.Context, userID int64, page, perPage int) ([]*model.News, int, int, error)
}

type profileService struct {
	users      repository.UserRepository
	news       repository.NewsRepository
	categories repository.CategoryRepository
	store      storage.ObjectStore
}

func NewProfileService(users repository.UserRepository, news repository.NewsRepository, categories repository.CategoryRepository, store storage.ObjectStore) ProfileService {
	return &profileService{users: users, news: news, categories: categories, store: store}
}

func (s *profileService) UpdateBaseInfo(ctx context.Context, user *model.User, nickName, signature, gender string) error {
	if gender != "MAN" && gender != "WOMAN" {
		return ErrBadGender
	}
	user.NickName = nickName
	user.Signature = signature
	user.Gender = gender
	return s.users.Save(ctx, user)
}

func (s *profileService) ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrOldPasswordWrong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.Save(ctx, user)
}

func (s *profileService) UpdateAvatar(ctx context.Context, user *model.User, data []byte) (string, error) {
	name, err := s.store.Store(ctx, data)
	if err != nil {
		return "", err
	}
	user.AvatarURL = name
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}
	return name, nil
}

func (s *profileService) ReleaseNews(ctx context.Context, user *model.User, title string, categoryID int64, digest, content string, indexImage []byte) (*model.News, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	news := &model.News{
		Title:      title,
		Source:     "个人发布",
		Digest:     digest,
		Content:    content,
		CategoryID: categoryID,
		UserID:     user.ID,
		Status:     model.NewsStatusPending,
	}
	if len(indexImage) > 0 {
		name, err := s.store.Store(ctx, indexImage)
		if err != nil {
			return nil, err
		}
		news.IndexImageURL = name
	}
	if err := s.news.Create(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *profileService) ListUserNews(ctx context.Context, userID int64, page, perPage int) ([]*model.News, int, int, error) {
	return s.news.ListByUser(ctx, userID, page, perPage)
}
