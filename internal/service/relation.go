package service

import (
	"context"
	"errors"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
)

var (
	ErrAuthorNotFound  = errors.New("作者不存在")
	ErrAlreadyFollowed = errors.New("不能重复关注")
	ErrNotFollowed     = errors.New("用户未关注，请先关注")
)

// RelationService 关注关系服务
// 关注与取消关注是一对非对称的幂等开关：重复关注报已存在，取消未关注报无数据。
type RelationService interface {
	Follow(ctx context.Context, userID, authorID int64) error
	Unfollow(ctx context.Context, userID, authorID int64) error
	IsFollowing(ctx context.Context, userID, authorID int64) (bool, error)
	// ListFollowed 当前用户的关注列表，分页
	ListFollowed(ctx context.Context, userID int64, page, perPage int) ([]*model.User, int, int, error)
}

type relationService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

func NewRelationService(users repository.UserRepository, follows repository.FollowRepository) RelationService {
	return &relationService{users: users, follows: follows}
}

func (s *relationService) Follow(ctx context.Context, userID, authorID int64) error {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return err
	}
	if author == nil {
		return ErrAuthorNotFound
	}
	exists, err := s.follows.Exists(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFollowed
	}
	return s.follows.Create(ctx, userID, authorID)
}

func (s *relationService) Unfollow(ctx context.Context, userID, authorID int64) error {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return err
	}
	if author == nil {
		return ErrAuthorNotFound
	}
	exists, err := s.follows.Exists(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFollowed
	}
	return s.follows.Delete(ctx, userID, authorID)
}

func (s *relationService) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	return s.follows.Exists(ctx, userID, authorID)
}

func (s *relationService) ListFollowed(ctx context.Context, userID int64, page, perPage int) ([]*model.User, int, int, error) {
	return s.follows.ListFollowed(ctx, userID, page, perPage)
}
