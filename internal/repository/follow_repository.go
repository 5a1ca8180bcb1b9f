package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
)

type FollowRepository interface {
	Create(ctx context.Context, followerID, followedID int64) error
	Delete(ctx context.Context, followerID, followedID int64) error
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	// ListFollowed 分页查询 followerID 关注的用户
	ListFollowed(ctx context.Context, followerID int64, page, perPage int) ([]*model.User, int, int, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, followerID, followedID int64) error {
	// 重复关注由调用方先行判断；并发竞争落到唯一键冲突，按数据库错误返回
	f := &model.UserFollow{FollowerID: followerID, FollowedID: followedID}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.UserFollow{}).Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserFollow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) ListFollowed(ctx context.Context, followerID int64, page, perPage int) ([]*model.User, int, int, error) {
	var users []*model.User
	q := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN info_user_fans ON info_user_fans.followed_id = info_user.id").
		Where("info_user_fans.follower_id = ?", followerID).
		Order("info_user_fans.created_at DESC")
	current, totalPage, err := Paginate(q, page, perPage, &users)
	return users, current, totalPage, err
}
