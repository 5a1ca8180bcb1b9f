package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByMobile(ctx context.Context, mobile string) (*model.User, error)
	// GetAdminByMobile 只在管理员用户中查找
	GetAdminByMobile(ctx context.Context, mobile string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	ListNonAdmin(ctx context.Context, page, perPage int) ([]*model.User, int, int, error)
	CountNonAdmin(ctx context.Context) (int64, error)
	CountNonAdminSince(ctx context.Context, since time.Time) (int64, error)
	// CountActiveBetween 统计 last_login 落在 [begin, end) 的普通用户数
	CountActiveBetween(ctx context.Context, begin, end time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

// 未命中返回 (nil, nil)，与调用方“查无此人不算错误”的约定一致
func (r *userRepository) getOne(ctx context.Context, conds ...interface{}) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *userRepository) GetByMobile(ctx context.Context, mobile string) (*model.User, error) {
	return r.getOne(ctx, "mobile = ?", mobile)
}

func (r *userRepository) GetAdminByMobile(ctx context.Context, mobile string) (*model.User, error) {
	return r.getOne(ctx, "mobile = ? AND is_admin = ?", mobile, true)
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login", at).Error
}

func (r *userRepository) ListNonAdmin(ctx context.Context, page, perPage int) ([]*model.User, int, int, error) {
	var users []*model.User
	q := r.db.WithContext(ctx).Model(&model.User{}).
		Where("is_admin = ?", false).
		Order("created_at DESC")
	current, totalPage, err := Paginate(q, page, perPage, &users)
	return users, current, totalPage, err
}

func (r *userRepository) CountNonAdmin(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("is_admin = ?", false).
		Count(&cnt).Error
	return cnt, err
}

func (r *userRepository) CountNonAdminSince(ctx context.Context, since time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("is_admin = ? AND created_at >= ?", false, since).
		Count(&cnt).Error
	return cnt, err
}

func (r *userRepository) CountActiveBetween(ctx context.Context, begin, end time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("is_admin = ? AND last_login >= ? AND last_login < ?", false, begin, end).
		Count(&cnt).Error
	return cnt, err
}
