package model

import "time"

// User 用户模型
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Mobile       string    `gorm:"type:varchar(11);uniqueIndex;not null" json:"mobile"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	NickName     string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"nick_name"`
	Gender       string    `gorm:"type:varchar(8);default:MAN" json:"gender"` // MAN / WOMAN
	Signature    string    `gorm:"type:varchar(512)" json:"signature"`
	AvatarURL    string    `gorm:"type:varchar(256)" json:"avatar_url"`
	IsAdmin      bool      `gorm:"not null;default:false;index" json:"is_admin"`
	LastLogin    time.Time `json:"last_login"`
	CreatedAt    time.Time `json:"create_time"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string { return "info_user" }

// ToDict 个人中心展示用的用户字典
func (u *User) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"nick_name":  u.NickName,
		"avatar_url": u.AvatarURL,
		"mobile":     u.Mobile,
		"gender":     u.Gender,
		"signature":  u.Signature,
	}
}

// ToAdminDict 后台用户列表展示用的字典
func (u *User) ToAdminDict() map[string]interface{} {
	return map[string]interface{}{
		"id":            u.ID,
		"nick_name":     u.NickName,
		"mobile":        u.Mobile,
		"register_time": u.CreatedAt.Format("2006-01-02 15:04:05"),
		"last_login":    u.LastLogin.Format("2006-01-02 15:04:05"),
	}
}

// UserFollow 关注关系（follower 关注 followed）
type UserFollow struct {
	ID         int64 `gorm:"primaryKey"`
	FollowerID int64 `gorm:"not null;index:idx_follow_pair,unique;index:idx_follower"`
	FollowedID int64 `gorm:"not null;index:idx_follow_pair,unique;index:idx_followed"`
	// 复合唯一键，避免重复关注
	// idx_follow_pair = (follower_id, followed_id)
	CreatedAt time.Time
}

func (UserFollow) TableName() string { return "info_user_fans" }

// UserCollection 新闻收藏关系
type UserCollection struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index:idx_collect_pair,unique;index:idx_collect_user"`
	NewsID int64 `gorm:"not null;index:idx_collect_pair,unique"`
	// 复合唯一键，避免重复收藏
	CreatedAt time.Time
}

func (UserCollection) TableName() string { return "info_user_collection" }
