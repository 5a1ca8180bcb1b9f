package model

import "time"

// Comment 新闻评论，parent_id 有值时为子评论（最多两级）
type Comment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	NewsID    int64     `gorm:"not null;index" json:"news_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ParentID  *int64    `gorm:"index" json:"parent_id,omitempty"`
	LikeCount int       `gorm:"not null;default:0" json:"like_count"`
	CreatedAt time.Time `json:"create_time"`
	UpdatedAt time.Time `json:"-"`
}

func (Comment) TableName() string { return "info_comment" }

// ToDict 评论字典
func (c *Comment) ToDict() map[string]interface{} {
	d := map[string]interface{}{
		"id":          c.ID,
		"user_id":     c.UserID,
		"news_id":     c.NewsID,
		"content":     c.Content,
		"like_count":  c.LikeCount,
		"create_time": c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if c.ParentID != nil {
		d["parent_id"] = *c.ParentID
	}
	return d
}

// CommentLike 评论点赞记录，存在即表示已点赞
type CommentLike struct {
	ID        int64 `gorm:"primaryKey"`
	CommentID int64 `gorm:"not null;index:idx_like_pair,unique"`
	UserID    int64 `gorm:"not null;index:idx_like_pair,unique;index:idx_like_user"`
	// 复合唯一键 (comment_id, user_id)，同一用户对同一评论至多一条记录
	CreatedAt time.Time
}

func (CommentLike) TableName() string { return "info_comment_like" }
