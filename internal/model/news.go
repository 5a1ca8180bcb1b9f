package model

import "time"

// 新闻审核状态
const (
	NewsStatusApproved = 0  // 审核通过
	NewsStatusPending  = 1  // 审核中
	NewsStatusRejected = -1 // 审核不通过
)

// News 新闻模型
type News struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(256);not null" json:"title"`
	Source        string    `gorm:"type:varchar(64);not null" json:"source"`
	Digest        string    `gorm:"type:varchar(512);not null" json:"digest"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Clicks        int       `gorm:"not null;default:0" json:"clicks"`
	IndexImageURL string    `gorm:"type:varchar(256)" json:"index_image_url"`
	CategoryID    int64     `gorm:"index" json:"category_id"`
	UserID        int64     `gorm:"index" json:"user_id"`
	Status        int       `gorm:"not null;default:1;index" json:"status"`
	Reason        string    `gorm:"type:varchar(256)" json:"reason"`
	CreatedAt     time.Time `json:"create_time"`
	UpdatedAt     time.Time `json:"-"`
}

func (News) TableName() string { return "info_news" }

// ToBasicDict 列表页使用的新闻字典
func (n *News) ToBasicDict() map[string]interface{} {
	return map[string]interface{}{
		"id":              n.ID,
		"title":           n.Title,
		"source":          n.Source,
		"digest":          n.Digest,
		"clicks":          n.Clicks,
		"index_image_url": n.IndexImageURL,
		"create_time":     n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToDict 详情页使用的新闻字典
func (n *News) ToDict() map[string]interface{} {
	d := n.ToBasicDict()
	d["content"] = n.Content
	d["category_id"] = n.CategoryID
	return d
}

// ToReviewDict 审核页使用的新闻字典
func (n *News) ToReviewDict() map[string]interface{} {
	return map[string]interface{}{
		"id":          n.ID,
		"title":       n.Title,
		"create_time": n.CreatedAt.Format("2006-01-02 15:04:05"),
		"status":      n.Status,
		"reason":      n.Reason,
	}
}
