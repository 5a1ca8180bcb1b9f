package model

import "time"

// Category 新闻分类
type Category struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Category) TableName() string { return "info_category" }

// ToDict 分类字典
func (c *Category) ToDict() map[string]interface{} {
	return map[string]interface{}{"id": c.ID, "name": c.Name}
}
