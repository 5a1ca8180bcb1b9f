package repository

import (
	"gorm.io/gorm"
)

// Paginate 对已组织好过滤与排序条件的查询做分页
// 返回实际页码与总页数；页码越界时返回空列表，总页数仍反映真实数据量。
// 无数据时总页数按 1 处理，与前端分页组件的约定一致。
func Paginate(query *gorm.DB, page, perPage int, out interface{}) (current, totalPage int, err error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int64
	if err = query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	totalPage = int((total + int64(perPage) - 1) / int64(perPage))
	if totalPage < 1 {
		totalPage = 1
	}

	err = query.Session(&gorm.Session{}).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(out).Error
	if err != nil {
		return 0, 0, err
	}
	return page, totalPage, nil
}
