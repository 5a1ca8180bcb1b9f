package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
)

var ErrCommentNotFound = errors.New("评论对象不存在")

// CommentView 详情页的评论视图，附带当前用户是否点赞
type CommentView struct {
	Comment *model.Comment
	IsLike  bool
}

// CommentService 评论与评论点赞服务
// 点赞与取消点赞是无声的幂等操作：重复点赞、取消未点赞都不报错；
// like_count 只随点赞记录的真实增删变化，且与记录增删同一事务提交。
type CommentService interface {
	Add(ctx context.Context, userID, newsID int64, content string, parentID *int64) (*model.Comment, error)
	Like(ctx context.Context, userID, commentID int64) error
	Unlike(ctx context.Context, userID, commentID int64) error
	// ListByNews 新闻下的评论列表；userID 大于 0 时标记其点赞过的评论
	ListByNews(ctx context.Context, newsID, userID int64) ([]*CommentView, error)
}

type commentService struct {
	db       *gorm.DB
	news     repository.NewsRepository
	comments repository.CommentRepository
}

func NewCommentService(db *gorm.DB, news repository.NewsRepository, comments repository.CommentRepository) CommentService {
	return &commentService{db: db, news: news, comments: comments}
}

func (s *commentService) Add(ctx context.Context, userID, newsID int64, content string, parentID *int64) (*model.Comment, error) {
	news, err := s.news.GetByID(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if news == nil {
		return nil, ErrNewsNotFound
	}
	comment := &model.Comment{
		UserID:   userID,
		NewsID:   newsID,
		Content:  content,
		ParentID: parentID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Like(ctx context.Context, userID, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	// 点赞记录与计数同一事务落地，失败整体回滚
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&model.CommentLike{}).
			Where("comment_id = ? AND user_id = ?", commentID, userID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			// 已点赞：无声跳过，不增计数
			return nil
		}
		if err := tx.Create(&model.CommentLike{CommentID: commentID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
	})
}

func (s *commentService) Unlike(ctx context.Context, userID, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			Delete(&model.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 未点赞：无声跳过，不减计数
			return nil
		}
		return tx.Model(&model.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
	})
}

func (s *commentService) ListByNews(ctx context.Context, newsID, userID int64) ([]*CommentView, error) {
	comments, err := s.comments.ListByNews(ctx, newsID)
	if err != nil {
		return nil, err
	}

	liked := map[int64]bool{}
	if userID > 0 && len(comments) > 0 {
		ids := make([]int64, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}
		likedIDs, err := s.comments.LikedCommentIDs(ctx, userID, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	views := make([]*CommentView, len(comments))
	for i, c := range comments {
		views[i] = &CommentView{Comment: c, IsLike: liked[c.ID]}
	}
	return views, nil
}
