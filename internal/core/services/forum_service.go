package services

import (
	"context"
	"errors"
	"fmt"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/pkg/validation"

	"gorm.io/gorm"
)

// Forum errors
var (
	ErrPostNotFound    = errors.New("forum post not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// ForumService handles hostel discussion boards
type ForumService struct {
	db *gorm.DB
}

// NewForumService creates a new forum service
func NewForumService(db *gorm.DB) *ForumService {
	return &ForumService{db: db}
}

// CreatePostInput represents a new forum post
type CreatePostInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// CreateCommentInput represents a new comment
type CreateCommentInput struct {
	Content string `json:"content" validate:"required"`
}

// CreatePost opens a thread on the actor's hostel board
func (s *ForumService) CreatePost(ctx context.Context, actor domain.Actor, input *CreatePostInput) (*models.ForumPost, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if actor.HostelID == nil {
		return nil, ErrNoHostelAssigned
	}
	if err := s.requireNotBlocked(ctx, actor.UserID); err != nil {
		return nil, err
	}

	post := &models.ForumPost{
		HostelID: *actor.HostelID,
		UserID:   actor.UserID,
		Title:    input.Title,
		Content:  input.Content,
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns the board of one hostel, newest first
func (s *ForumService) ListPosts(ctx context.Context, actor domain.Actor, hostelID uint, offset, limit int) ([]*models.ForumPost, int64, error) {
	if !actor.SameHostel(hostelID) {
		return nil, 0, ErrHostelMismatch
	}

	var total int64
	query := s.db.WithContext(ctx).Model(&models.ForumPost{}).Where("hostel_id = ?", hostelID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.ForumPost
	err := query.
		Preload("User.Profile").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPost returns one thread with its comments
func (s *ForumService) GetPost(ctx context.Context, actor domain.Actor, postID uint) (*models.ForumPost, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !actor.SameHostel(post.HostelID) {
		return nil, ErrHostelMismatch
	}

	err = s.db.WithContext(ctx).
		Preload("User.Profile").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User.Profile").
		First(post, post.ID).Error
	if err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment replies to a thread in the actor's hostel
func (s *ForumService) AddComment(ctx context.Context, actor domain.Actor, postID uint, input *CreateCommentInput) (*models.ForumComment, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !actor.SameHostel(post.HostelID) {
		return nil, ErrHostelMismatch
	}
	if err := s.requireNotBlocked(ctx, actor.UserID); err != nil {
		return nil, err
	}

	comment := &models.ForumComment{
		PostID:  post.ID,
		UserID:  actor.UserID,
		Content: input.Content,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// DeletePost removes a thread. The author may delete their own post;
// mhmc and admin may delete any post on a board they cover. Comments
// go with the post.
func (s *ForumService) DeletePost(ctx context.Context, actor domain.Actor, postID uint) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if !s.canRemove(actor, post.UserID, post.HostelID) {
		return ErrNotPermitted
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.ForumComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

// DeleteComment removes one comment, same permission rule as posts
func (s *ForumService) DeleteComment(ctx context.Context, actor domain.Actor, commentID uint) error {
	var comment models.ForumComment
	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	post, err := s.getPost(ctx, comment.PostID)
	if err != nil {
		return err
	}
	if !s.canRemove(actor, comment.UserID, post.HostelID) {
		return ErrNotPermitted
	}
	return s.db.WithContext(ctx).Delete(&comment).Error
}

// requireNotBlocked rechecks the block flag against the database; a
// blocked user may still hold a live access token.
func (s *ForumService) requireNotBlocked(ctx context.Context, userID uint) error {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return err
	}
	if profile.IsBlocked {
		return ErrUserBlocked
	}
	return nil
}

func (s *ForumService) canRemove(actor domain.Actor, authorID, hostelID uint) bool {
	if actor.UserID == authorID {
		return true
	}
	return domain.CanModerate(actor.Role) && actor.SameHostel(hostelID)
}

func (s *ForumService) getPost(ctx context.Context, id uint) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}
