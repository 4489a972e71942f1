package service

import (
	"context"
	"errors"
	"go-feedback-app/internal/data"
)

// ErrParentMismatch is returned when a reply's parent comment belongs to a
// different feedback item.
var ErrParentMismatch = errors.New("parent comment belongs to a different feedback item")

// ErrReplyDepth is returned when a reply targets a comment that is itself a
// reply. Threads are one level deep; the schema allows deeper nesting, so the
// limit is enforced here at the write boundary.
var ErrReplyDepth = errors.New("replies cannot be nested further")

// ErrCommentMismatch is returned when a comment mutation addresses a comment
// that belongs to a different feedback item.
var ErrCommentMismatch = errors.New("comment belongs to a different feedback item")

// CommentService provides business logic for comment threads.
type CommentService struct {
	comments CommentRepository
	feedback FeedbackRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments CommentRepository, feedback FeedbackRepository) *CommentService {
	return &CommentService{comments: comments, feedback: feedback}
}

// AddComment attaches a comment to a feedback item. With a parent id the
// comment becomes a reply: the parent must exist, belong to the same item,
// and be a top-level comment. Internal marks admin-authored notes that never
// appear on the public surface.
func (s *CommentService) AddComment(ctx context.Context, feedbackID, authorID int64, content string, parentID *int64, internal bool) (*data.Comment, error) {
	if _, err := s.feedback.GetFeedbackByID(ctx, feedbackID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.comments.GetCommentByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.FeedbackID != feedbackID {
			return nil, ErrParentMismatch
		}
		if parent.ParentID != nil {
			return nil, ErrReplyDepth
		}
	}

	comment := &data.Comment{
		FeedbackID: feedbackID,
		UserID:     authorID,
		Content:    content,
		ParentID:   parentID,
		Internal:   internal,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment and its direct replies. The comment must
// belong to the addressed feedback item.
func (s *CommentService) DeleteComment(ctx context.Context, feedbackID, commentID int64) error {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.FeedbackID != feedbackID {
		return ErrCommentMismatch
	}
	return s.comments.DeleteCommentWithReplies(ctx, commentID)
}

// TogglePin flips a comment's pinned flag and returns the new state.
func (s *CommentService) TogglePin(ctx context.Context, feedbackID, commentID int64) (bool, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return false, err
	}
	if comment.FeedbackID != feedbackID {
		return false, ErrCommentMismatch
	}
	return s.comments.TogglePin(ctx, commentID)
}
