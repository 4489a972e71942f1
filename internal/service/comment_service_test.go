//go:build unit

package service

import (
	"context"
	"errors"
	"go-feedback-app/internal/data"
	"testing"
)

func commentTestService(comments *mockCommentRepo) *CommentService {
	feedback := &mockFeedbackRepo{
		getFeedbackByID: func(_ context.Context, id int64) (*data.Feedback, error) {
			if id == 1 {
				return &data.Feedback{ID: 1}, nil
			}
			return nil, data.ErrNotFound
		},
	}
	return NewCommentService(comments, feedback)
}

func TestCommentService_AddComment_TopLevel(t *testing.T) {
	var created *data.Comment
	comments := &mockCommentRepo{
		createComment: func(_ context.Context, c *data.Comment) error {
			c.ID = 42
			created = c
			return nil
		},
	}
	svc := commentTestService(comments)

	comment, err := svc.AddComment(context.Background(), 1, 7, "sounds great", nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.ID != 42 {
		t.Errorf("expected id 42, got %d", comment.ID)
	}
	if created.Internal {
		t.Error("expected a public comment")
	}
	if created.ParentID != nil {
		t.Error("expected a top-level comment")
	}
}

func TestCommentService_AddComment_Reply(t *testing.T) {
	parentID := int64(10)
	comments := &mockCommentRepo{
		getCommentByID: func(_ context.Context, id int64) (*data.Comment, error) {
			return &data.Comment{ID: id, FeedbackID: 1}, nil
		},
		createComment: func(_ context.Context, c *data.Comment) error {
			c.ID = 43
			return nil
		},
	}
	svc := commentTestService(comments)

	comment, err := svc.AddComment(context.Background(), 1, 7, "agreed", &parentID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.ParentID == nil || *comment.ParentID != parentID {
		t.Errorf("expected parent id %d, got %v", parentID, comment.ParentID)
	}
}

func TestCommentService_AddComment_RejectsParentFromOtherItem(t *testing.T) {
	parentID := int64(10)
	comments := &mockCommentRepo{
		getCommentByID: func(_ context.Context, id int64) (*data.Comment, error) {
			return &data.Comment{ID: id, FeedbackID: 99}, nil
		},
	}
	svc := commentTestService(comments)

	if _, err := svc.AddComment(context.Background(), 1, 7, "agreed", &parentID, false); !errors.Is(err, ErrParentMismatch) {
		t.Errorf("expected ErrParentMismatch, got %v", err)
	}
}

func TestCommentService_AddComment_RejectsNestedReply(t *testing.T) {
	grandparentID := int64(5)
	parentID := int64(10)
	comments := &mockCommentRepo{
		getCommentByID: func(_ context.Context, id int64) (*data.Comment, error) {
			return &data.Comment{ID: id, FeedbackID: 1, ParentID: &grandparentID}, nil
		},
	}
	svc := commentTestService(comments)

	if _, err := svc.AddComment(context.Background(), 1, 7, "too deep", &parentID, false); !errors.Is(err, ErrReplyDepth) {
		t.Errorf("expected ErrReplyDepth, got %v", err)
	}
}

func TestCommentService_AddComment_MissingFeedback(t *testing.T) {
	svc := commentTestService(&mockCommentRepo{})

	if _, err := svc.AddComment(context.Background(), 999, 7, "lost", nil, false); !errors.Is(err, data.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCommentService_DeleteComment_RejectsMismatch(t *testing.T) {
	comments := &mockCommentRepo{
		getCommentByID: func(_ context.Context, id int64) (*data.Comment, error) {
			return &data.Comment{ID: id, FeedbackID: 99}, nil
		},
	}
	svc := commentTestService(comments)

	if err := svc.DeleteComment(context.Background(), 1, 10); !errors.Is(err, ErrCommentMismatch) {
		t.Errorf("expected ErrCommentMismatch, got %v", err)
	}
}

func TestCommentService_TogglePin(t *testing.T) {
	comments := &mockCommentRepo{
		getCommentByID: func(_ context.Context, id int64) (*data.Comment, error) {
			return &data.Comment{ID: id, FeedbackID: 1}, nil
		},
		togglePin: func(_ context.Context, id int64) (bool, error) {
			return true, nil
		},
	}
	svc := commentTestService(comments)

	pinned, err := svc.TogglePin(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pinned {
		t.Error("expected pinned")
	}

	comments.getCommentByID = func(_ context.Context, id int64) (*data.Comment, error) {
		return &data.Comment{ID: id, FeedbackID: 99}, nil
	}
	if _, err := svc.TogglePin(context.Background(), 1, 10); !errors.Is(err, ErrCommentMismatch) {
		t.Errorf("expected ErrCommentMismatch, got %v", err)
	}
}
