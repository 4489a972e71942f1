package service

import (
	"context"
	"go-feedback-app/internal/data"
)

// SettingsService provides business logic for the admin board and status
// management surface.
type SettingsService struct {
	boards   BoardRepository
	statuses StatusRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(boards BoardRepository, statuses StatusRepository) *SettingsService {
	return &SettingsService{boards: boards, statuses: statuses}
}

// ListBoards returns all boards with their feedback counts.
func (s *SettingsService) ListBoards(ctx context.Context) ([]*data.Board, error) {
	return s.boards.GetAllBoards(ctx)
}

// ListStatuses returns all statuses with their feedback counts.
func (s *SettingsService) ListStatuses(ctx context.Context) ([]*data.Status, error) {
	return s.statuses.GetAllStatuses(ctx)
}

// CreateBoard creates a board; the slug is derived once from the name.
func (s *SettingsService) CreateBoard(ctx context.Context, name, color, description string) (*data.Board, error) {
	board := &data.Board{Name: name, Color: color, Description: description}
	if err := s.boards.CreateBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// UpdateBoard renames or recolors a board. The slug is left alone.
func (s *SettingsService) UpdateBoard(ctx context.Context, id int64, name, color, description string) error {
	board, err := s.boards.GetBoardByID(ctx, id)
	if err != nil {
		return err
	}
	board.Name = name
	board.Color = color
	board.Description = description
	return s.boards.UpdateBoard(ctx, board)
}

// DeleteBoard removes a board. Fails with data.ErrInUse while feedback still
// references it; nothing is mutated in that case.
func (s *SettingsService) DeleteBoard(ctx context.Context, id int64) error {
	return s.boards.DeleteBoard(ctx, id)
}

// CreateStatus creates a status. The first status ever created becomes the
// default for new feedback by virtue of its position, not a flag.
func (s *SettingsService) CreateStatus(ctx context.Context, name, color string, showOnRoadmap bool) (*data.Status, error) {
	status := &data.Status{Name: name, Color: color, ShowOnRoadmap: showOnRoadmap}
	if err := s.statuses.CreateStatus(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

// UpdateStatus renames or recolors a status and sets its roadmap visibility.
func (s *SettingsService) UpdateStatus(ctx context.Context, id int64, name, color string, showOnRoadmap bool) error {
	status, err := s.statuses.GetStatusByID(ctx, id)
	if err != nil {
		return err
	}
	status.Name = name
	status.Color = color
	status.ShowOnRoadmap = showOnRoadmap
	return s.statuses.UpdateStatus(ctx, status)
}

// SetRoadmapVisibility flips only whether the status appears as a roadmap
// column.
func (s *SettingsService) SetRoadmapVisibility(ctx context.Context, id int64, visible bool) error {
	return s.statuses.SetRoadmapVisibility(ctx, id, visible)
}

// DeleteStatus removes a status. Fails with data.ErrInUse while feedback
// still references it.
func (s *SettingsService) DeleteStatus(ctx context.Context, id int64) error {
	return s.statuses.DeleteStatus(ctx, id)
}
