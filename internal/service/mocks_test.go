//go:build unit

package service

import (
	"context"
	"go-feedback-app/internal/data"
)

// Function-field mocks for the repository interfaces. Unset fields panic,
// which points straight at the collaborator a test forgot to stub.

type mockFeedbackRepo struct {
	createFeedback    func(ctx context.Context, feedback *data.Feedback) error
	getFeedbackByID   func(ctx context.Context, id int64) (*data.Feedback, error)
	getFeedbackBySlug func(ctx context.Context, slug string, viewerID int64) (*data.FeedbackSummary, error)
	listFeedback      func(ctx context.Context, opts data.ListOptions) ([]*data.FeedbackSummary, error)
	countFeedback     func(ctx context.Context) (int, error)
	updateFeedback    func(ctx context.Context, id int64, statusID, boardID *int64) error
	deleteFeedback    func(ctx context.Context, id int64) error
}

func (m *mockFeedbackRepo) CreateFeedback(ctx context.Context, feedback *data.Feedback) error {
	return m.createFeedback(ctx, feedback)
}
func (m *mockFeedbackRepo) GetFeedbackByID(ctx context.Context, id int64) (*data.Feedback, error) {
	return m.getFeedbackByID(ctx, id)
}
func (m *mockFeedbackRepo) GetFeedbackBySlug(ctx context.Context, slug string, viewerID int64) (*data.FeedbackSummary, error) {
	return m.getFeedbackBySlug(ctx, slug, viewerID)
}
func (m *mockFeedbackRepo) ListFeedback(ctx context.Context, opts data.ListOptions) ([]*data.FeedbackSummary, error) {
	return m.listFeedback(ctx, opts)
}
func (m *mockFeedbackRepo) CountFeedback(ctx context.Context) (int, error) {
	return m.countFeedback(ctx)
}
func (m *mockFeedbackRepo) UpdateFeedback(ctx context.Context, id int64, statusID, boardID *int64) error {
	return m.updateFeedback(ctx, id, statusID, boardID)
}
func (m *mockFeedbackRepo) DeleteFeedback(ctx context.Context, id int64) error {
	return m.deleteFeedback(ctx, id)
}

type mockUpvoteRepo struct {
	toggleUpvote       func(ctx context.Context, feedbackID, userID int64) (bool, int, error)
	countUpvotes       func(ctx context.Context, feedbackID int64) (int, error)
	hasUpvoted         func(ctx context.Context, feedbackID, userID int64) (bool, error)
	upvotedFeedbackIDs func(ctx context.Context, userID int64) ([]int64, error)
	listUpvoters       func(ctx context.Context, feedbackID int64, limit int) ([]*data.UserSummary, error)
}

func (m *mockUpvoteRepo) ToggleUpvote(ctx context.Context, feedbackID, userID int64) (bool, int, error) {
	return m.toggleUpvote(ctx, feedbackID, userID)
}
func (m *mockUpvoteRepo) CountUpvotes(ctx context.Context, feedbackID int64) (int, error) {
	return m.countUpvotes(ctx, feedbackID)
}
func (m *mockUpvoteRepo) HasUpvoted(ctx context.Context, feedbackID, userID int64) (bool, error) {
	return m.hasUpvoted(ctx, feedbackID, userID)
}
func (m *mockUpvoteRepo) UpvotedFeedbackIDs(ctx context.Context, userID int64) ([]int64, error) {
	return m.upvotedFeedbackIDs(ctx, userID)
}
func (m *mockUpvoteRepo) ListUpvoters(ctx context.Context, feedbackID int64, limit int) ([]*data.UserSummary, error) {
	return m.listUpvoters(ctx, feedbackID, limit)
}

type mockReadRepo struct {
	markRead    func(ctx context.Context, feedbackID, userID int64) error
	isRead      func(ctx context.Context, feedbackID, userID int64) (bool, error)
	unreadCount func(ctx context.Context, userID int64) (int, error)
}

func (m *mockReadRepo) MarkRead(ctx context.Context, feedbackID, userID int64) error {
	return m.markRead(ctx, feedbackID, userID)
}
func (m *mockReadRepo) IsRead(ctx context.Context, feedbackID, userID int64) (bool, error) {
	return m.isRead(ctx, feedbackID, userID)
}
func (m *mockReadRepo) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return m.unreadCount(ctx, userID)
}

type mockBoardRepo struct {
	createBoard    func(ctx context.Context, board *data.Board) error
	getBoardByID   func(ctx context.Context, id int64) (*data.Board, error)
	getBoardBySlug func(ctx context.Context, slug string) (*data.Board, error)
	getAllBoards   func(ctx context.Context) ([]*data.Board, error)
	updateBoard    func(ctx context.Context, board *data.Board) error
	deleteBoard    func(ctx context.Context, id int64) error
}

func (m *mockBoardRepo) CreateBoard(ctx context.Context, board *data.Board) error {
	return m.createBoard(ctx, board)
}
func (m *mockBoardRepo) GetBoardByID(ctx context.Context, id int64) (*data.Board, error) {
	return m.getBoardByID(ctx, id)
}
func (m *mockBoardRepo) GetBoardBySlug(ctx context.Context, slug string) (*data.Board, error) {
	return m.getBoardBySlug(ctx, slug)
}
func (m *mockBoardRepo) GetAllBoards(ctx context.Context) ([]*data.Board, error) {
	return m.getAllBoards(ctx)
}
func (m *mockBoardRepo) UpdateBoard(ctx context.Context, board *data.Board) error {
	return m.updateBoard(ctx, board)
}
func (m *mockBoardRepo) DeleteBoard(ctx context.Context, id int64) error {
	return m.deleteBoard(ctx, id)
}

type mockStatusRepo struct {
	createStatus         func(ctx context.Context, status *data.Status) error
	getStatusByID        func(ctx context.Context, id int64) (*data.Status, error)
	getAllStatuses       func(ctx context.Context) ([]*data.Status, error)
	getRoadmapStatuses   func(ctx context.Context) ([]*data.Status, error)
	defaultStatusID      func(ctx context.Context) (*int64, error)
	updateStatus         func(ctx context.Context, status *data.Status) error
	setRoadmapVisibility func(ctx context.Context, id int64, visible bool) error
	deleteStatus         func(ctx context.Context, id int64) error
}

func (m *mockStatusRepo) CreateStatus(ctx context.Context, status *data.Status) error {
	return m.createStatus(ctx, status)
}
func (m *mockStatusRepo) GetStatusByID(ctx context.Context, id int64) (*data.Status, error) {
	return m.getStatusByID(ctx, id)
}
func (m *mockStatusRepo) GetAllStatuses(ctx context.Context) ([]*data.Status, error) {
	return m.getAllStatuses(ctx)
}
func (m *mockStatusRepo) GetRoadmapStatuses(ctx context.Context) ([]*data.Status, error) {
	return m.getRoadmapStatuses(ctx)
}
func (m *mockStatusRepo) DefaultStatusID(ctx context.Context) (*int64, error) {
	return m.defaultStatusID(ctx)
}
func (m *mockStatusRepo) UpdateStatus(ctx context.Context, status *data.Status) error {
	return m.updateStatus(ctx, status)
}
func (m *mockStatusRepo) SetRoadmapVisibility(ctx context.Context, id int64, visible bool) error {
	return m.setRoadmapVisibility(ctx, id, visible)
}
func (m *mockStatusRepo) DeleteStatus(ctx context.Context, id int64) error {
	return m.deleteStatus(ctx, id)
}

type mockCommentRepo struct {
	createComment            func(ctx context.Context, comment *data.Comment) error
	getCommentByID           func(ctx context.Context, id int64) (*data.Comment, error)
	togglePin                func(ctx context.Context, id int64) (bool, error)
	deleteCommentWithReplies func(ctx context.Context, id int64) error
	listThread               func(ctx context.Context, feedbackID int64, opts data.ThreadOptions) ([]*data.Comment, error)
}

func (m *mockCommentRepo) CreateComment(ctx context.Context, comment *data.Comment) error {
	return m.createComment(ctx, comment)
}
func (m *mockCommentRepo) GetCommentByID(ctx context.Context, id int64) (*data.Comment, error) {
	return m.getCommentByID(ctx, id)
}
func (m *mockCommentRepo) TogglePin(ctx context.Context, id int64) (bool, error) {
	return m.togglePin(ctx, id)
}
func (m *mockCommentRepo) DeleteCommentWithReplies(ctx context.Context, id int64) error {
	return m.deleteCommentWithReplies(ctx, id)
}
func (m *mockCommentRepo) ListThread(ctx context.Context, feedbackID int64, opts data.ThreadOptions) ([]*data.Comment, error) {
	return m.listThread(ctx, feedbackID, opts)
}

type mockChangelogRepo struct {
	createChangelog    func(ctx context.Context, changelog *data.Changelog) error
	getChangelogByID   func(ctx context.Context, id int64) (*data.Changelog, error)
	getChangelogBySlug func(ctx context.Context, slug string) (*data.Changelog, error)
	listChangelogs     func(ctx context.Context) ([]*data.Changelog, error)
	updateChangelog    func(ctx context.Context, changelog *data.Changelog) error
	deleteChangelog    func(ctx context.Context, id int64) error
}

func (m *mockChangelogRepo) CreateChangelog(ctx context.Context, changelog *data.Changelog) error {
	return m.createChangelog(ctx, changelog)
}
func (m *mockChangelogRepo) GetChangelogByID(ctx context.Context, id int64) (*data.Changelog, error) {
	return m.getChangelogByID(ctx, id)
}
func (m *mockChangelogRepo) GetChangelogBySlug(ctx context.Context, slug string) (*data.Changelog, error) {
	return m.getChangelogBySlug(ctx, slug)
}
func (m *mockChangelogRepo) ListChangelogs(ctx context.Context) ([]*data.Changelog, error) {
	return m.listChangelogs(ctx)
}
func (m *mockChangelogRepo) UpdateChangelog(ctx context.Context, changelog *data.Changelog) error {
	return m.updateChangelog(ctx, changelog)
}
func (m *mockChangelogRepo) DeleteChangelog(ctx context.Context, id int64) error {
	return m.deleteChangelog(ctx, id)
}

type mockUserRepo struct {
	createUser        func(ctx context.Context, user *data.User) error
	getUserByID       func(ctx context.Context, id int64) (*data.User, error)
	getUserByEmail    func(ctx context.Context, email string) (*data.User, error)
	getUserByProvider func(ctx context.Context, providerName, providerID string) (*data.User, error)
	updateProfile     func(ctx context.Context, user *data.User) error
	countUsers        func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *data.User) error {
	return m.createUser(ctx, user)
}
func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*data.User, error) {
	return m.getUserByID(ctx, id)
}
func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*data.User, error) {
	return m.getUserByEmail(ctx, email)
}
func (m *mockUserRepo) GetUserByProvider(ctx context.Context, providerName, providerID string) (*data.User, error) {
	return m.getUserByProvider(ctx, providerName, providerID)
}
func (m *mockUserRepo) UpdateProfile(ctx context.Context, user *data.User) error {
	return m.updateProfile(ctx, user)
}
func (m *mockUserRepo) CountUsers(ctx context.Context) (int, error) {
	return m.countUsers(ctx)
}
