package service

import (
	"context"

	"github.com/clairelorenzo/app-backend-6104/internal/models"
	"github.com/clairelorenzo/app-backend-6104/internal/observability"
	"github.com/clairelorenzo/app-backend-6104/internal/repository"
)

// FriendService provides friend-request and friendship business logic. The
// HTTP surface addresses other users by username, so every operation starts
// by resolving the name to an account.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

func (s *FriendService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

// SendRequest sends a friend request to the named user.
func (s *FriendService) SendRequest(ctx context.Context, fromID uint, toUsername string) (*models.FriendRequest, error) {
	target, err := s.resolveUser(ctx, toUsername)
	if err != nil {
		return nil, err
	}
	if target.ID == fromID {
		return nil, models.NewValidationError("Cannot send friend request to yourself")
	}

	friends, err := s.friendRepo.AreFriends(ctx, fromID, target.ID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, models.NewConflictError("You are already friends")
	}

	existing, err := s.friendRepo.GetPendingBetween(ctx, fromID, target.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.FromID == fromID {
			return nil, models.NewConflictError("Friend request already sent")
		}
		return nil, models.NewConflictError("You already have a pending friend request from this user")
	}

	req := &models.FriendRequest{FromID: fromID, ToID: target.ID}
	if err := s.friendRepo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	observability.RecordFriendRequestEvent("sent")
	return req, nil
}

// WithdrawRequest removes a pending request the user sent to the named user.
func (s *FriendService) WithdrawRequest(ctx context.Context, fromID uint, toUsername string) error {
	target, err := s.resolveUser(ctx, toUsername)
	if err != nil {
		return err
	}

	req, err := s.friendRepo.GetPendingRequest(ctx, fromID, target.ID)
	if err != nil {
		return err
	}
	if req == nil {
		return models.NewNotFoundError("Friend request", toUsername)
	}

	if err := s.friendRepo.DeleteRequest(ctx, req); err != nil {
		return err
	}
	observability.RecordFriendRequestEvent("withdrawn")
	return nil
}

// AcceptRequest accepts a pending request from the named user, which makes
// the two users friends.
func (s *FriendService) AcceptRequest(ctx context.Context, userID uint, fromUsername string) (*models.FriendRequest, error) {
	sender, err := s.resolveUser(ctx, fromUsername)
	if err != nil {
		return nil, err
	}

	req, err := s.friendRepo.GetPendingRequest(ctx, sender.ID, userID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, models.NewNotFoundError("Friend request", fromUsername)
	}

	if err := s.friendRepo.AcceptRequest(ctx, req); err != nil {
		return nil, err
	}
	observability.RecordFriendRequestEvent("accepted")
	return req, nil
}

// RejectRequest declines a pending request from the named user. The request
// row is kept with its terminal status so the sender can see the outcome.
func (s *FriendService) RejectRequest(ctx context.Context, userID uint, fromUsername string) (*models.FriendRequest, error) {
	sender, err := s.resolveUser(ctx, fromUsername)
	if err != nil {
		return nil, err
	}

	req, err := s.friendRepo.GetPendingRequest(ctx, sender.ID, userID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, models.NewNotFoundError("Friend request", fromUsername)
	}

	if err := s.friendRepo.RejectRequest(ctx, req); err != nil {
		return nil, err
	}
	observability.RecordFriendRequestEvent("rejected")
	return req, nil
}

// ListRequests returns every request involving the user, newest first.
func (s *FriendService) ListRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.ListRequestsInvolving(ctx, userID)
}

// ListFriends returns the user's friends sorted by username.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.ListFriends(ctx, userID)
}

// RemoveFriend dissolves the friendship with the named user.
func (s *FriendService) RemoveFriend(ctx context.Context, userID uint, friendUsername string) error {
	friend, err := s.resolveUser(ctx, friendUsername)
	if err != nil {
		return err
	}
	if friend.ID == userID {
		return models.NewValidationError("Cannot unfriend yourself")
	}
	return s.friendRepo.DeleteFriendship(ctx, userID, friend.ID)
}
