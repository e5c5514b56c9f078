package repository

import (
	"context"
	"errors"
	"slices"

	"github.com/clairelorenzo/app-backend-6104/internal/cache"
	"github.com/clairelorenzo/app-backend-6104/internal/models"
	"github.com/clairelorenzo/app-backend-6104/internal/observability"

	"gorm.io/gorm"
)

// FriendRepository defines persistence operations for friend requests and
// established friendships.
type FriendRepository interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	GetPendingRequest(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error)
	GetPendingBetween(ctx context.Context, userID, otherID uint) (*models.FriendRequest, error)
	ListRequestsInvolving(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	AcceptRequest(ctx context.Context, req *models.FriendRequest) error
	RejectRequest(ctx context.Context, req *models.FriendRequest) error
	DeleteRequest(ctx context.Context, req *models.FriendRequest) error
	GetFriendIDs(ctx context.Context, userID uint) ([]uint, error)
	AreFriends(ctx context.Context, userID, otherID uint) (bool, error)
	ListFriends(ctx context.Context, userID uint) ([]models.User, error)
	DeleteFriendship(ctx context.Context, userID, otherID uint) error
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository returns a new FriendRepository implementation.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// orderPair normalizes a friendship pair to match the stored column order.
func orderPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

func (r *friendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetPendingRequest looks up a pending request in the exact direction given.
// Returns (nil, nil) when none exists.
func (r *friendRepository) GetPendingRequest(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_id = ? AND to_id = ? AND status = ?", fromID, toID, models.RequestPending).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

// GetPendingBetween looks up a pending request in either direction.
func (r *friendRepository) GetPendingBetween(ctx context.Context, userID, otherID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)",
			userID, otherID, otherID, userID).
		Where("status = ?", models.RequestPending).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *friendRepository) ListRequestsInvolving(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("From").
		Preload("To").
		Where("from_id = ? OR to_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

// AcceptRequest marks the request accepted and records the friendship in the
// same transaction.
func (r *friendRepository) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "AcceptRequest", "friend_requests")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(req).Update("status", models.RequestAccepted).Error; err != nil {
			return err
		}
		friendship := models.Friendship{UserAID: req.FromID, UserBID: req.ToID}
		return tx.Create(&friendship).Error
	})
	if err != nil {
		span.RecordError(err)
		return models.NewInternalError(err)
	}
	cache.InvalidateFriends(ctx, req.FromID)
	cache.InvalidateFriends(ctx, req.ToID)
	return nil
}

func (r *friendRepository) RejectRequest(ctx context.Context, req *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Model(req).Update("status", models.RequestRejected).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) DeleteRequest(ctx context.Context, req *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Delete(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	key := cache.FriendIDsKey(userID)

	err := cache.Aside(ctx, key, &ids, cache.FriendIDsTTL, func() error {
		var friendships []models.Friendship
		if err := r.db.WithContext(ctx).
			Where("user_a_id = ? OR user_b_id = ?", userID, userID).
			Find(&friendships).Error; err != nil {
			return models.NewInternalError(err)
		}
		ids = make([]uint, 0, len(friendships))
		for _, f := range friendships {
			ids = append(ids, f.OtherUser(userID))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userID, otherID uint) (bool, error) {
	ids, err := r.GetFriendIDs(ctx, userID)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, otherID), nil
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON (users.id = f.user_a_id OR users.id = f.user_b_id)").
		Where("(f.user_a_id = ? OR f.user_b_id = ?) AND users.id != ?", userID, userID, userID).
		Where("users.deleted_at IS NULL").
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *friendRepository) DeleteFriendship(ctx context.Context, userID, otherID uint) error {
	a, b := orderPair(userID, otherID)
	result := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		Delete(&models.Friendship{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Friendship", otherID)
	}
	cache.InvalidateFriends(ctx, userID)
	cache.InvalidateFriends(ctx, otherID)
	return nil
}
