package repository

import (
	"context"

	"github.com/martijn/taskman/internal/api/util"
	"github.com/martijn/taskman/internal/core/domain"
)

// UserOrder selects the ordering of a user listing
type UserOrder int

const (
	// UserOrderID is the default, id ascending
	UserOrderID UserOrder = iota
	// UserOrderRecent orders by created_at descending (dashboard listing)
	UserOrderRecent
	// UserOrderUsername orders alphabetically (dropdowns)
	UserOrderUsername
)

// UserFilter holds filtering and pagination options for user listings
type UserFilter struct {
	util.ListFilter
	IsActive *bool
	Order    UserOrder
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Count(ctx context.Context, filter UserFilter) (int, error)
}
