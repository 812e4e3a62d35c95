package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/transquote/platform-api/internal/domain"
)

// UserRepository operates on the users table of whichever tenant schema the
// given gorm session is bound to. Construct it only inside a SchemaExecutor
// callback.
type UserRepository struct {
	tx *gorm.DB
}

func NewUserRepository(tx *gorm.DB) *UserRepository {
	return &UserRepository{tx: tx}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.tx.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.tx.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
