package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

// UserRepo stores operator accounts.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a UserRepo.
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u := row.toModel()
	return &u, nil
}

// FindByID returns a user by id.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByUsername returns a user by username.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// Create inserts a user.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash, role string) (*model.User, error) {
	row := userRow{Username: username, PasswordHash: passwordHash, Role: role}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if uniqueViolation(err) {
			return nil, repository.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	u := row.toModel()
	return &u, nil
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]model.User, len(rows))
	for i, row := range rows {
		users[i] = row.toModel()
	}
	return users, nil
}
