package services

import (
	"context"

	"github.com/libshelf/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (types.User, error)
	Search(ctx context.Context, search string) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, id primitive.ObjectID, patch types.UserPatch) (types.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Search(ctx context.Context, search string) ([]types.User, error) {
	return s.repo.Search(ctx, search)
}

func (s *UserService) Create(ctx context.Context, user types.User) (types.User, error) {
	return s.repo.Create(ctx, user)
}

func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, patch types.UserPatch) (types.User, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}
