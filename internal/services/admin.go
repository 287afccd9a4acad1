package services

import (
	"context"
	"errors"

	"github.com/libshelf/apiserver/internal/store"
	"github.com/libshelf/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest admin password accepted on creation,
// login, and password change.
const MinPasswordLength = 8

// ErrIncorrectCredentials is returned when the userName is unknown or the
// password does not match the stored hash.
var ErrIncorrectCredentials = errors.New("incorrect credentials")

// AdminRepository defines persistence operations for admin accounts.
type AdminRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (types.Admin, error)
	GetByUserName(ctx context.Context, userName string) (types.Admin, error)
	Search(ctx context.Context, search string) ([]types.Admin, error)
	Create(ctx context.Context, admin types.Admin) (types.Admin, error)
	Update(ctx context.Context, id primitive.ObjectID, patch types.AdminPatch) (types.Admin, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AdminUpdate carries the optional fields of an admin update. A password
// shorter than MinPasswordLength is ignored rather than rejected.
type AdminUpdate struct {
	Name      string
	ContactNo string
	EmailId   string
	Password  string
}

// AdminService encapsulates admin use-cases, including credential
// verification for login.
type AdminService struct {
	repo AdminRepository
	cost int
}

func NewAdminService(repo AdminRepository, bcryptCost int) *AdminService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminService{repo: repo, cost: bcryptCost}
}

func (s *AdminService) GetByID(ctx context.Context, id primitive.ObjectID) (types.Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AdminService) Search(ctx context.Context, search string) ([]types.Admin, error) {
	return s.repo.Search(ctx, search)
}

// Create hashes the supplied password and persists the admin.
func (s *AdminService) Create(ctx context.Context, admin types.Admin, password string) (types.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return types.Admin{}, err
	}
	admin.Password = string(hash)
	return s.repo.Create(ctx, admin)
}

// Authenticate looks up the admin by userName and compares the supplied
// password against the stored hash in constant time.
func (s *AdminService) Authenticate(ctx context.Context, userName, password string) (types.Admin, error) {
	admin, err := s.repo.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Admin{}, ErrIncorrectCredentials
		}
		return types.Admin{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return types.Admin{}, ErrIncorrectCredentials
	}
	return admin, nil
}

func (s *AdminService) Update(ctx context.Context, id primitive.ObjectID, in AdminUpdate) (types.Admin, error) {
	patch := types.AdminPatch{
		Name:      in.Name,
		ContactNo: in.ContactNo,
		EmailId:   in.EmailId,
	}
	if len(in.Password) >= MinPasswordLength {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
		if err != nil {
			return types.Admin{}, err
		}
		patch.PasswordHash = string(hash)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *AdminService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}
