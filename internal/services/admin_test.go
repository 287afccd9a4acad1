package services

import (
	"context"
	"testing"

	"github.com/libshelf/apiserver/internal/store"
	"github.com/libshelf/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type recordingAdminRepo struct {
	admin     types.Admin
	lastPatch types.AdminPatch
}

func (r *recordingAdminRepo) GetByID(_ context.Context, id primitive.ObjectID) (types.Admin, error) {
	if r.admin.ID != id {
		return types.Admin{}, store.ErrNotFound
	}
	return r.admin, nil
}

func (r *recordingAdminRepo) GetByUserName(_ context.Context, userName string) (types.Admin, error) {
	if r.admin.UserName != userName {
		return types.Admin{}, store.ErrNotFound
	}
	return r.admin, nil
}

func (r *recordingAdminRepo) Search(_ context.Context, _ string) ([]types.Admin, error) {
	return []types.Admin{r.admin}, nil
}

func (r *recordingAdminRepo) Create(_ context.Context, admin types.Admin) (types.Admin, error) {
	admin.ID = primitive.NewObjectID()
	r.admin = admin
	return admin, nil
}

func (r *recordingAdminRepo) Update(_ context.Context, id primitive.ObjectID, patch types.AdminPatch) (types.Admin, error) {
	if r.admin.ID != id {
		return types.Admin{}, store.ErrNotFound
	}
	r.lastPatch = patch
	if patch.PasswordHash != "" {
		r.admin.Password = patch.PasswordHash
	}
	return r.admin, nil
}

func (r *recordingAdminRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.admin.ID != id {
		return store.ErrNotFound
	}
	r.admin = types.Admin{}
	return nil
}

func TestAdminCreateStoresHash(t *testing.T) {
	repo := &recordingAdminRepo{}
	svc := NewAdminService(repo, bcrypt.MinCost)

	admin, err := svc.Create(context.Background(), types.Admin{UserName: "rootadmin"}, "password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", admin.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("password123")))
}

func TestAuthenticate(t *testing.T) {
	repo := &recordingAdminRepo{}
	svc := NewAdminService(repo, bcrypt.MinCost)
	_, err := svc.Create(context.Background(), types.Admin{UserName: "rootadmin"}, "password123")
	require.NoError(t, err)

	admin, err := svc.Authenticate(context.Background(), "rootadmin", "password123")
	require.NoError(t, err)
	assert.Equal(t, "rootadmin", admin.UserName)

	_, err = svc.Authenticate(context.Background(), "rootadmin", "wrongpassword")
	assert.ErrorIs(t, err, ErrIncorrectCredentials)

	// Unknown userName is indistinguishable from a bad password.
	_, err = svc.Authenticate(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, ErrIncorrectCredentials)
}

func TestAdminUpdateRehashesLongPassword(t *testing.T) {
	repo := &recordingAdminRepo{}
	svc := NewAdminService(repo, bcrypt.MinCost)
	admin, err := svc.Create(context.Background(), types.Admin{UserName: "rootadmin"}, "password123")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), admin.ID, AdminUpdate{Password: "newpassword456"})
	require.NoError(t, err)

	require.NotEmpty(t, repo.lastPatch.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.lastPatch.PasswordHash), []byte("newpassword456")))
}

func TestAdminUpdateIgnoresShortPassword(t *testing.T) {
	repo := &recordingAdminRepo{}
	svc := NewAdminService(repo, bcrypt.MinCost)
	admin, err := svc.Create(context.Background(), types.Admin{UserName: "rootadmin"}, "password123")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), admin.ID, AdminUpdate{Name: "Root Admin", Password: "short"})
	require.NoError(t, err)

	// The short password is dropped, not rejected; the rest of the update
	// still applies.
	assert.Empty(t, repo.lastPatch.PasswordHash)
	assert.Equal(t, "Root Admin", repo.lastPatch.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.admin.Password), []byte("password123")))
}

func TestNewAdminServiceClampsCost(t *testing.T) {
	repo := &recordingAdminRepo{}
	svc := NewAdminService(repo, 99)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)
}
