package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/libshelf/apiserver/internal/services"
	"github.com/libshelf/apiserver/internal/store"
	"github.com/libshelf/apiserver/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users     map[primitive.ObjectID]types.User
	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]types.User{}}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) Search(_ context.Context, search string) ([]types.User, error) {
	var out []types.User
	for _, u := range r.users {
		if search == "" || strings.Contains(strings.ToLower(u.Name), strings.ToLower(search)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	if r.createErr != nil {
		return types.User{}, r.createErr
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, patch types.UserPatch) (types.User, error) {
	if r.updateErr != nil {
		return types.User{}, r.updateErr
	}
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	if patch.Name != "" {
		user.Name = patch.Name
	}
	if patch.ContactNo != "" {
		user.ContactNo = patch.ContactNo
	}
	if patch.EmailId != "" {
		user.EmailId = patch.EmailId
	}
	r.users[id] = user
	return user, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func newUserRouter(repo services.UserRepository) *chi.Mux {
	router := chi.NewRouter()
	UserRouter(router, NewUserHandler(services.NewUserService(repo), zerolog.Nop()))
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, decodeEnvelope(t, rec)
}

func TestCreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	router := newUserRouter(repo)

	rec, env := doRequest(t, router, http.MethodPost, "/addUser",
		`{"name":"Ada Lovelace","userName":"ada","contactNo":"1234567890","emailId":"ada@example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.StatusSuccess, env.Status)
	assert.Equal(t, "User created successfully", env.Message)

	data := env.dataObject(t)
	assert.Equal(t, "Ada Lovelace", data["name"])
	assert.NotEmpty(t, data["id"])
	assert.Len(t, repo.users, 1)
}

func TestCreateUserValidation(t *testing.T) {
	router := newUserRouter(newFakeUserRepo())

	cases := []struct {
		name string
		body string
	}{
		{"short name", `{"name":"Al","userName":"ada","contactNo":"1234567890","emailId":"ada@example.com"}`},
		{"bad contactNo", `{"name":"Ada Lovelace","userName":"ada","contactNo":"12345","emailId":"ada@example.com"}`},
		{"bad email", `{"name":"Ada Lovelace","userName":"ada","contactNo":"1234567890","emailId":"not-an-email"}`},
		{"malformed body", `{"name":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := doRequest(t, router, http.MethodPost, "/addUser", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, types.StatusError, env.Status)
			assert.True(t, strings.HasPrefix(env.Message, "Validation error"), env.Message)
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = store.ErrDuplicateKey
	router := newUserRouter(repo)

	rec, env := doRequest(t, router, http.MethodPost, "/addUser",
		`{"name":"Ada Lovelace","userName":"ada","contactNo":"1234567890","emailId":"ada@example.com"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User name already exists", env.Message)
}

func TestGetUserByID(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := repo.Create(context.Background(), types.User{Name: "Ada Lovelace", UserName: "ada"})
	require.NoError(t, err)
	router := newUserRouter(repo)

	rec, env := doRequest(t, router, http.MethodGet, "/users?id="+user.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User found", env.Message)
	assert.Equal(t, "ada", env.dataObject(t)["userName"])
}

func TestGetUserByIDNotFound(t *testing.T) {
	router := newUserRouter(newFakeUserRepo())

	rec, env := doRequest(t, router, http.MethodGet, "/users?id="+primitive.NewObjectID().Hex(), "")

	// A missing record on a read is not an error for this API.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.StatusSuccess, env.Status)
	assert.Equal(t, "No user found", env.Message)
	assert.Equal(t, "null", string(env.Data))
}

func TestGetUserByMalformedID(t *testing.T) {
	router := newUserRouter(newFakeUserRepo())

	rec, env := doRequest(t, router, http.MethodGet, "/users?id=not-hex", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error in getting users", env.Message)
}

func TestSearchUsers(t *testing.T) {
	repo := newFakeUserRepo()
	_, err := repo.Create(context.Background(), types.User{Name: "Ada Lovelace", UserName: "ada"})
	require.NoError(t, err)
	router := newUserRouter(repo)

	rec, env := doRequest(t, router, http.MethodGet, "/users?search=lovelace", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User found", env.Message)
	assert.Len(t, env.dataArray(t), 1)

	rec, env = doRequest(t, router, http.MethodGet, "/users?search=nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No user found", env.Message)
}

func TestUpdateUser(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := repo.Create(context.Background(), types.User{Name: "Ada Lovelace", UserName: "ada", ContactNo: "1234567890"})
	require.NoError(t, err)
	router := newUserRouter(repo)

	rec, env := doRequest(t, router, http.MethodPost, "/updateUser",
		`{"id":"`+user.ID.Hex()+`","contactNo":"0987654321"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User updated successfully", env.Message)

	data := env.dataObject(t)
	assert.Equal(t, "0987654321", data["contactNo"])
	// Untouched fields survive a partial update.
	assert.Equal(t, "Ada Lovelace", data["name"])
}

func TestUpdateUserMissingID(t *testing.T) {
	router := newUserRouter(newFakeUserRepo())

	rec, env := doRequest(t, router, http.MethodPost, "/updateUser", `{"name":"Ada Lovelace"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation error: Id is required", env.Message)
}

func TestUpdateUserNotFound(t *testing.T) {
	router := newUserRouter(newFakeUserRepo())

	rec, env := doRequest(t, router, http.MethodPost, "/updateUser",
		`{"id":"`+primitive.NewObjectID().Hex()+`","name":"Ada Lovelace"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No user found", env.Message)
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := repo.Create(context.Background(), types.User{Name: "Ada Lovelace", UserName: "ada"})
	require.NoError(t, err)
	router := newUserRouter(repo)

	rec, env := doRequest(t, router, http.MethodDelete, "/deleteUser?id="+user.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User successfully deleted", env.Message)
	assert.Empty(t, repo.users)

	rec, env = doRequest(t, router, http.MethodDelete, "/deleteUser?id="+user.ID.Hex(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No user found", env.Message)
}

func TestDeleteUserMissingID(t *testing.T) {
	router := newUserRouter(newFakeUserRepo())

	rec, env := doRequest(t, router, http.MethodDelete, "/deleteUser", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation error: Id is required", env.Message)
}
