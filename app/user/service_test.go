package user

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/TestingSDK2/produco-backend/app/config"
	"github.com/TestingSDK2/produco-backend/app/notification"
	"github.com/TestingSDK2/produco-backend/cache"
	"github.com/TestingSDK2/produco-backend/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryRepo struct {
	users map[primitive.ObjectID]*model.User
	reads int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[primitive.ObjectID]*model.User{}}
}

func (m *memoryRepo) Create(_ context.Context, u *model.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memoryRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	m.reads++
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, model.ErrNotFound
}

func (m *memoryRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	out := []model.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memoryRepo) FindAll(context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memoryRepo) FindByRole(_ context.Context, role string) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memoryRepo) SetStatus(_ context.Context, id primitive.ObjectID, status string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	u.Status = status
	copied := *u
	return &copied, nil
}

type memoryCache struct {
	values map[string]string
}

func (c *memoryCache) GetJSON(key string, out interface{}) error {
	v, ok := c.values[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal([]byte(v), out)
}

func (c *memoryCache) SetJSON(key string, v interface{}, _ int) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.values[key] = string(data)
	return nil
}

func (c *memoryCache) DeleteValue(key string) error {
	delete(c.values, key)
	return nil
}

type created struct {
	typ  string
	opts notification.Options
}

type recordingNotifier struct {
	notification.Service
	created []created
}

func (r *recordingNotifier) CreateNotification(_ context.Context, typ, _ string, opts notification.Options) (*model.Notification, error) {
	r.created = append(r.created, created{typ: typ, opts: opts})
	return &model.Notification{ID: primitive.NewObjectID(), Type: typ}, nil
}

func newTestService() (*service, *memoryRepo, *memoryCache, *recordingNotifier) {
	conf := config.Defaults("test-key")
	conf.AdminEmails = []string{"adm@example.com"}
	conf.PrimaryAdminEmail = "adm@example.com"

	repo := newMemoryRepo()
	c := &memoryCache{values: map[string]string{}}
	notifier := &recordingNotifier{}
	return NewService(repo, c, notifier, conf).(*service), repo, c, notifier
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo, _, notifier := newTestService()
	ctx := context.Background()

	admin, err := svc.Register(ctx, RegisterInput{Name: "Root", Email: "ADM@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.NotEmpty(t, admin.Token)
	assert.Empty(t, notifier.created)

	res, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, res.Role)
	assert.Equal(t, model.UserStatusActive, res.Status)

	require.Len(t, notifier.created, 1)
	assert.Equal(t, model.NotificationNewUser, notifier.created[0].typ)
	assert.Equal(t, admin.ID, notifier.created[0].opts.UserID)
	assert.Equal(t, "/users/"+res.ID, notifier.created[0].opts.Link)
	assert.Equal(t, &model.NewUserData{UserID: res.ID}, notifier.created[0].opts.Data)

	stored, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.Password)

	_, err = svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "other"})
	assert.IsType(t, &model.ValidationError{}, err)

	login, err := svc.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, res.ID, login.ID)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.(*model.UserError).StatusCode)

	_, err = svc.Login(ctx, "nobody@example.com", "secret")
	assert.Equal(t, http.StatusUnauthorized, err.(*model.UserError).StatusCode)
}

func TestRegisterRequiresFields(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{Email: "x@example.com"})
	assert.IsType(t, &model.ValidationError{}, err)
}

func TestBlockedUserCannotSignIn(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pw"})
	require.NoError(t, err)

	blocked, err := svc.BlockUser(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusBlocked, blocked.Status)

	_, err = svc.Login(ctx, "bob@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, err.(*model.UserError).StatusCode)

	_, err = svc.Authenticate(ctx, res.Token)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, err.(*model.UserError).StatusCode)

	_, err = svc.UnblockUser(ctx, res.ID)
	require.NoError(t, err)
	user, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "Bob", user.Name)
}

func TestPrimaryAdminCannotBeBlocked(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	admin, err := svc.Register(ctx, RegisterInput{Name: "Root", Email: "adm@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.BlockUser(ctx, admin.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, err.(*model.UserError).StatusCode)

	_, err = svc.BlockUser(ctx, primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusNotFound, err.(*model.UserError).StatusCode)
}

func TestAuthenticateUsesCache(t *testing.T) {
	svc, repo, c, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "pw"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.Authenticate(ctx, res.Token)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.reads)

	id, _ := primitive.ObjectIDFromHex(res.ID)
	assert.Contains(t, c.values, userCacheKey(id))

	_, err = svc.BlockUser(ctx, res.ID)
	require.NoError(t, err)
	assert.NotContains(t, c.values, userCacheKey(id))
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "garbage")
	assert.Equal(t, http.StatusUnauthorized, err.(*model.UserError).StatusCode)

	expired, err := createJWTToken(primitive.NewObjectID().Hex(), model.RoleUser, -1*time.Nanosecond, "test-key")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, expired.Value)
	require.Error(t, err)
	assert.Equal(t, "token has expired", err.Error())

	forged, err := createJWTToken(primitive.NewObjectID().Hex(), model.RoleAdmin, 1, "other-key")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged.Value)
	assert.Equal(t, "invalid token", err.Error())
}
