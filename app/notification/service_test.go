package notification

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/TestingSDK2/produco-backend/app/config"
	"github.com/TestingSDK2/produco-backend/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryRepo struct {
	mu            sync.Mutex
	notifications []*model.Notification
	insertErr     error
}

func (m *memoryRepo) Insert(_ context.Context, n *model.Notification) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
	return nil
}

func visibleTo(n *model.Notification, userID, role string) bool {
	if n.TargetRole == model.RoleAll {
		return true
	}
	if userID != "" && n.UserID == userID {
		return true
	}
	return role != "" && n.TargetRole == role && !n.Personal
}

func (m *memoryRepo) sorted(keep func(*model.Notification) bool) []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Notification{}
	for _, n := range m.notifications {
		if keep(n) {
			out = append(out, *n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memoryRepo) FindForUser(_ context.Context, userID, role string) ([]model.Notification, error) {
	return m.sorted(func(n *model.Notification) bool { return visibleTo(n, userID, role) }), nil
}

func (m *memoryRepo) FindAll(context.Context) ([]model.Notification, error) {
	return m.sorted(func(*model.Notification) bool { return true }), nil
}

func (m *memoryRepo) CountUnread(_ context.Context, userID, role string) (int64, error) {
	list := m.sorted(func(n *model.Notification) bool { return !n.IsRead && visibleTo(n, userID, role) })
	return int64(len(list)), nil
}

func (m *memoryRepo) MarkRead(_ context.Context, id primitive.ObjectID) (*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifications {
		if n.ID == id {
			n.IsRead = true
			copied := *n
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memoryRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (m *memoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notifications {
		if n.ID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

type delivery struct {
	target  string
	id      primitive.ObjectID
	exclude string
}

type recordingChannel struct {
	deliveries []delivery
}

func (c *recordingChannel) Deliver(target string, n *model.Notification, exclude string) int {
	c.deliveries = append(c.deliveries, delivery{target: target, id: n.ID, exclude: exclude})
	return 1
}

func newTestService(ch DeliveryChannel) (Service, *memoryRepo) {
	repo := &memoryRepo{}
	return NewService(repo, config.Defaults("secret"), ch), repo
}

func TestCreateNotificationPersonalDefaults(t *testing.T) {
	ch := &recordingChannel{}
	svc, repo := newTestService(ch)

	n, err := svc.CreateNotification(context.Background(), model.NotificationApprove, "your product was approved", Options{
		UserID: "userB",
		Data:   &model.ApproveData{ProductID: "p1"},
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleUser, n.TargetRole)
	assert.True(t, n.Personal)
	assert.Equal(t, "/user-dashboard/products", n.Link)
	assert.False(t, n.IsRead)
	assert.False(t, n.ID.IsZero())
	require.Len(t, repo.notifications, 1)

	require.Len(t, ch.deliveries, 1)
	assert.Equal(t, delivery{target: "userB", id: n.ID, exclude: ""}, ch.deliveries[0])
}

func TestCreateNotificationRoleExcludesActor(t *testing.T) {
	ch := &recordingChannel{}
	svc, _ := newTestService(ch)

	_, err := svc.CreateNotification(context.Background(), model.NotificationNewProduct, "a new product is waiting", Options{
		UserID:     "author",
		TargetRole: model.RoleAdmin,
	})
	require.NoError(t, err)
	require.Len(t, ch.deliveries, 1)
	assert.Equal(t, model.RoleAdmin, ch.deliveries[0].target)
	assert.Equal(t, "author", ch.deliveries[0].exclude)

	_, err = svc.CreateNotification(context.Background(), model.NotificationNewProduct, "new in the shop", Options{
		UserID:        "author",
		TargetRole:    model.RoleAll,
		ExcludeUserID: "owner",
	})
	require.NoError(t, err)
	require.Len(t, ch.deliveries, 2)
	assert.Equal(t, model.RoleAll, ch.deliveries[1].target)
	assert.Equal(t, "owner", ch.deliveries[1].exclude)
}

func TestCreateNotificationValidation(t *testing.T) {
	ch := &recordingChannel{}
	svc, repo := newTestService(ch)
	ctx := context.Background()

	cases := []struct {
		name    string
		typ     string
		message string
		opts    Options
	}{
		{"unknown type", "poke", "hello", Options{UserID: "u1"}},
		{"empty message", model.NotificationSystem, "   ", Options{UserID: "u1"}},
		{"no audience", model.NotificationSystem, "hello", Options{}},
		{"bad role", model.NotificationSystem, "hello", Options{TargetRole: "guests"}},
		{"bad product", model.NotificationSystem, "hello", Options{UserID: "u1", ProductID: "nope"}},
		{"mismatched data", model.NotificationLike, "hello", Options{UserID: "u1", Data: &model.BlockData{}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateNotification(ctx, tc.typ, tc.message, tc.opts)
			require.Error(t, err)
			_, ok := err.(*model.ValidationError)
			assert.True(t, ok, "expected validation error, got %T", err)
		})
	}

	assert.Empty(t, repo.notifications)
	assert.Empty(t, ch.deliveries)
}

func TestCreateNotificationStoreFailureSkipsDelivery(t *testing.T) {
	ch := &recordingChannel{}
	repo := &memoryRepo{insertErr: errors.New("connection reset")}
	svc := NewService(repo, config.Defaults("secret"), ch)

	n, err := svc.CreateNotification(context.Background(), model.NotificationSystem, "maintenance tonight", Options{TargetRole: model.RoleAll})
	assert.Nil(t, n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Empty(t, ch.deliveries)
}

func TestCreateNotificationWithoutChannel(t *testing.T) {
	svc, repo := newTestService(nil)

	n, err := svc.CreateNotification(context.Background(), model.NotificationSystem, "hello", Options{TargetRole: model.RoleAll})
	require.NoError(t, err)
	assert.NotNil(t, n)
	assert.Len(t, repo.notifications, 1)

	ch := &recordingChannel{}
	svc.UseChannel(ch)
	_, err = svc.CreateNotification(context.Background(), model.NotificationSystem, "hello again", Options{TargetRole: model.RoleAll})
	require.NoError(t, err)
	assert.Len(t, ch.deliveries, 1)
}

func TestGetUserNotificationsAudience(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	base := time.Now()
	add := func(n model.Notification, offset time.Duration) {
		n.ID = primitive.NewObjectID()
		n.CreatedAt = base.Add(offset)
		repo.notifications = append(repo.notifications, &n)
	}

	add(model.Notification{UserID: "u1", TargetRole: model.RoleUser, Personal: true, Message: "t1"}, time.Second)
	add(model.Notification{TargetRole: model.RoleAll, Message: "t2"}, 2*time.Second)
	add(model.Notification{TargetRole: model.RoleAdmin, Message: "t3"}, 3*time.Second)
	add(model.Notification{UserID: "u2", TargetRole: model.RoleUser, Personal: true, Message: "t4"}, 4*time.Second)
	add(model.Notification{TargetRole: model.RoleUser, Message: "t5"}, 5*time.Second)

	list, err := svc.GetUserNotifications(ctx, "u1", model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, []string{"t5", "t2", "t1"}, messages(list))

	list, err = svc.GetUserNotifications(ctx, "a1", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t2"}, messages(list))

	count, err := svc.GetUnreadCount(ctx, "u2", model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMarkNotificationAsReadIsIdempotent(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	n, err := svc.CreateNotification(ctx, model.NotificationSystem, "hello", Options{UserID: "u1"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		read, err := svc.MarkNotificationAsRead(ctx, n.ID.Hex())
		require.NoError(t, err)
		assert.True(t, read.IsRead)
	}

	_, err = svc.MarkNotificationAsRead(ctx, primitive.NewObjectID().Hex())
	require.Error(t, err)
	uerr, ok := err.(*model.UserError)
	require.True(t, ok)
	assert.Equal(t, 404, uerr.StatusCode)

	_, err = svc.MarkNotificationAsRead(ctx, "not-an-id")
	assert.IsType(t, &model.UserError{}, err)
}

func TestMarkAllAndDelete(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	first, err := svc.CreateNotification(ctx, model.NotificationSystem, "one", Options{UserID: "u1"})
	require.NoError(t, err)
	_, err = svc.CreateNotification(ctx, model.NotificationSystem, "two", Options{UserID: "u1"})
	require.NoError(t, err)

	updated, err := svc.MarkAllNotificationAsRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	count, err := svc.GetUnreadCount(ctx, "u1", model.RoleUser)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.DeleteNotification(ctx, first.ID.Hex()))
	assert.Len(t, repo.notifications, 1)

	err = svc.DeleteNotification(ctx, first.ID.Hex())
	assert.IsType(t, &model.UserError{}, err)
}

func messages(list []model.Notification) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		out = append(out, n.Message)
	}
	return out
}
