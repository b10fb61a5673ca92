package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/feedify/backend/internal/domain/events"
	"github.com/feedify/backend/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu    sync.Mutex
	items []*notification.Notification
}

func (r *fakeRepo) Save(n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]*notification.Notification{n}, r.items...)
	return nil
}

func (r *fakeRepo) ListByUser(userID string, limit int) ([]*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notification.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, n)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakePusher struct {
	mu     sync.Mutex
	pushed map[string][]any
	err    error
}

func (p *fakePusher) PushToUser(userID string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pushed == nil {
		p.pushed = make(map[string][]any)
	}
	p.pushed[userID] = append(p.pushed[userID], payload)
	return p.err
}

func TestService_HandleEvent_SavesAndPushes(t *testing.T) {
	repo := &fakeRepo{}
	pusher := &fakePusher{}
	svc := NewService(repo, notification.NewService(), pusher)

	err := svc.HandleEvent(context.Background(), &events.MessageEvent{
		EventType: events.MessageReceived,
		OwnerID:   "owner-1",
		SpaceName: "talks",
		MessageID: "m1",
		Content:   "nice talk",
		EventTime: time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, repo.items, 1)
	assert.Equal(t, notification.TypeMessageReceived, repo.items[0].Type)

	require.Len(t, pusher.pushed["owner-1"], 1)
	dto := pusher.pushed["owner-1"][0].(*NotificationDTO)
	assert.Equal(t, "talks", dto.SpaceName)
	assert.Equal(t, "nice talk", dto.Content)
}

func TestService_HandleEvent_PushFailureIsNotAnError(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, notification.NewService(), &fakePusher{err: errors.New("offline")})

	err := svc.HandleEvent(context.Background(), &events.MessageEvent{
		EventType: events.MessageDeleted,
		OwnerID:   "owner-1",
		MessageID: "m1",
	})
	assert.NoError(t, err)
	assert.Len(t, repo.items, 1)
}

func TestService_HandleEvent_RejectsInvalid(t *testing.T) {
	svc := NewService(&fakeRepo{}, notification.NewService(), &fakePusher{})

	err := svc.HandleEvent(context.Background(), &events.MessageEvent{EventType: events.MessageReceived})
	assert.ErrorIs(t, err, notification.ErrInvalidUser)

	err = svc.HandleEvent(context.Background(), &events.ConfigFileEvent{Path: "x"})
	assert.Error(t, err)
}

func TestService_ListRecent(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, notification.NewService(), &fakePusher{})

	for _, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, svc.HandleEvent(context.Background(), &events.MessageEvent{
			EventType: events.MessageReceived,
			OwnerID:   "owner-1",
			MessageID: id,
		}))
	}

	items, err := svc.ListRecent("owner-1", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "m3", items[0].MessageID)

	items, err = svc.ListRecent("someone-else", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}
