package tests

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	serr "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/models"
)

// fakeDirectory — in-memory справочник для проверки сценариев целиком.
type fakeDirectory struct {
	mu     sync.Mutex
	users  []models.UserRecord
	nextID int

	// для проверки, что запросы списка не пересекаются
	delay    time.Duration
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	lists    atomic.Int32
}

func newFakeDirectory(users ...models.UserRecord) *fakeDirectory {
	return &fakeDirectory{users: users, nextID: len(users) + 1}
}

func (f *fakeDirectory) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	f.lists.Add(1)

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.UserRecord, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeDirectory) CreateUser(_ context.Context, req models.CreateUserRequest) (models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := models.UserRecord{
		ID:    models.UserID(strconv.Itoa(f.nextID)),
		Name:  req.Name,
		Age:   req.Age,
		Email: req.Email,
	}
	f.nextID++
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeDirectory) DeleteUser(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, u := range f.users {
		if u.ID.String() == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return serr.ErrNotFound
}
