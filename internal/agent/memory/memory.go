// Package memory содержит in-memory снимок (snapshot) списка пользователей,
// который держит клиент.
package memory

import (
	"sync"
	"time"

	serr "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/models"
)

// Snapshot — потокобезопасный снимок пользователей, полученный с сервера.
//
// Снимок только для чтения: менять его можно лишь целиком через ReplaceAll
// после успешного запроса списка. Порядок записей сохраняется таким,
// каким его вернул сервер (локальной сортировки нет).
type Snapshot struct {
	mu        sync.RWMutex
	users     []models.UserRecord
	index     map[models.UserID]int
	fetchedAt time.Time
}

// NewSnapshot создаёт пустой снимок.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		users: []models.UserRecord{},
		index: make(map[models.UserID]int),
	}
}

// ReplaceAll полностью заменяет снимок переданным списком.
//
// Список копируется, поэтому вызывающий код может дальше менять свой слайс.
// Если в списке есть дубликаты по ID, Get вернёт последнюю запись.
func (s *Snapshot) ReplaceAll(users []models.UserRecord) {
	cp := make([]models.UserRecord, len(users))
	copy(cp, users)

	idx := make(map[models.UserID]int, len(cp))
	for i, u := range cp {
		idx[u.ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = cp
	s.index = idx
	s.fetchedAt = time.Now()
}

// List возвращает копию снимка в порядке сервера.
func (s *Snapshot) List() []models.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.UserRecord, len(s.users))
	copy(result, s.users)
	return result
}

// Get возвращает пользователя по ID.
//
// Если пользователя нет в снимке — возвращает serr.ErrNotFound.
func (s *Snapshot) Get(id models.UserID) (models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.UserRecord{}, serr.ErrNotFound
	}
	return s.users[i], nil
}

// Len возвращает количество записей в снимке.
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users)
}

// FetchedAt возвращает время последней замены снимка.
// Нулевое время означает, что снимок ещё ни разу не загружался.
func (s *Snapshot) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.fetchedAt
}
