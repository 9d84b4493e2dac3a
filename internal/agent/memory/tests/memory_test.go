package tests

import (
	"errors"
	"sync"
	"testing"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/memory"
	serr "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/models"
)

func TestNewSnapshot_Empty(t *testing.T) {
	s := memory.NewSnapshot()
	if s == nil {
		t.Fatalf("expected non-nil snapshot")
	}
	if got := s.List(); len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
	if !s.FetchedAt().IsZero() {
		t.Fatalf("expected zero FetchedAt before first replace")
	}
}

func TestSnapshot_Get_NotFound(t *testing.T) {
	s := memory.NewSnapshot()
	_, err := s.Get("missing")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshot_ReplaceAll_AndGet(t *testing.T) {
	s := memory.NewSnapshot()

	s.ReplaceAll([]models.UserRecord{{ID: "1", Name: "Ana", Age: "30", Email: "a@x.com"}})

	got, err := s.Get("1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "Ana" || got.Age != "30" || got.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if s.FetchedAt().IsZero() {
		t.Fatalf("expected FetchedAt to be set")
	}
}

// порядок сервера сохраняется, локальной сортировки нет
func TestSnapshot_List_KeepsServerOrder(t *testing.T) {
	s := memory.NewSnapshot()

	s.ReplaceAll([]models.UserRecord{{ID: "c"}, {ID: "a"}, {ID: "b"}})

	items := s.List()
	if len(items) != 3 || items[0].ID != "c" || items[1].ID != "a" || items[2].ID != "b" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

// ReplaceAll заменяет, а не сливает
func TestSnapshot_ReplaceAll_DoesNotMerge(t *testing.T) {
	s := memory.NewSnapshot()

	s.ReplaceAll([]models.UserRecord{{ID: "old"}})
	s.ReplaceAll([]models.UserRecord{{ID: "new"}})

	if s.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", s.Len())
	}
	if _, err := s.Get("old"); !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected old record to be gone, got %v", err)
	}
}

func TestSnapshot_List_ReturnsCopy(t *testing.T) {
	s := memory.NewSnapshot()
	s.ReplaceAll([]models.UserRecord{{ID: "1", Name: "Ana"}})

	items := s.List()
	items[0].Name = "changed"

	got, _ := s.Get("1")
	if got.Name != "Ana" {
		t.Fatalf("snapshot must not be mutated through List result, got %q", got.Name)
	}
}

func TestSnapshot_ReplaceAll_CopiesInput(t *testing.T) {
	s := memory.NewSnapshot()
	in := []models.UserRecord{{ID: "1", Name: "Ana"}}
	s.ReplaceAll(in)

	in[0].Name = "changed"

	got, _ := s.Get("1")
	if got.Name != "Ana" {
		t.Fatalf("snapshot must not share caller slice, got %q", got.Name)
	}
}

func TestSnapshot_ConcurrentAccess(t *testing.T) {
	s := memory.NewSnapshot()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.ReplaceAll([]models.UserRecord{{ID: "1"}, {ID: "2"}})
		}()
		go func() {
			defer wg.Done()
			_ = s.List()
			_, _ = s.Get("1")
		}()
	}
	wg.Wait()

	if s.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", s.Len())
	}
}
