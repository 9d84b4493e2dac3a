// Package view реализует UserListView — состояние экрана "Cadastro de Usuários".
//
// UserListView держит снимок (snapshot) пользователей и оркестрирует
// три удалённые операции справочника:
//   - Refresh: GET списка и полная замена снимка;
//   - SubmitNew: POST нового пользователя, затем Refresh;
//   - RemoveUser: DELETE по id, затем Refresh (или уведомление об ошибке).
//
// Снимок никогда не меняется локально, кроме как целиком после успешного Refresh.
// Одновременно выполняется не больше одного запроса списка.
package view

//go:generate mockgen -source=view.go -destination=mocks/mock_directory.go -package=mocks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/memory"
	serr "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/logger"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/models"
)

// UserDirectoryService — удалённый справочник пользователей.
//
// Реализуется api.Client, в тестах подменяется моком.
type UserDirectoryService interface {
	ListUsers(ctx context.Context) ([]models.UserRecord, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.UserRecord, error)
	DeleteUser(ctx context.Context, id string) error
}

// State — состояние загрузки списка.
type State int32

const (
	StateIdle State = iota
	StateFetching
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	default:
		return "idle"
	}
}

// NoticeLevel — уровень уведомления для пользователя.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice — сообщение, которое нужно показать пользователю.
type Notice struct {
	Level   NoticeLevel
	Message string
	Err     error
}

func (n Notice) String() string {
	if n.Err != nil && n.Level == NoticeError {
		return n.Message + ": " + n.Err.Error()
	}
	return n.Message
}

// Notifier получает уведомления от UserListView (аналог alert в UI).
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc позволяет использовать обычную функцию как Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Form — явное состояние полей формы.
//
// Значения читаются в момент отправки и уходят на сервер как есть.
type Form struct {
	Name  string
	Age   string
	Email string
}

// UserListView держит снимок пользователей и выполняет операции справочника.
type UserListView struct {
	svc      UserDirectoryService
	snapshot *memory.Snapshot
	log      *zap.SugaredLogger
	notifier Notifier

	// fetch ограничивает число одновременных запросов списка одним
	fetch *semaphore.Weighted
	state atomic.Int32

	mountOnce sync.Once
	mountErr  error

	formMu sync.Mutex
	form   Form
}

// Option настраивает UserListView.
type Option func(*UserListView)

// WithLogger задаёт логгер. По умолчанию логи не пишутся.
func WithLogger(l *logger.HTTPLogger) Option {
	return func(v *UserListView) {
		if l != nil {
			v.log = l.Sugar()
		}
	}
}

// WithNotifier задаёт получателя уведомлений.
func WithNotifier(n Notifier) Option {
	return func(v *UserListView) {
		if n != nil {
			v.notifier = n
		}
	}
}

// New создаёт UserListView поверх переданного справочника.
func New(svc UserDirectoryService, opts ...Option) *UserListView {
	v := &UserListView{
		svc:      svc,
		snapshot: memory.NewSnapshot(),
		log:      zap.NewNop().Sugar(),
		notifier: NotifierFunc(func(Notice) {}),
		fetch:    semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount выполняет первичную загрузку списка. Повторные вызовы ничего не делают
// и возвращают результат первого.
func (v *UserListView) Mount(ctx context.Context) error {
	v.mountOnce.Do(func() {
		_, v.mountErr = v.Refresh(ctx)
	})
	return v.mountErr
}

// Refresh запрашивает список пользователей и целиком заменяет снимок.
//
// Если другой Refresh уже выполняется, вызов ждёт его завершения и делает
// собственный запрос: так обновление после create/delete никогда не получит
// ответ запроса, начатого до изменения.
//
// При ошибке снимок не меняется, ошибка логируется, показывается уведомление
// и возвращается вызывающему.
func (v *UserListView) Refresh(ctx context.Context) ([]models.UserRecord, error) {
	if err := v.fetch.Acquire(ctx, 1); err != nil {
		return nil, v.fetchFailed(err)
	}
	defer v.fetch.Release(1)

	v.state.Store(int32(StateFetching))
	defer v.state.Store(int32(StateIdle))

	users, err := v.svc.ListUsers(ctx)
	if err != nil {
		return nil, v.fetchFailed(err)
	}

	v.snapshot.ReplaceAll(users)
	v.log.Debugw("snapshot replaced", "count", len(users))

	return v.snapshot.List(), nil
}

// fetchFailed логирует ошибку загрузки, показывает уведомление
// и оборачивает err в serr.ErrFetchFailed.
func (v *UserListView) fetchFailed(err error) error {
	v.log.Errorw("list users failed", "error", err)
	v.notifier.Notify(Notice{Level: NoticeError, Message: serr.ErrFetchFailed.Error(), Err: err})
	return fmt.Errorf("%w: %w", serr.ErrFetchFailed, err)
}

// SubmitNew создаёт пользователя из сырых значений полей и обновляет список.
//
// Значения не обрезаются, не приводятся к типам и не проверяются на пустоту:
// валидирует только сервер. При ошибке создания показывается уведомление,
// снимок не меняется.
func (v *UserListView) SubmitNew(ctx context.Context, name, age, email string) error {
	req := models.CreateUserRequest{
		Name:  name,
		Age:   models.Age(age),
		Email: email,
	}

	if _, err := v.svc.CreateUser(ctx, req); err != nil {
		v.log.Errorw("create user failed", "error", err, "email", email)
		v.notifier.Notify(Notice{Level: NoticeError, Message: serr.ErrCreateFailed.Error(), Err: err})
		return fmt.Errorf("%w: %w", serr.ErrCreateFailed, err)
	}
	v.log.Infow("user created", "email", email)

	_, err := v.Refresh(ctx)
	return err
}

// Submit отправляет текущее состояние формы (см. SetForm).
func (v *UserListView) Submit(ctx context.Context) error {
	f := v.Form()
	return v.SubmitNew(ctx, f.Name, f.Age, f.Email)
}

// RemoveUser удаляет пользователя и обновляет список.
//
// Если удаление не прошло (например, запись уже удалена), пользователю
// показывается уведомление "deletion failed, record may already be removed",
// а снимок остаётся прежним до следующего Refresh.
func (v *UserListView) RemoveUser(ctx context.Context, id string) error {
	if err := v.svc.DeleteUser(ctx, id); err != nil {
		v.log.Warnw("delete user failed", "error", err, "id", id)
		v.notifier.Notify(Notice{Level: NoticeError, Message: serr.ErrDeleteFailed.Error()})
		return fmt.Errorf("%w: %w", serr.ErrDeleteFailed, err)
	}
	v.log.Infow("user deleted", "id", id)

	_, err := v.Refresh(ctx)
	return err
}

// Users возвращает копию текущего снимка.
func (v *UserListView) Users() []models.UserRecord {
	return v.snapshot.List()
}

// Snapshot возвращает хранилище снимка.
func (v *UserListView) Snapshot() *memory.Snapshot {
	return v.snapshot
}

// State возвращает текущее состояние загрузки.
func (v *UserListView) State() State {
	return State(v.state.Load())
}

// SetForm заменяет состояние полей формы.
func (v *UserListView) SetForm(f Form) {
	v.formMu.Lock()
	defer v.formMu.Unlock()
	v.form = f
}

// Form возвращает текущее состояние полей формы.
func (v *UserListView) Form() Form {
	v.formMu.Lock()
	defer v.formMu.Unlock()
	return v.form
}
