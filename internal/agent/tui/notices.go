package tui

import (
	"sync"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/view"
)

// NoticeLog — потокобезопасный журнал уведомлений для экрана.
//
// Реализует view.Notifier: UserListView пишет в него из tea.Cmd (другая горутина),
// а Model читает последние записи при отрисовке.
type NoticeLog struct {
	mu      sync.Mutex
	notices []view.Notice
	limit   int
}

// NewNoticeLog создаёт журнал, который хранит не больше limit последних уведомлений.
func NewNoticeLog(limit int) *NoticeLog {
	if limit <= 0 {
		limit = 3
	}
	return &NoticeLog{limit: limit}
}

// Notify добавляет уведомление, вытесняя самые старые.
func (l *NoticeLog) Notify(n view.Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.notices = append(l.notices, n)
	if len(l.notices) > l.limit {
		l.notices = l.notices[len(l.notices)-l.limit:]
	}
}

// Recent возвращает копию сохранённых уведомлений, от старых к новым.
func (l *NoticeLog) Recent() []view.Notice {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]view.Notice, len(l.notices))
	copy(out, l.notices)
	return out
}

// Clear очищает журнал.
func (l *NoticeLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = nil
}
