// Package tui реализует терминальный экран "Cadastro de Usuários" на Bubble Tea.
//
// Экран состоит из формы (Nome, Idade, Email, кнопка Cadastrar) и списка карточек
// пользователей. Все удалённые операции выполняются через view.UserListView
// внутри tea.Cmd, поэтому Update никогда не блокируется на сети.
//
// Управление:
//   - Tab / Shift+Tab — переход между полями, кнопкой и списком;
//   - ввод текста — редактирование текущего поля, Backspace — удалить символ;
//   - Enter на форме — отправить;
//   - стрелки в списке — выбор карточки, d — удалить, r — обновить;
//   - q в списке, Esc или Ctrl+C — выход.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/view"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/models"
)

// Focus — элемент экрана, на котором стоит курсор.
type Focus int

const (
	FocusName Focus = iota
	FocusAge
	FocusEmail
	FocusSubmit
	FocusList

	focusCount
)

// сообщения от tea.Cmd
type (
	usersLoadedMsg struct{ err error }
	userCreatedMsg struct{ err error }
	userDeletedMsg struct {
		id  string
		err error
	}
)

// Model — модель экрана для Bubble Tea.
type Model struct {
	ctx     context.Context
	view    *view.UserListView
	notices *NoticeLog

	focus   Focus
	cursor  int
	users   []models.UserRecord
	pending int
}

// New создаёт модель экрана.
//
// notices должен быть тем же журналом, что передан в view.WithNotifier,
// иначе уведомления не появятся на экране.
func New(ctx context.Context, v *view.UserListView, notices *NoticeLog) Model {
	if notices == nil {
		notices = NewNoticeLog(3)
	}
	return Model{
		ctx:     ctx,
		view:    v,
		notices: notices,
	}
}

// Init запускает первичную загрузку списка (аналог монтирования экрана).
func (m Model) Init() tea.Cmd {
	v, ctx := m.view, m.ctx
	return func() tea.Msg {
		return usersLoadedMsg{err: v.Mount(ctx)}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	v, ctx := m.view, m.ctx
	return func() tea.Msg {
		_, err := v.Refresh(ctx)
		return usersLoadedMsg{err: err}
	}
}

func (m Model) submitCmd() tea.Cmd {
	v, ctx := m.view, m.ctx
	return func() tea.Msg {
		return userCreatedMsg{err: v.Submit(ctx)}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	v, ctx := m.view, m.ctx
	return func() tea.Msg {
		return userDeletedMsg{id: id, err: v.RemoveUser(ctx, id)}
	}
}

// Update обрабатывает клавиши и результаты удалённых операций.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case usersLoadedMsg, userCreatedMsg, userDeletedMsg:
		if m.pending > 0 {
			m.pending--
		}
		// ошибки уже попали в журнал уведомлений через Notifier
		m.users = m.view.Users()
		m.clampCursor()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyTab:
		m.focus = (m.focus + 1) % focusCount
		return m, nil

	case tea.KeyShiftTab:
		m.focus = (m.focus + focusCount - 1) % focusCount
		return m, nil

	case tea.KeyUp:
		if m.focus == FocusList && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.focus == FocusList && m.cursor < len(m.users)-1 {
			m.cursor++
		}
		return m, nil

	case tea.KeyEnter:
		if m.focus == FocusList {
			return m, nil
		}
		m.pending++
		return m, m.submitCmd()

	case tea.KeyBackspace:
		m.editField(func(s string) string {
			r := []rune(s)
			if len(r) == 0 {
				return s
			}
			return string(r[:len(r)-1])
		})
		return m, nil

	case tea.KeySpace:
		m.editField(func(s string) string { return s + " " })
		return m, nil

	case tea.KeyRunes:
		if m.isField() {
			runes := string(msg.Runes)
			m.editField(func(s string) string { return s + runes })
			return m, nil
		}
		if m.focus != FocusList {
			return m, nil
		}
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit
		case "r":
			m.pending++
			return m, m.refreshCmd()
		case "d":
			if len(m.users) == 0 {
				return m, nil
			}
			m.pending++
			return m, m.deleteCmd(m.users[m.cursor].ID.String())
		}
	}
	return m, nil
}

func (m Model) isField() bool {
	return m.focus == FocusName || m.focus == FocusAge || m.focus == FocusEmail
}

// editField применяет fn к текущему полю формы.
func (m Model) editField(fn func(string) string) {
	if !m.isField() {
		return
	}
	f := m.view.Form()
	switch m.focus {
	case FocusName:
		f.Name = fn(f.Name)
	case FocusAge:
		f.Age = fn(f.Age)
	case FocusEmail:
		f.Email = fn(f.Email)
	}
	m.view.SetForm(f)
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.users) {
		m.cursor = len(m.users) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Focus возвращает текущий элемент под курсором.
func (m Model) Focus() Focus { return m.focus }

// Cursor возвращает индекс выбранной карточки.
func (m Model) Cursor() int { return m.cursor }

// Users возвращает пользователей, показанных на экране.
func (m Model) Users() []models.UserRecord { return m.users }

// Busy сообщает, есть ли незавершённые удалённые операции.
func (m Model) Busy() bool { return m.pending > 0 }

// View отрисовывает экран.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString("Cadastro de Usuários\n\n")

	f := m.view.Form()
	b.WriteString(m.fieldLine(FocusName, "Nome", f.Name))
	b.WriteString(m.fieldLine(FocusAge, "Idade", f.Age))
	b.WriteString(m.fieldLine(FocusEmail, "Email", f.Email))

	if m.focus == FocusSubmit {
		b.WriteString("> [ Cadastrar ]\n")
	} else {
		b.WriteString("  [ Cadastrar ]\n")
	}

	for _, n := range m.notices.Recent() {
		prefix := "i"
		if n.Level == view.NoticeError {
			prefix = "!"
		}
		fmt.Fprintf(&b, "%s %s\n", prefix, n.String())
	}

	if m.Busy() {
		b.WriteString("\ncarregando...\n")
	}

	b.WriteString("\nLista de Usuários\n")
	if len(m.users) == 0 {
		b.WriteString("  (vazia)\n")
	}
	for i, u := range m.users {
		marker := "  "
		if m.focus == FocusList && i == m.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%sNome: %s | Idade: %s | Email: %s\n", marker, u.Name, u.Age, u.Email)
	}

	b.WriteString("\ntab: campo  enter: cadastrar  d: deletar  r: atualizar  q: sair\n")
	return b.String()
}

func (m Model) fieldLine(f Focus, label, value string) string {
	marker := "  "
	if m.focus == f {
		marker = "> "
	}
	return fmt.Sprintf("%s%-6s %s\n", marker, label+":", value)
}

// Run запускает экран и блокируется до выхода пользователя.
func Run(ctx context.Context, v *view.UserListView, notices *NoticeLog, opts ...tea.ProgramOption) error {
	opts = append(opts, tea.WithContext(ctx))
	_, err := tea.NewProgram(New(ctx, v, notices), opts...).Run()
	return err
}
