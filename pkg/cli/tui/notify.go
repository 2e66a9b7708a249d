package tui

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastKind selects the color and icon of a notification
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// Toast is a transient, non-blocking notification
type Toast struct {
	ID    int
	Kind  ToastKind
	Title string
	Body  string
}

// toastExpiredMsg removes the toast with ID once its duration has passed
type toastExpiredMsg struct {
	ID int
}

// toastSeq numbers toasts across screens, so an expiry delivered to the
// wrong screen never removes an unrelated toast.
var toastSeq atomic.Int64

// notifier keeps the visible toasts of one screen, newest last.
type notifier struct {
	toasts []Toast
	ttl    time.Duration
}

func newNotifier(ttl time.Duration) notifier {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return notifier{ttl: ttl}
}

// push shows a toast and returns the command that expires it
func (n *notifier) push(kind ToastKind, title, body string) tea.Cmd {
	id := int(toastSeq.Add(1))
	n.toasts = append(n.toasts, Toast{ID: id, Kind: kind, Title: title, Body: body})
	return tea.Tick(n.ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{ID: id}
	})
}

func (n *notifier) success(title string) tea.Cmd { return n.push(ToastSuccess, title, "") }

func (n *notifier) failure(err error) tea.Cmd {
	return n.push(ToastError, userFacingError(err), "")
}

// reject reports input that was refused before any request was sent
func (n *notifier) reject(message string) tea.Cmd { return n.push(ToastError, message, "") }

// update handles expiry messages. It reports whether msg was consumed.
func (n *notifier) update(msg tea.Msg) bool {
	expired, ok := msg.(toastExpiredMsg)
	if !ok {
		return false
	}
	for i, t := range n.toasts {
		if t.ID == expired.ID {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			break
		}
	}
	return true
}

// Toasts returns the visible toasts, oldest first.
func (n *notifier) Toasts() []Toast {
	return n.toasts
}

func (n *notifier) View() string {
	if len(n.toasts) == 0 {
		return ""
	}

	boxes := make([]string, 0, len(n.toasts))
	for _, t := range n.toasts {
		var color lipgloss.Color
		var head string
		switch t.Kind {
		case ToastSuccess:
			color, head = colorSuccess, renderSuccess(t.Title)
		case ToastError:
			color, head = colorError, renderError(t.Title)
		default:
			color, head = colorInfo, infoStyle.Render(t.Title)
		}

		lines := []string{head}
		if t.Body != "" {
			lines = append(lines, mutedStyle.Render(t.Body))
		}
		boxes = append(boxes, toastStyle.BorderForeground(color).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}
