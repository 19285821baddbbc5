package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

// Messages for communication between views
type StatusMsg string

type SwitchViewMsg struct {
	view  sessionState
	logID string // log to show or edit; empty starts a new brew
}

type logsLoadedMsg struct {
	logs []*models.Log
	err  error
}

type logLoadedMsg struct {
	log *models.Log
	err error
}

// latestLoadedMsg carries the most recent brew, or nil when the journal is
// empty.
type latestLoadedMsg struct {
	log *models.Log
	err error
}

type logSavedMsg struct {
	log     *models.Log
	created bool
	err     error
}

type logDeletedMsg struct {
	id  string
	err error
}

func switchTo(view sessionState, logID string) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{view: view, logID: logID}
	}
}

func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(msg)
	}
}

func loadLogsCmd(ctx context.Context, store journal.Store, q journal.Query) tea.Cmd {
	return func() tea.Msg {
		logs, err := store.List(ctx, q)
		return logsLoadedMsg{logs: logs, err: err}
	}
}

func loadLogCmd(ctx context.Context, store journal.Store, id string) tea.Cmd {
	return func() tea.Msg {
		l, err := store.Get(ctx, id)
		return logLoadedMsg{log: l, err: err}
	}
}

func loadLatestCmd(ctx context.Context, store journal.Store) tea.Cmd {
	return func() tea.Msg {
		l, err := store.Latest(ctx)
		if errors.Is(err, journal.ErrNotFound) {
			return latestLoadedMsg{}
		}
		return latestLoadedMsg{log: l, err: err}
	}
}

func saveLogCmd(ctx context.Context, store journal.Store, l *models.Log) tea.Cmd {
	return func() tea.Msg {
		created := l.ID == ""
		var err error
		if created {
			err = store.Save(ctx, l)
		} else {
			err = store.Update(ctx, l)
		}
		return logSavedMsg{log: l, created: created, err: err}
	}
}

func deleteLogCmd(ctx context.Context, store journal.Store, id string) tea.Cmd {
	return func() tea.Msg {
		return logDeletedMsg{id: id, err: store.Delete(ctx, id)}
	}
}
