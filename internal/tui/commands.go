package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
	"github.com/Ratio1/grocery_manager_go/pkg/inventory"
)

type loadedMsg struct{ err error }

type savedMsg struct {
	editing bool
	err     error
}

type deletedMsg struct {
	id  grocery.ID
	err error
}

func loadCmd(ctx context.Context, vm *inventory.ViewModel) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: vm.LoadAll(ctx)}
	}
}

func submitCmd(ctx context.Context, vm *inventory.ViewModel, editing bool) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{editing: editing, err: vm.SubmitDraft(ctx)}
	}
}

func deleteCmd(ctx context.Context, vm *inventory.ViewModel, id grocery.ID) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: vm.DeleteItem(ctx, id)}
	}
}
