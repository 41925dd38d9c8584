package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ratio1/grocery_manager_go/pkg/inventory"
)

// Run shows the inventory screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, vm *inventory.ViewModel, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, vm), opts...).Run()
	return err
}
