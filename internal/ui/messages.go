package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/marina-ledger/internal/models"
	"github.com/ngmaloney/marina-ledger/internal/storage"
)

// savedMsg is sent when the inventory has been written to the backend
type savedMsg struct {
	err error
}

// saveInventory writes boats to the backend in the background
func saveInventory(backend storage.Backend, boats []models.Boat) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: backend.Save(boats)}
	}
}
