package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/marina-ledger/internal/billing"
	"github.com/ngmaloney/marina-ledger/internal/codec"
	"github.com/ngmaloney/marina-ledger/internal/inventory"
	"github.com/ngmaloney/marina-ledger/internal/storage"
)

// AppState represents the current state of the application
type AppState int

const (
	StateInventory AppState = iota // Browse the sorted inventory
	StatePrompt                    // Collect input for a command
	StateSaving                    // Writing the inventory before exit
	StateError                     // Save failed
)

// promptKind identifies which command the text input belongs to
type promptKind int

const (
	promptAdd promptKind = iota
	promptRemove
	promptPaymentName
	promptPaymentAmount
)

// Model represents the application's state
type Model struct {
	state  AppState
	prompt promptKind
	width  int
	height int
	err    error

	inv     *inventory.Inventory
	backend storage.Backend

	boatList list.Model
	input    textinput.Model
	spinner  spinner.Model

	// Result of the last command
	status    string
	statusErr bool

	payee    string // Boat selected for a payment in progress
	saved    bool
	quitting bool
}

// NewModel creates a new application model over inv, saving to backend on exit
func NewModel(inv *inventory.Inventory, backend storage.Backend) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		state:    StateInventory,
		inv:      inv,
		backend:  backend,
		boatList: createBoatList(inv.Sorted(), 0, 0),
		input:    ti,
		spinner:  s,
	}
}

// Saved reports whether the inventory was written before the program ended
func (m Model) Saved() bool {
	return m.saved
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.boatList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			slog.Error("storage.save_failed", "path", m.backend.Path(), "error", msg.err)
			m.err = msg.err
			m.state = StateError
			return m, nil
		}
		m.saved = true
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.state != StateSaving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// ctrl+c leaves without saving
		if keyMsg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.state {
		case StateInventory:
			return m.handleInventoryKey(keyMsg)
		case StatePrompt:
			return m.handlePromptKey(keyMsg)
		case StateError:
			// Any key returns to the inventory so the user can retry
			m.state = StateInventory
			m.err = nil
			m.setStatus("Changes are not saved yet. Press X to retry.", true)
			return m, nil
		}
	}

	// Cursor blink and other input messages
	if m.state == StatePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleInventoryKey handles command keys in the inventory view
func (m Model) handleInventoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "i":
		m.setStatus("", false)
		return m, m.refresh()
	case "a":
		return m.openPrompt(promptAdd, "name,length,type,detail,owed")
	case "r":
		return m.openPrompt(promptRemove, "Boat name")
	case "p":
		return m.openPrompt(promptPaymentName, "Boat name")
	case "m":
		total := billing.ApplyMonthlyCharge(m.inv)
		m.setStatus(fmt.Sprintf("Charged %s across %d boats.", billing.FormatUSD(total), m.inv.Len()), false)
		return m, m.refresh()
	case "x":
		m.state = StateSaving
		return m, tea.Batch(m.spinner.Tick, saveInventory(m.backend, m.inv.Boats()))
	}

	var cmd tea.Cmd
	m.boatList, cmd = m.boatList.Update(msg)
	return m, cmd
}

// handlePromptKey handles text entry for the active prompt
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		return m.submitPrompt(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) openPrompt(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	m.state = StatePrompt
	m.prompt = kind
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	return m, m.input.Focus()
}

func (m *Model) closePrompt() {
	m.state = StateInventory
	m.payee = ""
	m.input.Blur()
	m.input.SetValue("")
}

// submitPrompt runs the command for the active prompt with the entered value
func (m Model) submitPrompt(value string) (tea.Model, tea.Cmd) {
	if value == "" {
		return m, nil
	}

	switch m.prompt {
	case promptAdd:
		b, err := m.inv.AddLine(value)
		switch {
		case err == nil:
			m.setStatus(fmt.Sprintf("Added %s.", b.Name), false)
		case errors.Is(err, codec.ErrUnknownBerthType):
			m.setStatus("Invalid type.", true)
		case errors.Is(err, inventory.ErrFull):
			m.setStatus(fmt.Sprintf("The marina is full (%d boats).", m.inv.Capacity()), true)
		default:
			m.setStatus("Invalid CSV line.", true)
		}

	case promptRemove:
		if err := m.inv.Remove(value); err != nil {
			m.setStatus("No boat with that name", true)
		} else {
			m.setStatus(fmt.Sprintf("Removed %s.", value), false)
		}

	case promptPaymentName:
		b, err := m.inv.Lookup(value)
		if err != nil {
			m.closePrompt()
			m.setStatus("Boat not found", true)
			return m, nil
		}
		payee := b.Name
		model, cmd := m.openPrompt(promptPaymentAmount, "Amount owed "+billing.FormatUSD(b.Owed))
		next := model.(Model)
		next.payee = payee
		return next, cmd

	case promptPaymentAmount:
		m.pay(value)
	}

	m.closePrompt()
	return m, m.refresh()
}

func (m *Model) pay(amountText string) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
	if err != nil {
		m.setStatus("Invalid amount.", true)
		return
	}

	err = billing.AcceptPayment(m.inv, m.payee, amount)
	var overpaid *billing.OverpaymentError
	switch {
	case err == nil:
		b, _ := m.inv.Lookup(m.payee)
		m.setStatus(fmt.Sprintf("Payment accepted. %s now owes %s.", b.Name, billing.FormatUSD(b.Owed)), false)
	case errors.Is(err, inventory.ErrNotFound):
		m.setStatus("Boat not found", true)
	case errors.As(err, &overpaid):
		m.setStatus(fmt.Sprintf("That is more than the amount owed, %s", billing.FormatUSD(overpaid.Owed)), true)
	default:
		m.setStatus("Invalid amount.", true)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// refresh reloads the list from the inventory in sorted order
func (m *Model) refresh() tea.Cmd {
	return m.boatList.SetItems(boatItems(m.inv.Sorted()))
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateInventory:
		return m.viewInventory()
	case StatePrompt:
		return m.viewPrompt()
	case StateSaving:
		return m.viewSaving()
	case StateError:
		return m.viewError()
	}

	return ""
}

func (m Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render("✗ " + m.status)
	}
	return successStyle.Render("✓ " + m.status)
}

// viewInventory renders the boat list
func (m Model) viewInventory() string {
	var sections []string
	sections = append(sections, titleStyle.Render("⚓ Boat Management System"))
	sections = append(sections, mutedStyle.Render(m.backend.Path()))
	sections = append(sections, "")

	if m.inv.Len() == 0 {
		sections = append(sections, mutedStyle.Render("No boats in inventory."))
	} else {
		sections = append(sections, m.boatList.View())
	}

	if s := m.statusLine(); s != "" {
		sections = append(sections, "", s)
	}

	help := helpStyle.Render("A: Add • R: Remove • P: Payment • M: Monthly charge • X: Save & exit • Ctrl+C: Quit without saving")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewPrompt renders the input box for the active command
func (m Model) viewPrompt() string {
	var label string
	switch m.prompt {
	case promptAdd:
		label = "Enter CSV boat string"
	case promptRemove:
		label = "Enter boat name to remove"
	case promptPaymentName:
		label = "Boat name"
	case promptPaymentAmount:
		label = fmt.Sprintf("Payment amount for %s", m.payee)
	}

	sections := []string{
		titleStyle.Render("⚓ Boat Management System"),
		"",
		labelStyle.Render(label),
		inputBoxStyle.Render(m.input.View()),
		helpStyle.Render("Enter: Submit • Esc: Cancel"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewSaving renders the save progress
func (m Model) viewSaving() string {
	return fmt.Sprintf("%s Saving to %s...", m.spinner.View(), m.backend.Path())
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Could not save " + m.backend.Path())

	var errorMsg string
	if m.err != nil {
		errorMsg = m.err.Error()
	} else {
		errorMsg = "An unknown error occurred"
	}

	warning := mutedStyle.Render("Your changes were NOT saved.")
	help := helpStyle.Render("Press any key to return to the inventory • Ctrl+C: Quit without saving")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, warning, help)
}
