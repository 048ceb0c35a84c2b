package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/marina-ledger/internal/billing"
	"github.com/ngmaloney/marina-ledger/internal/models"
)

// boatItem wraps a Boat for use in a list
type boatItem struct {
	boat models.Boat
}

// FilterValue implements list.Item
func (b boatItem) FilterValue() string {
	return b.boat.Name
}

// Title implements list.DefaultItem
func (b boatItem) Title() string {
	return b.boat.Name
}

// Description implements list.DefaultItem
func (b boatItem) Description() string {
	return fmt.Sprintf("%d' %s, %s • owes %s",
		b.boat.Length, b.boat.Type(), b.boat.Detail.Label(), billing.FormatUSD(b.boat.Owed))
}

func boatItems(boats []models.Boat) []list.Item {
	items := make([]list.Item, len(boats))
	for i, boat := range boats {
		items[i] = boatItem{boat: boat}
	}
	return items
}

// createBoatList creates a list.Model from boats already in display order
func createBoatList(boats []models.Boat, width, height int) list.Model {
	l := list.New(boatItems(boats), list.NewDefaultDelegate(), width, height)
	l.Title = "Berth Inventory"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("boat", "boats")
	// x saves and exits; q and esc must not quit without saving
	l.KeyMap.Quit.SetEnabled(false)

	return l
}
