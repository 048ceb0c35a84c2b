// Package shell runs the line-oriented command loop over a marina inventory.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/marina-ledger/internal/billing"
	"github.com/ngmaloney/marina-ledger/internal/codec"
	"github.com/ngmaloney/marina-ledger/internal/inventory"
	"github.com/ngmaloney/marina-ledger/internal/storage"
)

const menu = "(I)nventory, (A)dd, (R)emove, (P)ayment, (M)onth, e(X)it : "

// Shell reads single-letter commands and applies them to an inventory
type Shell struct {
	in      *bufio.Reader
	out     io.Writer
	inv     *inventory.Inventory
	backend storage.Backend

	title lipgloss.Style
	muted lipgloss.Style
}

// New creates a shell reading commands from in and writing to out. The
// inventory is saved to backend when the session ends.
func New(in io.Reader, out io.Writer, inv *inventory.Inventory, backend storage.Backend) *Shell {
	r := lipgloss.NewRenderer(out)
	return &Shell{
		in:      bufio.NewReader(in),
		out:     out,
		inv:     inv,
		backend: backend,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BFFF")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
	}
}

// Run processes commands until X or end of input, then saves the
// inventory. The returned error is non-nil only when reading input or
// saving failed.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, s.title.Render("Welcome to the Boat Management System"))

	for {
		fmt.Fprint(s.out, "\n"+menu)
		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return s.exit()
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}

		var choice rune
		for _, r := range line {
			choice = r
			break
		}

		switch choice {
		case 'i', 'I':
			s.printInventory()
		case 'a', 'A':
			s.add()
		case 'r', 'R':
			s.remove()
		case 'p', 'P':
			s.payment()
		case 'm', 'M':
			s.monthlyCharge()
		case 'x', 'X':
			return s.exit()
		default:
			fmt.Fprintln(s.out, "Invalid option")
		}
	}
}

// readLine returns the next input line without its line ending. A final
// line without a newline is returned before io.EOF.
func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// prompt prints label and reads the reply. ok is false when input ended.
func (s *Shell) prompt(label string) (reply string, ok bool) {
	fmt.Fprint(s.out, label)
	reply, err := s.readLine()
	if err != nil {
		fmt.Fprintln(s.out)
		return "", false
	}
	return reply, true
}

func (s *Shell) printInventory() {
	boats := s.inv.Sorted()
	if len(boats) == 0 {
		fmt.Fprintln(s.out, s.muted.Render("No boats in inventory."))
		return
	}
	for _, b := range boats {
		fmt.Fprintf(s.out, "%-15s %3d'  %-8s %s  Owes %s\n",
			b.Name, b.Length, b.Type(), b.Detail.Label(), billing.FormatUSD(b.Owed))
	}
}

func (s *Shell) add() {
	line, ok := s.prompt("Enter CSV boat string: ")
	if !ok {
		return
	}

	b, err := s.inv.AddLine(line)
	switch {
	case err == nil:
		slog.Info("inventory.added", "boat", b.Name)
		fmt.Fprintf(s.out, "Added %s.\n", b.Name)
	case errors.Is(err, codec.ErrUnknownBerthType):
		fmt.Fprintln(s.out, "Invalid type.")
	case errors.Is(err, inventory.ErrFull):
		fmt.Fprintf(s.out, "The marina is full (%d boats).\n", s.inv.Capacity())
	default:
		fmt.Fprintln(s.out, "Invalid CSV line.")
	}
}

func (s *Shell) remove() {
	name, ok := s.prompt("Enter boat name to remove: ")
	if !ok {
		return
	}

	if err := s.inv.Remove(name); err != nil {
		fmt.Fprintln(s.out, "No boat with that name")
		return
	}
	slog.Info("inventory.removed", "boat", name)
	fmt.Fprintf(s.out, "Removed %s.\n", name)
}

func (s *Shell) payment() {
	name, ok := s.prompt("Boat name: ")
	if !ok {
		return
	}
	amountText, ok := s.prompt("Amount: ")
	if !ok {
		return
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid amount.")
		return
	}

	err = billing.AcceptPayment(s.inv, name, amount)
	var overpaid *billing.OverpaymentError
	switch {
	case err == nil:
		b, _ := s.inv.Lookup(name)
		fmt.Fprintf(s.out, "Payment accepted. %s now owes %s.\n", b.Name, billing.FormatUSD(b.Owed))
	case errors.Is(err, inventory.ErrNotFound):
		fmt.Fprintln(s.out, "Boat not found")
	case errors.As(err, &overpaid):
		fmt.Fprintf(s.out, "That is more than the amount owed, %s\n", billing.FormatUSD(overpaid.Owed))
	default:
		fmt.Fprintln(s.out, "Invalid amount.")
	}
}

func (s *Shell) monthlyCharge() {
	total := billing.ApplyMonthlyCharge(s.inv)
	fmt.Fprintf(s.out, "Charged %s across %d boats.\n", billing.FormatUSD(total), s.inv.Len())
}

func (s *Shell) exit() error {
	path := s.backend.Path()
	if err := s.backend.Save(s.inv.Boats()); err != nil {
		slog.Error("storage.save_failed", "path", path, "error", err)
		fmt.Fprintf(s.out, "Could not save %s: %v\n", path, err)
		fmt.Fprintln(s.out, "Your changes were NOT saved.")
		return err
	}
	fmt.Fprintf(s.out, "Exiting and saving to %s\n", path)
	return nil
}
