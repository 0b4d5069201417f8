package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
	"github.com/nagaosooooooora-dev/roman-points/internal/model"
	"github.com/nagaosooooooora-dev/roman-points/internal/store"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type histState struct {
	cursor      int
	offset      int
	showDeleted bool
}

// visibleHistory returns the entries listed by the history tab, most
// recently recorded first.
func (a App) visibleHistory() []model.Transaction {
	var out []model.Transaction
	for _, tx := range a.txs {
		if tx.Deleted && !a.hist.showDeleted {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (a App) updateHistoryKeys(key string) (tea.Model, tea.Cmd, bool) {
	rows := a.visibleHistory()
	switch key {
	case "j", "down":
		if a.hist.cursor < len(rows)-1 {
			a.hist.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.hist.cursor > 0 {
			a.hist.cursor--
		}
		return a, nil, true
	case "g":
		a.hist.cursor = 0
		a.hist.offset = 0
		return a, nil, true
	case "G":
		a.hist.cursor = len(rows) - 1
		if a.hist.cursor < 0 {
			a.hist.cursor = 0
		}
		return a, nil, true
	case "D":
		a.hist.showDeleted = !a.hist.showDeleted
		a.hist.cursor = 0
		a.hist.offset = 0
		return a, nil, true
	case "d":
		if a.hist.cursor < len(rows) && !rows[a.hist.cursor].Deleted {
			return a, removeTxCmd(a.dbPath, rows[a.hist.cursor].ID), true
		}
		return a, nil, true
	case "u":
		if a.hist.cursor < len(rows) && rows[a.hist.cursor].Deleted {
			return a, restoreTxCmd(a.dbPath, rows[a.hist.cursor].ID), true
		}
		return a, nil, true
	}
	return a, nil, false
}

// removeTxCmd tombstones an entry and reloads.
func removeTxCmd(dbPath string, id int64) tea.Cmd {
	return func() tea.Msg {
		status := fmt.Sprintf("removed entry #%d", id)
		if err := mutateTx(dbPath, id, func(tx *model.Transaction) {
			tx.Deleted = true
			tx.DeletedAt = time.Now()
		}); err != nil {
			status = fmt.Sprintf("remove failed: %v", err)
		}
		return WriteDoneMsg{Status: status, Data: loadData(dbPath)}
	}
}

// restoreTxCmd clears an entry's tombstone and reloads.
func restoreTxCmd(dbPath string, id int64) tea.Cmd {
	return func() tea.Msg {
		status := fmt.Sprintf("restored entry #%d", id)
		if err := mutateTx(dbPath, id, func(tx *model.Transaction) {
			tx.Deleted = false
			tx.DeletedAt = time.Time{}
		}); err != nil {
			status = fmt.Sprintf("restore failed: %v", err)
		}
		return WriteDoneMsg{Status: status, Data: loadData(dbPath)}
	}
}

func mutateTx(dbPath string, id int64, fn func(*model.Transaction)) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	tx, err := st.Transaction(id)
	if err != nil {
		return err
	}
	fn(&tx)
	return st.PutTransaction(tx)
}

func (a App) renderHistoryTab(cw, contentH int) string {
	t := theme.Active
	rows := a.visibleHistory()

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	selStyle := lipgloss.NewStyle().Background(t.SurfaceHover)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	earnStyle := lipgloss.NewStyle().Foreground(t.Green)
	spendStyle := lipgloss.NewStyle().Foreground(t.Red)

	if len(rows) == 0 {
		return dimStyle.Render("\n  no entries yet")
	}

	// Keep the cursor inside the visible page.
	pageSize := contentH - 3
	if pageSize < 1 {
		pageSize = 1
	}
	offset := a.hist.offset
	if a.hist.cursor < offset {
		offset = a.hist.cursor
	}
	if a.hist.cursor >= offset+pageSize {
		offset = a.hist.cursor - pageSize + 1
	}

	nameW := cw - 36
	if nameW < 12 {
		nameW = 12
	}

	out := headerStyle.Render(fmt.Sprintf(" %-5s %-11s %-*s %10s", "#", "Date", nameW, "Entry", "Amount")) + "\n"
	for i := offset; i < len(rows) && i < offset+pageSize; i++ {
		tx := rows[i]
		name := tx.DisplayName()
		if tx.Memo != "" && tx.SourceType != model.SourceManual {
			name += " / " + tx.Memo
		} else if tx.Memo != "" && tx.SourceType == model.SourceManual {
			name = tx.Memo
		}
		if tx.Deleted {
			name += " (removed)"
		}

		amountStyle := earnStyle
		if tx.Amount < 0 {
			amountStyle = spendStyle
		}
		if tx.Deleted {
			amountStyle = dimStyle
		}

		line := fmt.Sprintf(" %-5d %-11s %-*s ", tx.ID, ledger.DayKey(tx.Date), nameW, truncStr(name, nameW)) +
			amountStyle.Render(fmt.Sprintf("%10s", cli.FormatSigned(tx.Amount)))
		if i == a.hist.cursor {
			line = selStyle.Render(line)
		}
		out += line + "\n"
	}

	hint := " j/k move · d remove · u restore · D toggle removed"
	out += dimStyle.Render(hint)
	return out
}
