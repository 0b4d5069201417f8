package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/store"
)

// Export writes the full ledger — tombstones included — as a version-1
// backup payload.
func Export(st *store.Store, w io.Writer, now time.Time) error {
	txs, err := st.Transactions()
	if err != nil {
		return fmt.Errorf("reading transactions: %w", err)
	}
	actions, err := st.Actions()
	if err != nil {
		return fmt.Errorf("reading actions: %w", err)
	}
	options, err := st.ActionOptions()
	if err != nil {
		return fmt.Errorf("reading action options: %w", err)
	}
	goals, err := st.Goals()
	if err != nil {
		return fmt.Errorf("reading wishlist: %w", err)
	}

	p := Payload{
		Version:    Version,
		ExportedAt: now.UTC().Format(time.RFC3339),
	}
	for _, a := range actions {
		p.Actions = append(p.Actions, actionRecord(a))
	}
	for _, t := range txs {
		p.Transactions = append(p.Transactions, transactionRecord(t))
	}
	for _, o := range options {
		p.ActionOptions = append(p.ActionOptions, optionRecord(o))
	}
	for _, g := range goals {
		p.Wishlist = append(p.Wishlist, goalRecord(g))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// Counts reports how many records a restore wrote per collection.
type Counts struct {
	Actions       int
	Transactions  int
	ActionOptions int
	Wishlist      int
}

// Import restores a backup payload into the store. The payload is
// parsed completely before anything is cleared, so a malformed file
// never touches storage. The restore itself is clear-then-put per
// collection and is NOT one atomic transaction: if a put fails midway,
// that collection is left empty or partially populated with no
// rollback. Known limitation.
func Import(st *store.Store, r io.Reader, now time.Time) (Counts, error) {
	var counts Counts

	data, err := io.ReadAll(r)
	if err != nil {
		return counts, fmt.Errorf("reading backup: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return counts, fmt.Errorf("parsing backup: %w", err)
	}
	if p.Version != Version {
		return counts, fmt.Errorf("unsupported backup version %d", p.Version)
	}

	if err := st.Clear(store.CollectionActions); err != nil {
		return counts, fmt.Errorf("clearing actions: %w", err)
	}
	for _, rec := range p.Actions {
		a := NormalizeAction(rec, now)
		if a.ID == 0 {
			_, err = st.AddAction(a)
		} else {
			err = st.PutAction(a)
		}
		if err != nil {
			return counts, fmt.Errorf("restoring action %d: %w", rec.ID, err)
		}
		counts.Actions++
	}

	if err := st.Clear(store.CollectionTransactions); err != nil {
		return counts, fmt.Errorf("clearing transactions: %w", err)
	}
	for _, rec := range p.Transactions {
		t := NormalizeTransaction(rec, now)
		if t.ID == 0 {
			_, err = st.AddTransaction(t)
		} else {
			err = st.PutTransaction(t)
		}
		if err != nil {
			return counts, fmt.Errorf("restoring transaction %d: %w", rec.ID, err)
		}
		counts.Transactions++
	}

	if err := st.Clear(store.CollectionActionOptions); err != nil {
		return counts, fmt.Errorf("clearing action options: %w", err)
	}
	for _, rec := range p.ActionOptions {
		o := NormalizeOption(rec)
		if o.ID == 0 {
			_, err = st.AddActionOption(o)
		} else {
			err = st.PutActionOption(o)
		}
		if err != nil {
			return counts, fmt.Errorf("restoring action option %d: %w", rec.ID, err)
		}
		counts.ActionOptions++
	}

	if err := st.Clear(store.CollectionWishlist); err != nil {
		return counts, fmt.Errorf("clearing wishlist: %w", err)
	}
	for _, rec := range p.Wishlist {
		g := NormalizeGoal(rec, now)
		if g.ID == 0 {
			_, err = st.AddGoal(g)
		} else {
			err = st.PutGoal(g)
		}
		if err != nil {
			return counts, fmt.Errorf("restoring goal %d: %w", rec.ID, err)
		}
		counts.Wishlist++
	}

	return counts, nil
}
