package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/nagaosooooooora-dev/roman-points/internal/model"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDay(s)
	if err != nil {
		t.Fatalf("parse day %q: %v", s, err)
	}
	return d
}

func txOn(t *testing.T, day string, amount int64) model.Transaction {
	t.Helper()
	return model.Transaction{Date: mustDay(t, day), Amount: amount, Kind: model.KindForAmount(amount)}
}

func deleted(tx model.Transaction) model.Transaction {
	tx.Deleted = true
	return tx
}

func TestSumAmounts(t *testing.T) {
	txs := []model.Transaction{
		txOn(t, "2025-03-01", 100),
		txOn(t, "2025-03-02", -30),
		txOn(t, "2025-03-03", -200),
	}
	if got := SumAmounts(txs); got != -130 {
		t.Fatalf("SumAmounts = %d, want -130", got)
	}
	if got := SumAmounts(nil); got != 0 {
		t.Fatalf("SumAmounts(nil) = %d, want 0", got)
	}
}

func TestEarnedOn_IgnoresSpendsAndDeleted(t *testing.T) {
	day := mustDay(t, "2025-03-05")
	txs := []model.Transaction{
		txOn(t, "2025-03-05", 100),
		txOn(t, "2025-03-05", 250),
		txOn(t, "2025-03-05", -400),          // spend
		deleted(txOn(t, "2025-03-05", 1000)), // tombstone
		txOn(t, "2025-03-06", 75),            // other day
	}
	if got := EarnedOn(txs, day); got != 350 {
		t.Fatalf("EarnedOn = %d, want 350", got)
	}
	if got := EarnedOn(nil, day); got != 0 {
		t.Fatalf("EarnedOn(nil) = %d, want 0", got)
	}
}

func TestEarnedInMonth(t *testing.T) {
	ref := mustDay(t, "2025-03-20")
	txs := []model.Transaction{
		txOn(t, "2025-03-01", 500),
		txOn(t, "2025-03-31", 700),
		txOn(t, "2025-03-15", -300),          // spend, ignored
		deleted(txOn(t, "2025-03-10", 9999)), // tombstone
		txOn(t, "2025-02-28", 400),           // previous month
		txOn(t, "2024-03-20", 400),           // same month, other year
	}
	if got := EarnedInMonth(txs, ref); got != 1200 {
		t.Fatalf("EarnedInMonth = %d, want 1200", got)
	}
}

func TestAverageDailyEarn_DividesByWindow(t *testing.T) {
	today := mustDay(t, "2025-03-10")
	txs := []model.Transaction{
		txOn(t, "2025-03-10", 100),
		txOn(t, "2025-03-04", 200),
		txOn(t, "2025-03-01", 999), // outside a 7-day window ending 03-10
		txOn(t, "2025-03-08", -50), // spend, ignored
	}
	got := AverageDailyEarn(txs, 7, today)
	want := 300.0 / 7
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("AverageDailyEarn = %v, want %v (zero days count toward the divisor)", got, want)
	}

	if got := AverageDailyEarn(nil, 7, today); got != 0 {
		t.Fatalf("AverageDailyEarn(nil) = %v, want 0", got)
	}
	if got := AverageDailyEarn(txs, 0, today); got != 0 {
		t.Fatalf("AverageDailyEarn lookback 0 = %v, want 0", got)
	}
}

func TestOpeningBalanceBefore_StrictlyBefore(t *testing.T) {
	start := mustDay(t, "2025-03-05")
	txs := []model.Transaction{
		txOn(t, "2025-03-01", 100),
		txOn(t, "2025-03-04", -40),
		txOn(t, "2025-03-05", 1000),         // on the boundary, excluded
		deleted(txOn(t, "2025-03-02", 500)), // tombstone
	}
	if got := OpeningBalanceBefore(txs, start); got != 60 {
		t.Fatalf("OpeningBalanceBefore = %d, want 60", got)
	}
}

func TestDailyNet_GapFilled(t *testing.T) {
	start, end := mustDay(t, "2025-03-01"), mustDay(t, "2025-03-05")
	txs := []model.Transaction{
		txOn(t, "2025-03-01", 100),
		txOn(t, "2025-03-01", -20),
		txOn(t, "2025-03-04", 50),
		txOn(t, "2025-02-28", 999), // outside range
		txOn(t, "2025-03-06", 999), // outside range
	}
	net := DailyNet(txs, start, end)
	if len(net) != 5 {
		t.Fatalf("DailyNet has %d days, want 5", len(net))
	}
	if net["2025-03-01"] != 80 {
		t.Fatalf("net[03-01] = %d, want 80", net["2025-03-01"])
	}
	if net["2025-03-02"] != 0 {
		t.Fatalf("net[03-02] = %d, want 0 (gap day)", net["2025-03-02"])
	}
	if net["2025-03-04"] != 50 {
		t.Fatalf("net[03-04] = %d, want 50", net["2025-03-04"])
	}
}

// Opening balance plus the range's daily nets must equal the balance at
// the end of the range.
func TestAggregationRoundTrip(t *testing.T) {
	start, end := mustDay(t, "2025-03-03"), mustDay(t, "2025-03-20")
	txs := []model.Transaction{
		txOn(t, "2025-02-01", 1000),
		txOn(t, "2025-03-02", -150),
		txOn(t, "2025-03-03", 300),
		txOn(t, "2025-03-11", -75),
		txOn(t, "2025-03-20", 42),
		txOn(t, "2025-03-21", 9999),          // after range
		deleted(txOn(t, "2025-03-10", 1234)), // tombstone
	}

	var netSum int64
	for _, v := range DailyNet(txs, start, end) {
		netSum += v
	}
	lhs := OpeningBalanceBefore(txs, start) + netSum
	rhs := BalanceOn(txs, end)
	if lhs != rhs {
		t.Fatalf("opening + nets = %d, balance at end = %d", lhs, rhs)
	}

	series := BalanceSeries(txs, start, end)
	if len(series) == 0 || series[len(series)-1] != rhs {
		t.Fatalf("BalanceSeries last = %v, want %d", series, rhs)
	}
}

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		day  string
		want bool
	}{
		{"2025-01-31", true},
		{"2025-01-30", false},
		{"2025-02-28", true},
		{"2024-02-28", false}, // leap year
		{"2024-02-29", true},
		{"2025-04-30", true},
		{"2025-12-31", true},
	}
	for _, c := range cases {
		if got := LastDayOfMonth(mustDay(t, c.day)); got != c.want {
			t.Fatalf("LastDayOfMonth(%s) = %v, want %v", c.day, got, c.want)
		}
	}
}

func TestAlive(t *testing.T) {
	txs := []model.Transaction{
		txOn(t, "2025-03-01", 100),
		deleted(txOn(t, "2025-03-02", 200)),
	}
	alive := Alive(txs)
	if len(alive) != 1 || alive[0].Amount != 100 {
		t.Fatalf("Alive = %v, want the single live row", alive)
	}
}
