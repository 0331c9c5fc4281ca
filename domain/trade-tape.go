package domain

import (
	"sync"

	"github.com/gammazero/deque"
)

// TradeTape keeps the most recent trades for the selected instrument in a
// bounded buffer. Each poll hands it the newest-first listing from the
// trades endpoint; trades already seen are skipped by id.
type TradeTape struct {
	mu       sync.Mutex
	buf      deque.Deque[Trade]
	capacity int
	symbol   string
	lastID   int64
}

func NewTradeTape(capacity int) *TradeTape {
	return &TradeTape{capacity: capacity}
}

// Append merges a newest-first listing into the tape, dropping the oldest
// entries past capacity. Trades for another symbol are ignored, so a stale
// poll cycle finishing after an instrument switch cannot pollute the tape.
func (t *TradeTape) Append(trades []Trade) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// walk oldest-to-newest so the front of the deque stays the newest trade
	for i := len(trades) - 1; i >= 0; i-- {
		trade := trades[i]
		if t.symbol != "" && trade.InstrumentSymbol != t.symbol {
			continue
		}
		if trade.ID <= t.lastID {
			continue
		}

		t.buf.PushFront(trade)
		t.lastID = trade.ID

		if t.buf.Len() > t.capacity {
			t.buf.PopBack()
		}
	}
}

// Reset clears the tape and pins it to a new instrument symbol.
func (t *TradeTape) Reset(symbol string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf.Clear()
	t.symbol = symbol
	t.lastID = 0
}

// Recent returns the buffered trades, newest first.
func (t *TradeTape) Recent() []Trade {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Trade, t.buf.Len())
	for i := 0; i < t.buf.Len(); i++ {
		out[i] = t.buf.At(i)
	}
	return out
}

func (t *TradeTape) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Len()
}
