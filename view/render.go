package view

import (
	"fmt"
	"strings"

	"github.com/finwatch/go-orderbook-dashboard/domain"
	"github.com/finwatch/go-orderbook-dashboard/helpers"
	"github.com/finwatch/go-orderbook-dashboard/usecase"
)

// bookDepth is how many levels per side the book view shows.
const bookDepth = 10

// RenderOrderBook renders the book view as plain text.
func RenderOrderBook(snapshot *domain.OrderBookSnapshot) string {
	b := strings.Builder{}

	fmt.Fprintf(&b, "%s - %s\n", snapshot.Instrument.Symbol, snapshot.Instrument.Name)

	if snapshot.Spread != nil {
		s := snapshot.Spread
		fmt.Fprintf(&b, "Best Bid: $%s  Best Ask: $%s  Spread: $%s (%.3f%%)\n",
			helpers.FormatPrice(s.BestBid),
			helpers.FormatPrice(s.BestAsk),
			helpers.FormatPrice(s.Absolute),
			s.Percentage)
	}

	b.WriteString("\nBids (Buy Orders)\n")
	renderSide(&b, domain.TopLevels(snapshot.Bids, bookDepth))

	b.WriteString("\nAsks (Sell Orders)\n")
	renderSide(&b, domain.TopLevels(snapshot.Asks, bookDepth))

	return b.String()
}

func renderSide(b *strings.Builder, levels []domain.PriceLevel) {
	fmt.Fprintf(b, "%-12s %-12s %s\n", "PRICE", "QUANTITY", "ORDERS")
	for _, level := range levels {
		fmt.Fprintf(b, "$%-11s %-12s %d\n",
			helpers.FormatPrice(level.Price),
			helpers.FormatNumber(level.Quantity),
			level.OrderCount)
	}
}

// RenderHistory renders one page of the history view. Loading, error and
// empty are three distinct displays.
func RenderHistory(state domain.HistoryState) string {
	if state.Loading {
		return "Loading orders...\n"
	}
	if state.Err != nil {
		return fmt.Sprintf("Error: %s\n", state.Err)
	}
	if len(state.Orders) == 0 {
		return "No orders found for the selected filters.\n"
	}

	b := strings.Builder{}
	fmt.Fprintf(&b, "%-8s %-5s %-12s %-12s %-12s %-10s %s\n",
		"SYMBOL", "TYPE", "PRICE", "ORIG QTY", "FILLED QTY", "STATUS", "CREATED")

	for _, order := range state.Orders {
		fmt.Fprintf(&b, "%-8s %-5s $%-11s %-12s %-12s %-10s %s\n",
			order.InstrumentSymbol,
			order.OrderType,
			helpers.FormatPrice(order.Price),
			helpers.FormatNumber(order.OriginalQuantity),
			helpers.FormatNumber(order.FilledQuantity),
			order.Status,
			helpers.FormatDateTime(order.CreatedAt))
	}

	fmt.Fprintf(&b, "\nPage %d of %d\n", state.Page, state.TotalPages)
	return b.String()
}

// RenderStats renders the aggregate cards, the status distribution bars and
// the per-instrument breakdown.
func RenderStats(bundle *usecase.StatsBundle) string {
	b := strings.Builder{}
	stats := bundle.Aggregate

	b.WriteString("Trading Statistics\n\n")
	fmt.Fprintf(&b, "Total Orders:  %s\n", helpers.FormatInt(stats.TotalOrders))
	fmt.Fprintf(&b, "Active Orders: %s\n", helpers.FormatInt(stats.ActiveOrders))
	fmt.Fprintf(&b, "Filled Orders: %s\n", helpers.FormatInt(stats.FilledOrders))
	fmt.Fprintf(&b, "Total Volume:  %s\n", helpers.FormatNumber(stats.TotalVolume))

	bars := stats.Bars()
	b.WriteString("\nOrder Status Distribution\n")
	fmt.Fprintf(&b, "Active:    %5.1f%%\n", bars.Active)
	fmt.Fprintf(&b, "Filled:    %5.1f%%\n", bars.Filled)
	fmt.Fprintf(&b, "Cancelled: %5.1f%%\n", bars.Cancelled)

	b.WriteString("\nInstrument Breakdown\n")
	fmt.Fprintf(&b, "%-8s %-24s %-10s %-14s %s\n",
		"SYMBOL", "NAME", "ORDERS", "VOLUME", "AVG PRICE")

	for _, inst := range bundle.Instruments {
		avgPrice := "N/A"
		if inst.AvgPrice.IsPositive() {
			avgPrice = "$" + helpers.FormatPrice(inst.AvgPrice)
		}

		fmt.Fprintf(&b, "%-8s %-24s %-10s %-14s %s\n",
			inst.Symbol,
			inst.Name,
			helpers.FormatInt(inst.OrderCount),
			helpers.FormatNumber(inst.TotalVolume),
			avgPrice)
	}

	return b.String()
}

// RenderTradeTape renders the recent-trades buffer, newest first.
func RenderTradeTape(trades []domain.Trade) string {
	if len(trades) == 0 {
		return "No trades yet.\n"
	}

	b := strings.Builder{}
	fmt.Fprintf(&b, "%-12s %-8s %-12s %-14s %s\n",
		"TRADE", "SYMBOL", "QUANTITY", "VALUE", "TIME")

	for _, trade := range trades {
		fmt.Fprintf(&b, "%-12s %-8s %-12s $%-13s %s\n",
			trade.TradeID,
			trade.InstrumentSymbol,
			helpers.FormatNumber(trade.Quantity),
			helpers.FormatPrice(trade.TradeValue),
			helpers.FormatDateTime(trade.CreatedAt))
	}

	return b.String()
}
