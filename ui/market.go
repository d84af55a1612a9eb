package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"cisbosium-trader/feed"
	"cisbosium-trader/models"
	"cisbosium-trader/state/data"
	"cisbosium-trader/trade"
	"cisbosium-trader/utils"
)

// marketView is the trading view: instrument list, live price, order panel,
// and the portfolio summary. One instance lives per main window.
type marketView struct {
	app *App

	instruments []models.Instrument
	filtered    []models.Instrument
	selected    string

	listArea *fyne.Container
	list     *widget.List

	nameLabel  *widget.Label
	priceLabel *widget.Label
	staleLabel *widget.Label
	asOfLabel  *widget.Label

	quantityEntry *widget.Entry
	hintLabel     *widget.Label
	buyBtn        *widget.Button
	sellBtn       *widget.Button

	balanceLabel *widget.Label
	statusLabel  *widget.Label
	holdingsArea *fyne.Container

	lastPrice    float64
	priceKnown   bool
	balance      float64
	balanceKnown bool
	holdings     []models.StockHolding

	catalogCancel context.CancelFunc
}

func (a *App) newMarketView() *marketView {
	v := &marketView{app: a}

	v.listArea = container.NewStack(NewLoadingIndicator("Loading market..."))

	v.nameLabel = widget.NewLabel("Select a stock")
	v.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.priceLabel = widget.NewLabel("—")
	v.priceLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.staleLabel = widget.NewLabel("⚠️ stale")
	v.staleLabel.Hide()
	v.asOfLabel = widget.NewLabel("")

	v.quantityEntry = widget.NewEntry()
	v.quantityEntry.SetPlaceHolder("Quantity")
	v.quantityEntry.OnChanged = func(string) { v.updateTradeHint() }

	v.hintLabel = NewInfoLabel("", fyne.TextAlignLeading)
	v.hintLabel.Hide()

	v.buyBtn = NewActionButton("Buy", "🟢", widget.HighImportance, func() {
		v.handleTrade(models.Buy)
	})
	v.sellBtn = NewActionButton("Sell", "🔴", widget.MediumImportance, func() {
		v.handleTrade(models.Sell)
	})
	v.buyBtn.Disable()
	v.sellBtn.Disable()

	v.balanceLabel = widget.NewLabel("Balance: —")
	v.balanceLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.statusLabel = widget.NewLabel("")
	v.holdingsArea = container.NewVBox(NewLoadingIndicator("Loading portfolio..."))

	return v
}

// content lays the view out: instruments on the left, price and order panel
// in the middle, portfolio on the right.
func (v *marketView) content() fyne.CanvasObject {
	search := NewSearchEntry("🔍 Search stocks...", func(q string) {
		v.filter(q)
	})
	listPanel := NewSectionCard("📋 Stocks", container.NewBorder(search, nil, nil, nil, v.listArea))

	priceHeader := container.NewVBox(
		v.nameLabel,
		container.NewHBox(v.priceLabel, v.staleLabel),
		v.asOfLabel,
	)

	orderPanel := container.NewVBox(
		v.quantityEntry,
		v.hintLabel,
		container.NewGridWithColumns(2, v.buyBtn, v.sellBtn),
	)

	tradePanel := NewSectionCard("💱 Trade", container.NewVBox(
		priceHeader,
		widget.NewSeparator(),
		orderPanel,
	))

	portfolioPanel := NewSectionCard("💼 Portfolio", container.NewBorder(
		container.NewVBox(v.balanceLabel, v.statusLabel, widget.NewSeparator()),
		nil, nil, nil,
		container.NewScroll(v.holdingsArea),
	))

	split := container.NewHSplit(listPanel, container.NewHSplit(tradePanel, portfolioPanel))
	split.SetOffset(0.3)

	return split
}

// loadCatalog kicks off the one-shot catalog load and swaps the loading
// indicator for the list when it delivers.
func (v *marketView) loadCatalog() {
	ctx, cancel := context.WithCancel(context.Background())
	v.catalogCancel = cancel

	go func() {
		instruments, ok := <-v.app.catalog.Load(ctx)
		if !ok {
			return
		}
		fyne.Do(func() {
			v.instruments = instruments
			v.filtered = instruments
			v.buildList()
		})
	}()
}

func (v *marketView) buildList() {
	v.list = widget.NewList(
		func() int { return len(v.filtered) },
		func() fyne.CanvasObject {
			name := widget.NewLabel("name")
			name.TextStyle = fyne.TextStyle{Bold: true}
			category := widget.NewLabel("category")
			return container.NewBorder(nil, nil, name, category)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(v.filtered) {
				return
			}
			in := v.filtered[id]
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(fmt.Sprintf("%s (%s)", in.DisplayName, in.Symbol))
			row.Objects[1].(*widget.Label).SetText(in.Category)
		},
	)
	v.list.OnSelected = func(id widget.ListItemID) {
		if id < len(v.filtered) {
			v.selectSymbol(v.filtered[id].Symbol)
		}
	}

	v.listArea.Objects = []fyne.CanvasObject{v.list}
	v.listArea.Refresh()
}

func (v *marketView) filter(query string) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		v.filtered = v.instruments
	} else {
		var filtered []models.Instrument
		for _, in := range v.instruments {
			if strings.Contains(strings.ToLower(in.DisplayName), query) ||
				strings.Contains(strings.ToLower(in.Symbol), query) {
				filtered = append(filtered, in)
			}
		}
		v.filtered = filtered
	}
	if v.list != nil {
		v.list.UnselectAll()
		v.list.Refresh()
	}
}

// selectSymbol switches the watched instrument. The price header resets to
// the symbol's last known quote, or to a placeholder when there is none.
func (v *marketView) selectSymbol(symbol string) {
	if symbol == v.selected {
		return
	}
	v.selected = symbol
	v.priceKnown = false

	name := symbol
	if in := models.FindInstrument(symbol); in != nil {
		name = fmt.Sprintf("%s (%s)", in.DisplayName, in.Symbol)
	}
	v.nameLabel.SetText(name)
	v.priceLabel.SetText("—")
	v.asOfLabel.SetText("")
	v.staleLabel.Hide()

	v.app.feed.Watch(symbol)
	v.updateTradeHint()
}

// renderQuote shows a price update. Updates for symbols other than the
// selected one are ignored here; the feed already discards late results.
func (v *marketView) renderQuote(u feed.Update) {
	if u.Symbol != v.selected {
		return
	}

	if !u.Known {
		v.priceLabel.SetText("—")
		v.priceKnown = false
	} else {
		v.lastPrice = u.Quote.Price
		v.priceKnown = true
		v.priceLabel.SetText(utils.FormatUSD(u.Quote.Price))
		v.asOfLabel.SetText("as of " + utils.FormatDateTime(u.Quote.At))
	}

	if u.Stale {
		v.staleLabel.Show()
	} else {
		v.staleLabel.Hide()
	}

	v.updateTradeHint()
}

// renderPortfolio shows the shared snapshot.
func (v *marketView) renderPortfolio(st data.State) {
	v.balance = st.Balance
	v.balanceKnown = st.BalanceKnown
	v.holdings = st.Holdings

	if st.BalanceKnown {
		v.balanceLabel.SetText("Balance: " + utils.FormatUSD(st.Balance))
	} else {
		v.balanceLabel.SetText("Balance: —")
	}

	switch {
	case st.Loading:
		v.statusLabel.SetText("🔄 refreshing...")
	case st.Status == data.StatusStale:
		v.statusLabel.SetText("⚠️ shown data may be stale: " + st.LastError)
	case st.BalanceKnown:
		v.statusLabel.SetText("updated " + utils.FormatDateTime(st.LastUpdated))
	default:
		v.statusLabel.SetText("")
	}

	var cards []fyne.CanvasObject
	for _, h := range st.Holdings {
		cards = append(cards, NewHoldingCard(h, func(symbol string) {
			v.selectFromHoldings(symbol)
		}))
	}
	if len(cards) == 0 && st.BalanceKnown {
		cards = append(cards, NewEmptyState("No holdings yet.\nBuy your first stock from the list.", "", nil))
	}
	v.holdingsArea.Objects = cards
	v.holdingsArea.Refresh()

	v.updateTradeHint()
}

// selectFromHoldings jumps the trading panel to a held symbol.
func (v *marketView) selectFromHoldings(symbol string) {
	for i, in := range v.filtered {
		if in.Symbol == symbol && v.list != nil {
			v.list.Select(i)
			return
		}
	}
	v.selectSymbol(symbol)
}

// updateTradeHint recomputes button state and the affordability hint from
// the current quantity, price, and balance.
func (v *marketView) updateTradeHint() {
	if v.selected == "" {
		v.buyBtn.Disable()
		v.sellBtn.Disable()
		v.hintLabel.Hide()
		return
	}
	v.buyBtn.Enable()
	v.sellBtn.Enable()

	quantity, err := utils.ParseQuantity(v.quantityEntry.Text)
	if err != nil {
		v.hintLabel.Hide()
		return
	}

	if v.priceKnown {
		cost := v.lastPrice * float64(quantity)
		if v.balanceKnown && cost > v.balance {
			v.hintLabel.SetText(fmt.Sprintf("Costs about %s — more than your balance.", utils.FormatUSD(cost)))
			v.hintLabel.Show()
			v.buyBtn.Disable()
			return
		}
		v.hintLabel.SetText("Costs about " + utils.FormatUSD(cost))
		v.hintLabel.Show()
		return
	}
	v.hintLabel.Hide()
}

// handleTrade submits one order and reports the outcome.
func (v *marketView) handleTrade(direction models.Direction) {
	symbol := v.selected
	if symbol == "" {
		return
	}

	quantity, err := utils.ParseQuantity(v.quantityEntry.Text)
	if err != nil {
		dialog.ShowError(err, v.app.mainWindow)
		return
	}

	v.buyBtn.Disable()
	v.sellBtn.Disable()

	go func() {
		n, err := v.app.submitter.Submit(context.Background(), direction, symbol, quantity)
		fyne.Do(func() {
			v.updateTradeHint()
			if errors.Is(err, trade.ErrBusy) {
				return
			}
			if err != nil {
				v.app.log.Warn("trade failed", zap.String("symbol", symbol), zap.Error(err))
				dialog.ShowError(fmt.Errorf("%s", n.Message), v.app.mainWindow)
				return
			}

			v.quantityEntry.SetText("")
			v.app.fyneApp.SendNotification(&fyne.Notification{
				Title:   "Trade executed",
				Content: n.Message,
			})
			dialog.ShowInformation("✅ Trade executed", n.Message, v.app.mainWindow)
		})
	}()
}

// stop cancels the in-flight catalog load, if any.
func (v *marketView) stop() {
	if v.catalogCancel != nil {
		v.catalogCancel()
		v.catalogCancel = nil
	}
}
