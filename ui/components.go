package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"cisbosium-trader/models"
	"cisbosium-trader/utils"
)

// HoldingCard shows one position from the portfolio snapshot.
type HoldingCard struct {
	widget.BaseWidget
	holding models.StockHolding
	onTrade func(string)
}

// NewHoldingCard creates a card for one holding. onTrade selects the symbol
// in the trading view.
func NewHoldingCard(holding models.StockHolding, onTrade func(string)) *HoldingCard {
	card := &HoldingCard{
		holding: holding,
		onTrade: onTrade,
	}
	card.ExtendBaseWidget(card)
	return card
}

// CreateRenderer builds the holding card renderer.
func (h *HoldingCard) CreateRenderer() fyne.WidgetRenderer {
	name := h.holding.Symbol
	if in := models.FindInstrument(h.holding.Symbol); in != nil {
		name = fmt.Sprintf("%s (%s)", in.DisplayName, in.Symbol)
	}

	nameLabel := widget.NewLabel("📈 " + name)
	nameLabel.TextStyle = fyne.TextStyle{Bold: true}

	sharesLabel := widget.NewLabel(fmt.Sprintf("%d shares", h.holding.Quantity))

	tradeBtn := widget.NewButton("💱 Trade", func() {
		if h.onTrade != nil {
			h.onTrade(h.holding.Symbol)
		}
	})

	content := container.NewBorder(nil, nil,
		container.NewVBox(nameLabel, sharesLabel),
		tradeBtn,
	)

	card := widget.NewCard("", "", content)
	return widget.NewSimpleRenderer(card)
}

// EventCard shows one event of the fest schedule.
type EventCard struct {
	widget.BaseWidget
	event Event
}

// NewEventCard creates a card for one event.
func NewEventCard(event Event) *EventCard {
	card := &EventCard{event: event}
	card.ExtendBaseWidget(card)
	return card
}

// CreateRenderer builds the event card renderer.
func (e *EventCard) CreateRenderer() fyne.WidgetRenderer {
	nameLabel := widget.NewLabel(fmt.Sprintf("%s %s", e.event.Icon, e.event.Name))
	nameLabel.TextStyle = fyne.TextStyle{Bold: true}

	taglineLabel := widget.NewLabel(e.event.Tagline)
	taglineLabel.Wrapping = fyne.TextWrapWord

	descLabel := widget.NewLabel(e.event.Description)
	descLabel.Wrapping = fyne.TextWrapWord

	content := container.NewVBox(
		nameLabel,
		taglineLabel,
		widget.NewSeparator(),
		descLabel,
	)

	card := widget.NewCard("", "", content)
	return widget.NewSimpleRenderer(card)
}

// TransactionCard shows one entry of the trade history.
type TransactionCard struct {
	widget.BaseWidget
	tx models.Transaction
}

// NewTransactionCard creates a card for one past trade.
func NewTransactionCard(tx models.Transaction) *TransactionCard {
	card := &TransactionCard{tx: tx}
	card.ExtendBaseWidget(card)
	return card
}

// CreateRenderer builds the transaction card renderer.
func (t *TransactionCard) CreateRenderer() fyne.WidgetRenderer {
	icon := "🟢"
	if t.tx.Type == string(models.Sell) {
		icon = "🔴"
	}

	headLabel := widget.NewLabel(fmt.Sprintf("%s %s %d × %s", icon, t.tx.Type, t.tx.Quantity, t.tx.Symbol))
	headLabel.TextStyle = fyne.TextStyle{Bold: true}

	priceLabel := widget.NewLabel(fmt.Sprintf("at %s", utils.FormatUSD(t.tx.Price)))
	dateLabel := widget.NewLabel("📅 " + utils.FormatDateTime(t.tx.Timestamp))

	content := container.NewVBox(headLabel, priceLabel, dateLabel)
	card := widget.NewCard("", "", content)
	return widget.NewSimpleRenderer(card)
}

// NewSectionCard wraps content under a bold title with a separator.
func NewSectionCard(title string, content fyne.CanvasObject) *fyne.Container {
	titleLabel := widget.NewLabel(title)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	body := widget.NewCard("", "", content)
	header := container.NewBorder(nil, nil, titleLabel, nil)

	card := container.NewVBox(
		container.NewPadded(header),
		widget.NewSeparator(),
		container.NewPadded(body),
	)

	return container.NewBorder(nil, nil, nil, nil, card)
}

// NewActionButton creates a button with an icon prefix and importance.
func NewActionButton(text string, icon string, importance widget.ButtonImportance, action func()) *widget.Button {
	btn := widget.NewButton(fmt.Sprintf("%s %s", icon, text), action)
	btn.Importance = importance
	return btn
}

// NewSearchEntry creates a search input field.
func NewSearchEntry(placeholder string, onChanged func(string)) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	entry.OnChanged = onChanged
	return entry
}

// NewInfoLabel creates a wrapped informational label.
func NewInfoLabel(text string, alignment fyne.TextAlign) *widget.Label {
	label := widget.NewLabel(text)
	label.Alignment = alignment
	label.Wrapping = fyne.TextWrapWord
	return label
}

// NewPrimaryButton creates a high-importance button.
func NewPrimaryButton(text string, action func()) *widget.Button {
	btn := widget.NewButton(text, action)
	btn.Importance = widget.HighImportance
	return btn
}

// NewSecondaryButton creates a medium-importance button.
func NewSecondaryButton(text string, action func()) *widget.Button {
	btn := widget.NewButton(text, action)
	btn.Importance = widget.MediumImportance
	return btn
}

// NewLoadingIndicator creates an infinite progress bar with a message.
func NewLoadingIndicator(message string) *fyne.Container {
	progressBar := widget.NewProgressBarInfinite()
	label := widget.NewLabel(message)
	label.Alignment = fyne.TextAlignCenter

	return container.NewVBox(
		progressBar,
		label,
	)
}

// NewEmptyState creates a placeholder for views with nothing to show yet.
func NewEmptyState(message, actionText string, action func()) *fyne.Container {
	icon := widget.NewLabel("📭")
	icon.Alignment = fyne.TextAlignCenter
	icon.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(message)
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.Wrapping = fyne.TextWrapWord

	var content []fyne.CanvasObject
	content = append(content, icon, messageLabel)

	if actionText != "" && action != nil {
		actionBtn := NewPrimaryButton(actionText, action)
		content = append(content, actionBtn)
	}

	return container.NewVBox(content...)
}
