package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"cisbosium-trader/api"
	"cisbosium-trader/models"
	"cisbosium-trader/utils"
)

// ShowProfileDialog fetches the account record and trade history and shows
// them in a dialog.
func (a *App) ShowProfileDialog() {
	loading := NewLoadingIndicator("Loading profile...")
	content := container.NewStack(loading)

	d := dialog.NewCustom("🪪 Profile", "Close", container.NewScroll(content), a.mainWindow)
	d.Resize(fyne.NewSize(520, 600))
	d.Show()

	go func() {
		profile, perr := a.client.Profile(context.Background())
		transactions, terr := a.client.Transactions(context.Background())

		fyne.Do(func() {
			if perr != nil {
				a.log.Warn("profile fetch failed", zap.Error(perr))
				content.Objects = []fyne.CanvasObject{NewInfoLabel(api.Message(perr), fyne.TextAlignCenter)}
				content.Refresh()
				return
			}
			content.Objects = []fyne.CanvasObject{a.buildProfileContent(profile, transactions, terr)}
			content.Refresh()
		})
	}()
}

func (a *App) buildProfileContent(profile models.UserProfile, transactions []models.Transaction, terr error) fyne.CanvasObject {
	nameLabel := widget.NewLabel("👤 " + profile.Username)
	nameLabel.TextStyle = fyne.TextStyle{Bold: true}

	emailLabel := widget.NewLabel("✉️ " + profile.Email)
	balanceLabel := widget.NewLabel("💰 " + utils.FormatUSD(profile.Balance))

	account := container.NewVBox(nameLabel, emailLabel, balanceLabel)

	var history fyne.CanvasObject
	switch {
	case terr != nil:
		a.log.Warn("transactions fetch failed", zap.Error(terr))
		history = NewInfoLabel(api.Message(terr), fyne.TextAlignCenter)
	case len(transactions) == 0:
		history = NewEmptyState("No trades yet.", "", nil)
	default:
		var cards []fyne.CanvasObject
		for _, tx := range transactions {
			cards = append(cards, NewTransactionCard(tx))
		}
		history = container.NewVBox(cards...)
	}

	historyTitle := widget.NewLabel(fmt.Sprintf("📜 Trade history (%d)", len(transactions)))
	historyTitle.TextStyle = fyne.TextStyle{Bold: true}

	return container.NewVBox(
		account,
		widget.NewSeparator(),
		historyTitle,
		history,
	)
}
