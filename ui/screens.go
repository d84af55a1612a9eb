package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/johnsiilver/boutique"
	"go.uber.org/zap"

	"cisbosium-trader/api"
	"cisbosium-trader/config"
	"cisbosium-trader/feed"
	"cisbosium-trader/market"
	"cisbosium-trader/portfolio"
	"cisbosium-trader/session"
	"cisbosium-trader/trade"
)

// App is the UI application. It owns the windows and renders the shared
// stores; all domain decisions live in the packages it wires together.
type App struct {
	fyneApp fyne.App
	config  *config.AppConfig
	log     *zap.Logger

	client    *api.Client
	sessions  *session.Store
	portfolio *portfolio.Store
	catalog   *market.Catalog
	feed      *feed.PriceFeed
	submitter *trade.Submitter

	mainWindow fyne.Window

	// market view widgets, rebuilt on every ShowMainScreen
	marketView      *marketView
	portfolioCancel boutique.CancelFunc

	// mainDone ends the render loops of the current main window; a new
	// channel is made per ShowMainScreen so re-login gets fresh loops.
	mainDone chan struct{}
}

// NewApp creates the UI application and applies the event theme.
func NewApp(fyneApp fyne.App, cfg *config.AppConfig, client *api.Client, sessions *session.Store,
	pf *portfolio.Store, catalog *market.Catalog, priceFeed *feed.PriceFeed, submitter *trade.Submitter,
	log *zap.Logger) *App {

	app := &App{
		fyneApp:   fyneApp,
		config:    cfg,
		log:       log,
		client:    client,
		sessions:  sessions,
		portfolio: pf,
		catalog:   catalog,
		feed:      priceFeed,
		submitter: submitter,
	}

	fyneApp.Settings().SetTheme(NewModernTheme())

	return app
}

// Run opens the screen matching the session state and enters the event loop.
// A persisted token from a previous run lands directly on the main screen.
func (a *App) Run() {
	if a.sessions.Authenticated() {
		a.ShowMainScreen()
	} else {
		a.ShowLoginScreen()
	}
	a.fyneApp.Run()
}

// ShowLoginScreen displays the login window.
func (a *App) ShowLoginScreen() {
	appName, version := a.config.GetAppInfo()

	loginWindow := a.fyneApp.NewWindow("🔐 Sign in - " + appName)
	width, height := a.config.GetWindowSize()
	loginWindow.Resize(fyne.NewSize(width*0.4, height*0.6))
	loginWindow.CenterOnScreen()

	titleLabel := widget.NewLabel(appName)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.Alignment = fyne.TextAlignCenter

	subtitleLabel := widget.NewLabel("Cisbosium 2025 · Stock Market Challenge")
	subtitleLabel.Alignment = fyne.TextAlignCenter

	versionLabel := widget.NewLabel(fmt.Sprintf("Version %s", version))
	versionLabel.Alignment = fyne.TextAlignCenter

	usernameEntry := widget.NewEntry()
	usernameEntry.SetPlaceHolder("Username")

	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder("Password")

	errorLabel := NewInfoLabel("", fyne.TextAlignCenter)
	errorLabel.Hide()

	loginBtn := NewPrimaryButton("🚀 Sign in", func() {
		a.handleLogin(usernameEntry.Text, passwordEntry.Text, errorLabel, loginWindow)
	})

	passwordEntry.OnSubmitted = func(string) {
		a.handleLogin(usernameEntry.Text, passwordEntry.Text, errorLabel, loginWindow)
	}

	info := NewInfoLabel(
		"Use the credentials handed out at the registration desk.\nAll trades run against the event's virtual market.",
		fyne.TextAlignCenter,
	)

	content := container.NewVBox(
		container.NewPadded(
			container.NewVBox(
				titleLabel,
				subtitleLabel,
				versionLabel,
			),
		),
		widget.NewSeparator(),
		container.NewPadded(
			container.NewVBox(
				widget.NewLabel("👤 Account"),
				usernameEntry,
				passwordEntry,
				errorLabel,
				loginBtn,
			),
		),
		widget.NewSeparator(),
		container.NewPadded(info),
	)

	loginWindow.SetContent(content)
	loginWindow.Show()
}

// handleLogin exchanges credentials for a session and moves to the main
// screen. Failures stay on the login screen with an inline message.
func (a *App) handleLogin(username, password string, errorLabel *widget.Label, loginWindow fyne.Window) {
	if username == "" || password == "" {
		errorLabel.SetText("Enter your username and password.")
		errorLabel.Show()
		return
	}

	errorLabel.Hide()
	go func() {
		token, err := a.client.Login(context.Background(), username, password)
		if err != nil {
			a.log.Warn("login rejected", zap.String("username", username), zap.Error(err))
			fyne.Do(func() {
				errorLabel.SetText(api.Message(err))
				errorLabel.Show()
			})
			return
		}

		if err := a.sessions.Login(token); err != nil {
			a.log.Warn("session not persisted", zap.Error(err))
		}
		go func() { _ = a.portfolio.Refresh(context.Background()) }()

		fyne.Do(func() {
			loginWindow.Close()
			a.ShowMainScreen()
		})
	}()
}

// ShowMainScreen displays the trading window with the market and events
// views.
func (a *App) ShowMainScreen() {
	appName, _ := a.config.GetAppInfo()

	a.mainWindow = a.fyneApp.NewWindow("📊 " + appName)
	width, height := a.config.GetWindowSize()
	a.mainWindow.Resize(fyne.NewSize(width, height))
	a.mainWindow.CenterOnScreen()

	header := a.createHeader()

	a.marketView = a.newMarketView()
	tabs := container.NewAppTabs(
		container.NewTabItem("📈 Market", a.marketView.content()),
		container.NewTabItem("🎪 Events", a.createEventsView()),
	)

	content := container.NewBorder(
		container.NewVBox(container.NewPadded(header), widget.NewSeparator()),
		nil, nil, nil,
		tabs,
	)

	a.mainWindow.SetContent(content)
	a.mainDone = make(chan struct{})
	a.mainWindow.SetOnClosed(func() {
		a.teardownMainScreen()
	})
	a.mainWindow.Show()

	a.watchPortfolio()
	a.watchPrices()
	a.marketView.loadCatalog()
}

// createHeader builds the main window header.
func (a *App) createHeader() *fyne.Container {
	appName, version := a.config.GetAppInfo()

	titleLabel := widget.NewLabel("📊 " + appName)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	versionLabel := widget.NewLabel("v" + version)

	userLabel := widget.NewLabel("")
	if name := a.sessions.Username(); name != "" {
		userLabel.SetText("👤 " + name)
	}

	profileBtn := NewActionButton("Profile", "🪪", widget.MediumImportance, func() {
		a.ShowProfileDialog()
	})

	refreshBtn := NewActionButton("Refresh", "🔄", widget.MediumImportance, func() {
		go func() { _ = a.portfolio.Refresh(context.Background()) }()
	})

	logoutBtn := NewActionButton("Sign out", "🚪", widget.LowImportance, func() {
		a.handleLogout()
	})

	leftSide := container.NewHBox(titleLabel, versionLabel)
	rightSide := container.NewHBox(userLabel, profileBtn, refreshBtn, logoutBtn)

	return container.NewBorder(nil, nil, leftSide, rightSide)
}

// watchPortfolio re-renders the balance and holdings whenever the shared
// snapshot changes.
func (a *App) watchPortfolio() {
	ch, cancel, err := a.portfolio.Subscribe(boutique.Any)
	if err != nil {
		a.log.Error("portfolio subscription failed", zap.Error(err))
		return
	}
	a.portfolioCancel = cancel

	view := a.marketView
	done := a.mainDone
	go func() {
		for {
			select {
			case <-done:
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				fyne.Do(func() {
					view.renderPortfolio(a.portfolio.State())
				})
			}
		}
	}()

	fyne.Do(func() {
		view.renderPortfolio(a.portfolio.State())
	})
}

// watchPrices renders price updates for the selected symbol.
func (a *App) watchPrices() {
	view := a.marketView
	done := a.mainDone
	go func() {
		for {
			select {
			case <-done:
				return
			case u := <-a.feed.Updates():
				fyne.Do(func() {
					view.renderQuote(u)
				})
			}
		}
	}()
}

// handleLogout asks for confirmation, then drops the session and all
// account-scoped state and returns to the login screen.
func (a *App) handleLogout() {
	dialog.ShowConfirm(
		"Sign out",
		"Sign out of the Stock Market Challenge?",
		func(confirm bool) {
			if !confirm {
				return
			}
			if err := a.sessions.Logout(); err != nil {
				a.log.Warn("session file not cleared", zap.Error(err))
			}
			if err := a.portfolio.Reset(); err != nil {
				a.log.Warn("portfolio reset failed", zap.Error(err))
			}
			if a.mainWindow != nil {
				a.mainWindow.Close()
			}
			a.ShowLoginScreen()
		},
		a.mainWindow,
	)
}

// teardownMainScreen stops the background work feeding the main screen.
func (a *App) teardownMainScreen() {
	a.feed.Stop()
	if a.marketView != nil {
		a.marketView.stop()
	}
	if a.portfolioCancel != nil {
		a.portfolioCancel()
		a.portfolioCancel = nil
	}
	if a.mainDone != nil {
		close(a.mainDone)
		a.mainDone = nil
	}
}
