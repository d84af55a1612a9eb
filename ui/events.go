package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Event is one competition of the Cisbosium 2025 schedule. The schedule is
// static content shipped with the client.
type Event struct {
	Name        string
	Icon        string
	Tagline     string
	Description string
}

// FestEvents returns the Cisbosium 2025 schedule in display order.
func FestEvents() []Event {
	return []Event{
		{
			Name:        "Research Guru",
			Icon:        "🔬",
			Tagline:     "Present your research to a panel of experts.",
			Description: "A paper presentation contest. Bring your original research, defend your methodology, and field questions from the judges.",
		},
		{
			Name:        "Shark Tank",
			Icon:        "🦈",
			Tagline:     "Pitch your startup idea to the sharks.",
			Description: "Teams pitch a product idea and a business model. The sharks probe feasibility, market size, and the ask.",
		},
		{
			Name:        "Coding and Debugging",
			Icon:        "💻",
			Tagline:     "Race the clock through problems and broken code.",
			Description: "Two rounds: competitive problem solving, then a debugging gauntlet where the fastest fix wins.",
		},
		{
			Name:        "Think Hack",
			Icon:        "🧠",
			Tagline:     "A hackathon for ideas that matter.",
			Description: "Build a working prototype in 24 hours around this year's social-impact theme and demo it live.",
		},
		{
			Name:        "Stock Market Challenge",
			Icon:        "📈",
			Tagline:     "Trade a virtual portfolio and beat the market.",
			Description: "Every participant starts with the same virtual balance. Trade event stocks through this app; the highest portfolio value at closing bell wins.",
		},
		{
			Name:        "MystIQ",
			Icon:        "🕵️",
			Tagline:     "Puzzles, ciphers, and a trail of clues.",
			Description: "A treasure hunt across the venue. Crack each cipher to reveal the next location before the other teams do.",
		},
	}
}

// createEventsView builds the fest schedule view.
func (a *App) createEventsView() fyne.CanvasObject {
	var cards []fyne.CanvasObject
	for _, ev := range FestEvents() {
		cards = append(cards, NewEventCard(ev))
	}

	grid := container.NewGridWithColumns(2, cards...)
	return NewSectionCard("🎪 Cisbosium 2025 Events", container.NewScroll(grid))
}
