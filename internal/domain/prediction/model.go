package prediction

import "math"

// SideStats carries the last-5-matches attack/defense figures for one team.
// The provider reports them as percentage strings ("45%"), kept verbatim.
type SideStats struct {
	Attack  string `json:"att"`
	Defense string `json:"def"`
}

// Record is one normalized fixture/prediction pair, ready for rendering.
// Strength pointers are nil when the provider reported zero played matches;
// the renderer shows those as an explicit unavailable marker, never 0.
type Record struct {
	Date         string    `json:"date"`
	League       string    `json:"league"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	Advice       string    `json:"advice"`
	HomeForm     string    `json:"home_form"`
	AwayForm     string    `json:"away_form"`
	HomeLast5    SideStats `json:"home_last5"`
	AwayLast5    SideStats `json:"away_last5"`
	HomeStrength *float64  `json:"home_strength"`
	AwayStrength *float64  `json:"away_strength"`
}

// Strength computes the win-rate percentage from recent match counts,
// rounded to one decimal. played == 0 yields nil rather than a numeric zero.
func Strength(wins, played int) *float64 {
	if played <= 0 {
		return nil
	}
	value := math.Round(float64(wins)/float64(played)*1000) / 10
	return &value
}

// TruncateForm keeps the last five outcome characters of a form string.
func TruncateForm(form string) string {
	runes := []rune(form)
	if len(runes) <= 5 {
		return form
	}
	return string(runes[len(runes)-5:])
}
