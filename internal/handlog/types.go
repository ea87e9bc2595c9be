// Package handlog writes one poker hand history (PHH) file per dealt hand.
package handlog

import "time"

// Variant is the PHH code for no-limit Texas Hold'em.
const Variant = "NT"

// HandHistory is a single hand in PHH form. Seats are numbered p1..pN in
// the order of Players.
type HandHistory struct {
	Variant           string         `toml:"variant"`
	Table             string         `toml:"table,omitempty"`
	SeatCount         int            `toml:"seat_count"`
	Antes             []int          `toml:"antes"`
	BlindsOrStraddles []int          `toml:"blinds_or_straddles"`
	MinBet            int            `toml:"min_bet"`
	StartingStacks    []int          `toml:"starting_stacks"`
	FinishingStacks   []int          `toml:"finishing_stacks"`
	Winnings          []int          `toml:"winnings"`
	Actions           []string       `toml:"actions"`
	Players           []string       `toml:"players"`
	HandID            string         `toml:"hand"`
	Time              string         `toml:"time,omitempty"`
	TimeZone          string         `toml:"time_zone,omitempty"`
	Day               int            `toml:"day,omitempty"`
	Month             int            `toml:"month,omitempty"`
	Year              int            `toml:"year,omitempty"`
	Metadata          map[string]any `toml:"metadata,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// stamp fills the PHH date fields from Timestamp.
func (h *HandHistory) stamp() {
	if h.Timestamp.IsZero() {
		return
	}
	utc := h.Timestamp.UTC()
	h.Time = utc.Format("15:04:05")
	h.TimeZone = "UTC"
	h.Day = utc.Day()
	h.Month = int(utc.Month())
	h.Year = utc.Year()
}
