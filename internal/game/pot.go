package game

import (
	"slices"
)

// Pot is one layer of the chips wagered in a hand. Level is the cumulative
// per-player contribution that closes it; only Eligible players can win it.
type Pot struct {
	Amount   int
	Level    int
	Eligible []*HandPlayer
}

// IsEligible reports whether hp can win this pot.
func (p *Pot) IsEligible(hp *HandPlayer) bool {
	return slices.Contains(p.Eligible, hp)
}

// Bet is what one player has put in during the current betting round.
type Bet struct {
	Player *HandPlayer
	Amount int
}

// Bets holds the current round's bets keyed by player ID. A player has at
// most one record; repeated calls and raises accumulate into it.
type Bets map[int]*Bet

// Add records amount more from hp.
func (b Bets) Add(hp *HandPlayer, amount int) {
	if bet, ok := b[hp.ID]; ok {
		bet.Amount += amount
		return
	}
	b[hp.ID] = &Bet{Player: hp, Amount: amount}
}

// Total is the sum of every bet this round.
func (b Bets) Total() int {
	total := 0
	for _, bet := range b {
		total += bet.Amount
	}
	return total
}

// Max is the largest single bet this round, or 0.
func (b Bets) Max() int {
	highest := 0
	for _, bet := range b {
		highest = max(highest, bet.Amount)
	}
	return highest
}

// collectBets folds a finished round's bets into pots and returns the new pot
// list; its last entry is the top pot that the next round adds to.
//
// When every contribution is equal the round total goes into the top pot.
// Otherwise the contributions are peeled into layers from the smallest up,
// each eligible to the non-folded players who reached it. Non-folded players
// of the top pot who bet nothing this round (all-in earlier) count as zero
// contributors so they cannot win chips they never matched.
func collectBets(pots []*Pot, bets Bets) []*Pot {
	top := pots[len(pots)-1]

	contribs := make([]*Bet, 0, len(bets)+len(top.Eligible))
	for _, bet := range bets {
		contribs = append(contribs, &Bet{Player: bet.Player, Amount: bet.Amount})
	}
	for _, hp := range top.Eligible {
		if _, ok := bets[hp.ID]; !ok && !hp.Folded {
			contribs = append(contribs, &Bet{Player: hp})
		}
	}
	slices.SortStableFunc(contribs, func(a, b *Bet) int {
		if a.Amount != b.Amount {
			return a.Amount - b.Amount
		}
		return a.Player.Seat - b.Player.Seat
	})

	if len(contribs) == 0 || contribs[0].Amount == contribs[len(contribs)-1].Amount {
		highest := 0
		if len(contribs) > 0 {
			highest = contribs[0].Amount
		}
		top.Level += highest
		top.Amount += bets.Total()
		top.Eligible = slices.DeleteFunc(top.Eligible, func(hp *HandPlayer) bool { return hp.Folded })
		return pots
	}

	pots = pots[:len(pots)-1]
	base, level := top.Amount, top.Level
	for len(contribs) > 0 {
		smallest := contribs[0].Amount
		amount := base + smallest*len(contribs)
		level += smallest

		last := true
		for _, c := range contribs {
			if c.Amount != smallest {
				last = false
				break
			}
		}
		if amount > 0 || last {
			pots = append(pots, &Pot{Amount: amount, Level: level, Eligible: eligibleFrom(contribs)})
			base = 0
		}

		for _, c := range contribs {
			c.Amount -= smallest
		}
		contribs = slices.DeleteFunc(contribs, func(c *Bet) bool { return c.Amount == 0 })
	}
	return pots
}

func eligibleFrom(contribs []*Bet) []*HandPlayer {
	eligible := make([]*HandPlayer, 0, len(contribs))
	for _, c := range contribs {
		if !c.Player.Folded {
			eligible = append(eligible, c.Player)
		}
	}
	slices.SortFunc(eligible, func(a, b *HandPlayer) int { return a.Seat - b.Seat })
	return eligible
}

func potTotal(pots []*Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}
