// Package protocol defines the line-oriented text protocol spoken between the
// dealer and each player session.
//
// Every message is newline terminated. A few messages carry a body on the
// following line(s): the header line ("Hand", "Reveal <n>") tells the reader
// how much more to consume.
package protocol

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-dealer/poker"
)

// Lobby messages
const (
	NameTakenPrompt    = "Someone else has that name. Please enter a different name:"
	NameInvalidPrompt  = "Name cannot contain the ',' or ' ' characters. Please enter a different name:"
	NameReservedPrompt = "That name is reserved. Please enter a different name:"
)

// Fixed dealer -> player lines
const (
	MoneyLeft       = "Money left"
	HandHeader      = "Hand"
	YouBigBlind     = "You are big blind"
	YouSmallBlind   = "You are small blind"
	YouNotBlind     = "You are not the blind"
	Success         = "SUCCESS"
	FoldedCannotBet = "You have folded so cannot bet"
	BrokeCannotBet  = "You have no more money so cannot bet"
	WinningsHeader  = "Winnings"
	OutOfMoney      = "You ran out of money"
	Champion        = "YOU ARE THE CHAMPION"
	Goodbye         = "Goodbye"
)

// Prefixes shared by the dealer's formatters and the client's parser.
const (
	HandBannerPrefix = "---- New Hand :: Round "
	HandBannerSuffix = " ----"
	StillInPrefix    = "The following players are still in: "
	YouPrefix        = "You: "
	BigBlindPrefix   = "Big blind is "
	SmallBlindPrefix = "Small blind is "
	CurrentPot       = "Current pot: "
	CurrentPotBet    = "Current pot bet: "
	YourCurrentBet   = "Your current bet: "
	YourHoldings     = "Your holdings: "
	MenuPrefix       = "Fold/Call"
	ErrorPrefix      = "ERROR: "
	OpponentPrefix   = "Opponent action: "
	RevealPrefix     = "Reveal "
	ResultsPrefix    = "Results ["
	PotsPrefix       = "Pots ["
	YouGotPrefix     = "You got "
	YouWonPrefix     = "In total you won "
	TotalPrefix      = "In total "
)

// Opponent action verbs
const (
	Folded = "Folded"
	Called = "Called"
)

// Welcome is the first prompt a joining player sees.
func Welcome(seat, players int) string {
	return fmt.Sprintf("Welcome to the poker lobby. You are player %d of %d. Please enter name:", seat, players)
}

// Greeting acknowledges an accepted name.
func Greeting(name string) string {
	return fmt.Sprintf("Hi %s, please wait to be dealt your hand", name)
}

// HandBanner opens every hand and is the client's reset point.
func HandBanner(round int) string {
	return fmt.Sprintf("%s%d%s", HandBannerPrefix, round, HandBannerSuffix)
}

// StillIn lists the players seated for this hand, in seat order.
func StillIn(names []string) string {
	return StillInPrefix + strings.Join(names, ", ")
}

// OwnHoldings reports the recipient's own chip count.
func OwnHoldings(amount int) string {
	return fmt.Sprintf("%s%d", YouPrefix, amount)
}

// Holdings reports another player's chip count.
func Holdings(name string, amount int) string {
	return fmt.Sprintf("%s: %d", name, amount)
}

// HoleCards sends the recipient's two private cards.
func HoleCards(cards []poker.Card) string {
	return HandHeader + "\n" + poker.FormatCards(cards)
}

// BigBlindIs announces the big blind amount.
func BigBlindIs(amount int) string {
	return fmt.Sprintf("%s%d", BigBlindPrefix, amount)
}

// SmallBlindIs announces the small blind amount (0 heads-up).
func SmallBlindIs(amount int) string {
	return fmt.Sprintf("%s%d", SmallBlindPrefix, amount)
}

// PlayerBigBlind tells the others who posted the big blind.
func PlayerBigBlind(name string) string {
	return name + " is big blind"
}

// PlayerSmallBlind tells the others who posted the small blind.
func PlayerSmallBlind(name string) string {
	return name + " is small blind"
}

// Status is the four-line block sent before each action menu.
func Status(pot, potBet, bet, holdings int) string {
	return fmt.Sprintf("%s%d\n%s%d\n%s%d\n%s%d",
		CurrentPot, pot, CurrentPotBet, potBet, YourCurrentBet, bet, YourHoldings, holdings)
}

// Menu lists the available actions. Only this line invites a reply.
func Menu(canRaise bool) string {
	if canRaise {
		return MenuPrefix + "/Raise"
	}
	return MenuPrefix
}

// Error rejects the last action; the same menu follows.
func Error(reason string) string {
	return ErrorPrefix + reason
}

// OpponentAction broadcasts what a player did to everyone else.
func OpponentAction(name, what string) string {
	return OpponentPrefix + name + " " + what
}

// RaisedBy describes a raise for OpponentAction.
func RaisedBy(amount, total int) string {
	return fmt.Sprintf("Raised by %d to %d", amount, total)
}

// Reveal turns community cards face up.
func Reveal(cards []poker.Card) string {
	return fmt.Sprintf("%s%d\n%s", RevealPrefix, len(cards), poker.FormatCards(cards))
}

// Results opens the showdown block with the number of scored players.
func Results(n int) string {
	return fmt.Sprintf("%s%d]", ResultsPrefix, n)
}

// OwnScore tells a player what they made.
func OwnScore(score string) string {
	return YouGotPrefix + score
}

// PlayerScore tells the others what a player made.
func PlayerScore(name, score string) string {
	return name + " got " + score
}

// Pots opens the settlement block with the number of pots.
func Pots(n int) string {
	return fmt.Sprintf("%s%d]", PotsPrefix, n)
}

// PotWin announces the winners of one pot layer. share is the floor of
// amount over the winners; odd chips are paid one each to the first winners
// listed and are not part of the announcement.
func PotWin(names []string, level, amount, share int) string {
	return fmt.Sprintf("%s win %d bet pot worth %d giving %d each", strings.Join(names, ", "), level, amount, share)
}

// OwnWinnings reports the recipient's total winnings for the hand.
func OwnWinnings(amount int) string {
	return fmt.Sprintf("%s%d", YouWonPrefix, amount)
}

// PlayerWinnings reports another player's total winnings for the hand.
func PlayerWinnings(name string, amount int) string {
	return fmt.Sprintf("%s%s won %d", TotalPrefix, name, amount)
}
