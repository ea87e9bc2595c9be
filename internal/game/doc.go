// Package game runs Texas Hold'em hands against remote player sessions.
//
// A Game owns the deck and the seated Players. For each hand it builds a Hand,
// which wraps every Player in a HandPlayer, deals, and then walks the fixed
// sequence of betting rounds and reveals:
//
//	deal hole cards -> preflop (blinds) -> flop (3) -> bet -> turn (1) -> bet -> river (1) -> bet -> showdown -> settle
//
// Each betting round reports a RoundOutcome. HandOver means a single player is
// left and the hand skips straight to settlement without scoring anyone.
//
// Players are only ever reached through their Conn, one at a time, so hand
// state needs no locking. A player whose connection fails or who does not
// answer within the action timeout is folded and dropped at the end of the
// hand.
//
// # Pots
//
// Bets are gathered per round and folded into the pots when the round closes.
// Equal contributions go into the top pot. Unequal contributions (an all-in for
// less) split into layers, each eligible only to the players who reached it;
// earlier layers are capped and only the top pot keeps growing.
//
// # Basic Usage
//
//	players := []*game.Player{
//	    game.NewPlayer(0, "ann", 100, annConn),
//	    game.NewPlayer(1, "bob", 100, bobConn),
//	}
//	g := game.NewGame(players, poker.NewDeck(rng), game.WithBlinds(5, 10))
//	champion, err := g.Run(ctx)
package game
