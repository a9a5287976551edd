package table

import "github.com/wkantaros/poker-ftb/internal/deck"

// settleFoldout ends the hand when a single player holds live cards: the
// whole pot goes to them without ranking a hand.
func (t *Table) settleFoldout() {
	t.sweepBets()
	t.current = -1
	t.hand.Round = Showdown

	var winner *Player
	for _, seat := range t.order {
		if p := t.seats[seat]; !p.Folded {
			winner = p
			break
		}
	}
	if winner != nil {
		amount := t.hand.Pot
		winner.Chips += amount
		t.hand.Pot = 0
		for seat := range t.hand.Contributions {
			t.hand.Contributions[seat] = 0
		}
		t.winners = []Result{{
			Name:   winner.Name,
			Seat:   winner.Seat,
			Amount: amount,
			Chips:  winner.Chips,
		}}
	}
	t.recordBankrupt()
	t.notify(EventHandOver)
}

// showdown ranks every live hand and runs tiered settlement. The board is
// always complete here: betting either reached the river or was
// fast-forwarded through the remaining streets.
func (t *Table) showdown() {
	t.current = -1
	strength := make(map[int]int)
	desc := make(map[int]string)
	for _, seat := range t.order {
		p := t.seats[seat]
		if p.Folded {
			continue
		}
		cards := make([]deck.Card, 0, len(p.HoleCards)+len(t.hand.Board))
		cards = append(cards, p.HoleCards...)
		cards = append(cards, t.hand.Board...)
		strength[seat], desc[seat] = t.ranker.Rank(cards)
	}
	t.settlePots(strength, desc)
	t.recordBankrupt()
	t.notify(EventHandOver)
}

// settlePots distributes the pot over contribution tiers. Each pass finds
// the best-ranked players still owed by the ledger, takes the smallest of
// their remaining contributions as the tier size, collects up to that much
// from every seat, and splits the slice among the tier's winners. A player
// drops out of later tiers once their own contribution is exhausted, which
// is exactly what produces side pots for short all-in stacks. The ledger
// strictly decreases every pass, so the loop terminates.
//
// Integer remainders from a split are handed out one chip at a time in seat
// order clockwise from the dealer — chips are never fractional and never
// dropped.
func (t *Table) settlePots(strength map[int]int, desc map[int]string) {
	ledger := t.hand.Contributions
	won := make(map[int]int)

	total := 0
	for _, c := range ledger {
		total += c
	}

	for total > 0 {
		winners := t.tierWinners(strength, ledger)
		if len(winners) == 0 {
			// Everything left was contributed by folded players who
			// outspent the field. Award it to the best live hand rather
			// than dropping it.
			if seat := t.bestRemaining(strength); seat != -1 {
				won[seat] += total
			}
			for s := range ledger {
				ledger[s] = 0
			}
			break
		}

		tier := ledger[winners[0]]
		for _, s := range winners[1:] {
			if ledger[s] < tier {
				tier = ledger[s]
			}
		}

		slice := 0
		for s, c := range ledger {
			take := c
			if take > tier {
				take = tier
			}
			slice += take
			ledger[s] = c - take
			total -= take
		}

		share := slice / len(winners)
		rem := slice % len(winners)
		for i, s := range winners {
			won[s] += share
			if i < rem {
				won[s]++
			}
		}
	}

	n := len(t.order)
	for i := 1; i <= n; i++ {
		seat := t.order[(t.dealer+i)%n]
		amount := won[seat]
		if amount == 0 {
			continue
		}
		p := t.seats[seat]
		p.Chips += amount
		t.winners = append(t.winners, Result{
			Name:        p.Name,
			Seat:        seat,
			Amount:      amount,
			Chips:       p.Chips,
			Description: desc[seat],
		})
	}
	t.hand.Pot = 0
}

// tierWinners returns the best-ranked live seats that still have chips in
// the ledger, in clockwise order from the dealer. That order doubles as the
// odd-chip priority order.
func (t *Table) tierWinners(strength map[int]int, ledger map[int]int) []int {
	var winners []int
	best := 0
	n := len(t.order)
	for i := 1; i <= n; i++ {
		seat := t.order[(t.dealer+i)%n]
		if t.seats[seat].Folded || ledger[seat] <= 0 {
			continue
		}
		s := strength[seat]
		switch {
		case len(winners) == 0 || s > best:
			best = s
			winners = winners[:0]
			winners = append(winners, seat)
		case s == best:
			winners = append(winners, seat)
		}
	}
	return winners
}

// bestRemaining returns the best-ranked live seat regardless of ledger
// state, nearest clockwise from the dealer on ties.
func (t *Table) bestRemaining(strength map[int]int) int {
	bestSeat := -1
	best := 0
	n := len(t.order)
	for i := 1; i <= n; i++ {
		seat := t.order[(t.dealer+i)%n]
		if t.seats[seat].Folded {
			continue
		}
		if s := strength[seat]; bestSeat == -1 || s > best {
			best = s
			bestSeat = seat
		}
	}
	return bestSeat
}

// recordBankrupt flags every in-hand player who finished the hand with an
// empty stack. Removing them from the table is the caller's call.
func (t *Table) recordBankrupt() {
	for _, seat := range t.order {
		p := t.seats[seat]
		if p.Chips == 0 {
			t.losers = append(t.losers, Result{Name: p.Name, Seat: seat})
		}
	}
}
