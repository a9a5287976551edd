package table

// Player actions. Every action is accepted only from the player whose turn
// it is, while a hand is live; rejected actions leave all state untouched
// and return a sentinel (-1 or false).

// Bet commits up to amount chips on top of the player's current bet,
// clamped to their stack (reaching it means going all-in). Returns the
// chips actually moved, or -1 when the amount is negative, no hand is
// live, or name is not the current actor.
func (t *Table) Bet(name string, amount int) int {
	if amount < 0 {
		return -1
	}
	p := t.actor()
	if p == nil || p.Name != name {
		return -1
	}
	placed := p.applyBet(amount)
	t.progress()
	return placed
}

// Call matches the street's maximum bet, going all-in when the stack does
// not cover it. Returns the chips moved, -1 on rejection.
func (t *Table) Call(name string) int {
	p := t.actor()
	if p == nil || p.Name != name {
		return -1
	}
	placed := p.applyBet(t.maxCurrentBet() - p.Bet)
	t.progress()
	return placed
}

// AllIn commits the player's entire remaining stack. Returns the chips
// moved, -1 on rejection.
func (t *Table) AllIn(name string) int {
	p := t.actor()
	if p == nil || p.Name != name {
		return -1
	}
	placed := p.applyBet(p.Chips)
	t.progress()
	return placed
}

// Check passes the action without betting. It is legal only when the
// player's current bet already matches the street maximum — which covers
// the big blind (or last straddler) closing the opening round: their forced
// bet is the maximum, and the check goes through as a zero-amount call.
func (t *Table) Check(name string) bool {
	p := t.actor()
	if p == nil || p.Name != name {
		return false
	}
	if p.Bet != t.maxCurrentBet() {
		return false
	}
	p.applyBet(0)
	t.progress()
	return true
}

// Fold gives up the hand. The player's current bet is swept into the pot
// immediately and they take no further part in action or ranking.
func (t *Table) Fold(name string) bool {
	p := t.actor()
	if p == nil || p.Name != name {
		return false
	}
	t.hand.Pot += p.Bet
	t.hand.Contributions[p.Seat] += p.Bet
	p.Bet = 0
	p.Folded = true
	p.Acted = true
	t.progress()
	return true
}

func (t *Table) progress() {
	t.notify(EventActorChanged)
	t.advance()
}

// advance re-evaluates the hand after any mutation: it settles immediately
// if one player remains, advances the actor or closes the betting round,
// and cascades through streets while nobody is left who can act (everyone
// remaining all-in). It also runs once at the deal, so a blind poster who
// went all-in is never left holding the action.
func (t *Table) advance() {
	for t.hand != nil && t.hand.Round != Showdown {
		if t.remainingInHand() == 1 {
			t.settleFoldout()
			return
		}
		if !t.roundComplete() {
			return
		}
		t.sweepBets()

		step := streetSteps[t.hand.Round]
		if step.next == Showdown {
			t.hand.Round = Showdown
			t.showdown()
			return
		}
		for i := 0; i < step.burn; i++ {
			t.hand.deck.Draw()
		}
		t.hand.Board = append(t.hand.Board, t.hand.deck.DrawN(step.reveal)...)
		t.hand.Round = step.next

		for _, seat := range t.order {
			t.seats[seat].Acted = false
		}
		t.current = t.firstAfterDealer()
		t.notify(EventStreetRevealed)
	}
}

// roundComplete scans the ring in seat order from the current actor. The
// round is open while some non-folded, non-all-in player either has not
// acted or has not matched the street maximum; that player becomes the
// current actor.
func (t *Table) roundComplete() bool {
	max := t.maxCurrentBet()
	n := len(t.order)
	for i := 0; i < n; i++ {
		pos := (t.current + i) % n
		p := t.seatAt(pos)
		if p.Folded || p.AllIn {
			continue
		}
		if !p.Acted || p.Bet != max {
			t.current = pos
			return false
		}
	}
	return true
}

// sweepBets moves every outstanding bet into the pot and the per-seat
// contribution ledger at the close of a betting round.
func (t *Table) sweepBets() {
	for _, seat := range t.order {
		p := t.seats[seat]
		if p.Bet > 0 {
			t.hand.Pot += p.Bet
			t.hand.Contributions[seat] += p.Bet
			p.Bet = 0
		}
	}
}

// firstAfterDealer returns the first non-folded ring position clockwise
// from the dealer. An all-in player can be returned here; the round
// completion scan skips them for acting while keeping them in the pot.
func (t *Table) firstAfterDealer() int {
	n := len(t.order)
	for i := 1; i <= n; i++ {
		pos := (t.dealer + i) % n
		if !t.seatAt(pos).Folded {
			return pos
		}
	}
	return -1
}

// remainingInHand counts players still holding live cards.
func (t *Table) remainingInHand() int {
	count := 0
	for _, seat := range t.order {
		if !t.seats[seat].Folded {
			count++
		}
	}
	return count
}
