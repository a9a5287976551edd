package table

// postBlindsAndStraddles posts the forced bets for a new hand: small blind
// one seat past the dealer, big blind two past, then the straddle chain in
// seat order, each straddle doubling the last. The first voluntary actor is
// the seat after the last poster.
func (t *Table) postBlindsAndStraddles() {
	n := len(t.order)
	t.current = (t.dealer + 1) % n
	t.postBlind(t.cfg.SmallBlind)

	t.current = (t.dealer + 2) % n
	t.postBlind(t.cfg.BigBlind)

	limit := t.maxStraddles()
	for i := 0; i < limit; i++ {
		next := (t.current + 1) % n
		p := t.seatAt(next)
		amount := t.cfg.BigBlind << (i + 1)
		if !p.Straddling || p.Chips < amount {
			break
		}
		t.current = next
		t.postBlind(amount)
	}

	t.current = (t.current + 1) % n
}

// postBlind posts a forced bet for the player at the current position,
// capped by the blind amount, the poster's own stack, and the best stack
// any other in-hand player could still match. Forced bets do not count as
// having acted.
func (t *Table) postBlind(amount int) int {
	p := t.seatAt(t.current)
	cap := t.bestOtherStack(t.current)
	if amount < cap {
		cap = amount
	}
	if total := p.Bet + p.Chips; total < cap {
		cap = total
	}
	posted := p.applyBet(cap - p.Bet)
	p.Acted = false
	return posted
}

// maxStraddles returns how many straddles this hand may see: none heads-up,
// the configured limit when it fits, and active players minus two for an
// unlimited (-1) or oversized limit. Limits below -1 are a configuration
// mistake and disable straddling.
func (t *Table) maxStraddles() int {
	n := len(t.order)
	if n <= 2 {
		return 0
	}
	if t.cfg.StraddleLimit >= 0 && t.cfg.StraddleLimit <= n-2 {
		return t.cfg.StraddleLimit
	}
	if t.cfg.StraddleLimit == -1 || t.cfg.StraddleLimit > n-2 {
		return n - 2
	}
	t.logger.Warn("invalid straddle limit", "limit", t.cfg.StraddleLimit)
	return 0
}
