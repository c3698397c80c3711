package grammar

import (
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/symbol"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/util"
)

// computeFirst implements the FIRST fixed-point of §4.C. Every Terminal,
// Epsilon, and EndMarker starts as (and remains) its own singleton; every
// Nonterminal starts empty and grows by repeated passes over the
// productions until a full pass changes nothing.
func (g *Grammar) computeFirst() {
	g.first = map[Symbol]util.KeySet[Symbol]{
		symbol.EndMarker: util.NewKeySet(symbol.EndMarker),
		symbol.Epsilon:   util.NewKeySet(symbol.Epsilon),
	}
	for _, t := range g.terminals {
		g.first[t] = util.NewKeySet(t)
	}
	for _, nt := range g.nonTerminals {
		if _, ok := g.first[nt]; !ok {
			g.first[nt] = util.NewKeySet[Symbol]()
		}
	}

	for {
		changed := false
		for _, p := range g.productions {
			firstOfRHS, _ := g.firstOfSequence(p.RHS)
			if g.first[p.LHS].AddAll(firstOfRHS) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

// computeFollow implements the FOLLOW fixed-point of §4.C. It must run
// after computeFirst, since it reads the finalized FIRST map; New always
// calls them in that order.
func (g *Grammar) computeFollow() {
	g.follow = map[Symbol]util.KeySet[Symbol]{}
	for _, nt := range g.nonTerminals {
		g.follow[nt] = util.NewKeySet[Symbol]()
	}
	g.follow[g.StartSymbol()].Add(symbol.EndMarker)

	for {
		changed := false
		for _, p := range g.productions {
			for i, x := range p.RHS {
				if !x.IsNonTerminal() {
					continue
				}
				beta := p.RHS[i+1:]
				firstBeta, derivesEpsilon := g.firstOfSequence(beta)

				withoutEpsilon := firstBeta.Difference(util.NewKeySet(symbol.Epsilon))
				if g.follow[x].AddAll(withoutEpsilon) {
					changed = true
				}

				if derivesEpsilon {
					if g.follow[x].AddAll(g.follow[p.LHS]) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}
}

// firstOfSequence computes FIRST(β) for β = beta against the current FIRST
// map, per the three-step definition in §4.C. The second return value
// reports whether β can derive ε (equivalently, whether Epsilon ended up in
// the result).
func (g Grammar) firstOfSequence(beta []Symbol) (util.KeySet[Symbol], bool) {
	result := util.NewKeySet[Symbol]()
	canDeriveEpsilon := true

	for _, x := range beta {
		firstX := g.first[x]
		result.AddAll(firstX.Difference(util.NewKeySet(symbol.Epsilon)))
		if !firstX.Has(symbol.Epsilon) {
			canDeriveEpsilon = false
			break
		}
	}

	if canDeriveEpsilon {
		result.Add(symbol.Epsilon)
	}
	return result, canDeriveEpsilon
}

// FIRST returns FIRST(s) for a single symbol s.
func (g Grammar) FIRST(s Symbol) util.KeySet[Symbol] {
	return g.first[s].Copy()
}

// FirstOfSequence returns FIRST(β) for a sequence of symbols, along with
// whether β can derive ε. It is exported for the LL(1) and SLR(1) builders,
// which both need FIRST of a production's right-hand side.
func (g Grammar) FirstOfSequence(beta []Symbol) (util.KeySet[Symbol], bool) {
	return g.firstOfSequence(beta)
}

// FOLLOW returns FOLLOW(nt) for a nonterminal nt. Its elements are drawn
// from terminals and EndMarker only; Epsilon never appears.
func (g Grammar) FOLLOW(nt Symbol) util.KeySet[Symbol] {
	return g.follow[nt].Copy()
}
