package strategy

import (
	"fmt"

	"settlers/internal/domain"
)

// DiscardRecommendation is the scored outcome of the 7-card discard rule.
type DiscardRecommendation struct {
	Discard   domain.ResourceSet
	Reasoning string
}

// PlanDiscard computes the discard set for a player over the resource
// limit. Resources reserved for the nearest completable build are
// protected first; the remainder is discarded lowest-keep-priority first,
// ties broken by discarding the highest-count resource to preserve
// variety. The result always sums to exactly floor(total/2) when a
// discard is due and is all-zero otherwise.
func PlanDiscard(state *domain.GameState, playerID string, w Weights) DiscardRecommendation {
	have := domain.CurrentResources(state, playerID)
	total := have.Total()
	if total <= 7 {
		return DiscardRecommendation{Discard: domain.NewResourceSet(), Reasoning: "No discard needed"}
	}
	required := total / 2

	player := state.Player(playerID)
	phase := domain.ProgressFoundation
	if player != nil {
		phase = domain.ProgressPhaseFor(player.Score)
	}
	table := w.DiscardTable(phase)

	protected := protectedForNearestBuild(have)
	spendable := have.Clone()
	spendable.Subtract(protected)

	discard := domain.NewResourceSet()
	taken := 0
	taken += drainPool(spendable, discard, required-taken, table)
	if taken < required {
		// Not enough unprotected resources; the limit wins over the build.
		taken += drainPool(protected, discard, required-taken, table)
	}

	reason := fmt.Sprintf("Discard %d of %d (%s phase), protecting nearest build", required, total, phase)
	return DiscardRecommendation{Discard: discard, Reasoning: reason}
}

// protectedForNearestBuild reserves the held portion of the cost of the
// build closest to affordable, preferring higher-value builds on ties.
func protectedForNearestBuild(have domain.ResourceSet) domain.ResourceSet {
	ordered := []domain.BuildKind{domain.BuildSettlement, domain.BuildCity, domain.BuildRoad, domain.BuildDevCard}
	bestDeficit := -1
	var bestKind domain.BuildKind
	for _, kind := range ordered {
		deficit := domain.DeficitTotal(have, domain.BuildCosts[kind])
		if bestDeficit == -1 || deficit < bestDeficit {
			bestDeficit = deficit
			bestKind = kind
		}
	}

	protected := domain.NewResourceSet()
	cost := domain.BuildCosts[bestKind]
	for _, r := range domain.ResourceTypes {
		keep := cost[r]
		if have[r] < keep {
			keep = have[r]
		}
		if keep > 0 {
			protected[r] = keep
		}
	}
	return protected
}

// drainPool moves up to n resources from pool into discard, lowest keep
// priority first, ties broken by highest remaining count then canonical
// order. Returns how many were taken.
func drainPool(pool, discard domain.ResourceSet, n int, table DiscardPriorities) int {
	taken := 0
	for taken < n {
		pick := domain.Resource("")
		for _, r := range domain.ResourceTypes {
			if pool[r] <= 0 {
				continue
			}
			if pick == "" {
				pick = r
				continue
			}
			if table[r] < table[pick] || (table[r] == table[pick] && pool[r] > pool[pick]) {
				pick = r
			}
		}
		if pick == "" {
			break
		}
		pool[pick]--
		discard[pick]++
		taken++
	}
	return taken
}
