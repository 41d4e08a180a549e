package strategy

import (
	"catan/game"
)

// maxTradeSteps bounds trade planning for a single build.
const maxTradeSteps = 32

// Trade is one bank or port exchange: the ledger's rate of Give for one Get.
type Trade struct {
	Give game.Resource
	Get  game.Resource
}

// PlanTrades returns the bank trades that make cost affordable from hand, in
// the order they should be made. Each step gives away the resource that
// would have the most left over after the trade, beyond what cost needs of
// it; ties go to the resource with the higher rate. The first resource still
// short of cost is received. Planning fails as soon as no trade leaves a
// non-negative surplus.
func PlanTrades(hand, rates [game.NumResources]int, cost game.Cost) ([]Trade, bool) {
	var trades []Trade
	for step := 0; ; step++ {
		missing, short := shortfall(hand, cost)
		if !short {
			return trades, true
		}
		if step == maxTradeSteps {
			return nil, false
		}

		give := game.Resources[0]
		surplus := hand[give] - cost[give] - rates[give]
		for _, r := range game.Resources[1:] {
			remaining := hand[r] - cost[r] - rates[r]
			if remaining > surplus || (remaining == surplus && rates[r] >= rates[give]) {
				give = r
				surplus = remaining
			}
		}
		if surplus < 0 {
			return nil, false
		}

		hand[give] -= rates[give]
		hand[missing]++
		trades = append(trades, Trade{Give: give, Get: missing})
	}
}

// shortfall returns the first resource, in ledger order, that hand holds
// less of than cost.
func shortfall(hand [game.NumResources]int, cost game.Cost) (game.Resource, bool) {
	for _, r := range game.Resources {
		if hand[r] < cost[r] {
			return r, true
		}
	}
	return 0, false
}

// afford makes the trades needed for cost. It reports false, having traded
// nothing, when no plan exists.
func afford(me *game.Ledger, cost game.Cost) (bool, error) {
	if me.CanAfford(cost) {
		return true, nil
	}
	trades, ok := PlanTrades(me.Resources, me.TradeRates, cost)
	if !ok {
		return false, nil
	}
	for _, t := range trades {
		if err := me.PortResource(t.Give, t.Get); err != nil {
			return false, err
		}
	}
	return me.CanAfford(cost), nil
}
