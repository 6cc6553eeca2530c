// Package mana implements the terrain-typed cost model: cost parsing, the
// cost-modifier pipeline, and payment planning against ready orbs and
// terrain statistics.
package mana

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

// Cost is a parsed play cost: a generic component payable with any source
// plus terrain-specific components.
type Cost struct {
	Generic  int
	Forest   int
	Mountain int
	Water    int
}

// ParseCost parses a cost string such as "{2}", "{1}{F}" or "{M}{M}{W}".
// Symbols: numbers for generic, {F} forest, {M} mountain, {W} water.
func ParseCost(costStr string) (Cost, error) {
	cost := Cost{}
	if costStr == "" {
		return cost, nil
	}

	pattern := regexp.MustCompile(`\{([^}]+)\}`)
	matches := pattern.FindAllStringSubmatch(costStr, -1)
	if len(matches) == 0 {
		return cost, fmt.Errorf("malformed cost string %q", costStr)
	}

	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))
		switch symbol {
		case "F":
			cost.Forest++
		case "M":
			cost.Mountain++
		case "W":
			cost.Water++
		default:
			num, err := strconv.Atoi(symbol)
			if err != nil {
				return Cost{}, fmt.Errorf("unknown cost symbol {%s}", symbol)
			}
			cost.Generic += num
		}
	}
	return cost, nil
}

// Specific returns the terrain-specific components as statistics.
func (c Cost) Specific() card.Statistics {
	return card.Statistics{Forest: c.Forest, Mountain: c.Mountain, Water: c.Water}
}

// Total returns the converted total cost.
func (c Cost) Total() int {
	return c.Generic + c.Forest + c.Mountain + c.Water
}

// AddGeneric returns a copy with n added to the generic component.
func (c Cost) AddGeneric(n int) Cost {
	c.Generic += n
	return c
}

// String renders the cost back into symbol form.
func (c Cost) String() string {
	var b strings.Builder
	if c.Generic > 0 || c.Total() == 0 {
		fmt.Fprintf(&b, "{%d}", c.Generic)
	}
	for i := 0; i < c.Forest; i++ {
		b.WriteString("{F}")
	}
	for i := 0; i < c.Mountain; i++ {
		b.WriteString("{M}")
	}
	for i := 0; i < c.Water; i++ {
		b.WriteString("{W}")
	}
	return b.String()
}

// Modified applies active cost modifiers to the generic component of a base
// cost. Order: all increases, all decreases, clamp to zero, the highest
// active set (overriding prior arithmetic), raise to the highest minimum,
// cap to the lowest maximum, final clamp to zero. Terrain-specific
// components are never modified.
func Modified(base Cost, mods []card.CostModifier, ctx card.CostContext) Cost {
	applicable := make([]card.CostModifier, 0, len(mods))
	for _, m := range mods {
		if m.Applies(ctx) {
			applicable = append(applicable, m)
		}
	}
	// Result must not depend on collection order.
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Kind < applicable[j].Kind
	})

	generic := base.Generic
	for _, m := range applicable {
		if m.Kind == card.CostIncrease {
			generic += m.Amount
		}
	}
	for _, m := range applicable {
		if m.Kind == card.CostDecrease {
			generic -= m.Amount
		}
	}
	if generic < 0 {
		generic = 0
	}

	set, hasSet := 0, false
	for _, m := range applicable {
		if m.Kind == card.CostSet && (!hasSet || m.Amount > set) {
			set, hasSet = m.Amount, true
		}
	}
	if hasSet {
		generic = set
	}

	for _, m := range applicable {
		if m.Kind == card.CostMinimum && generic < m.Amount {
			generic = m.Amount
		}
	}
	capAmount, hasCap := 0, false
	for _, m := range applicable {
		if m.Kind == card.CostMaximum && (!hasCap || m.Amount < capAmount) {
			capAmount, hasCap = m.Amount, true
		}
	}
	if hasCap && generic > capAmount {
		generic = capAmount
	}
	if generic < 0 {
		generic = 0
	}

	out := base
	out.Generic = generic
	return out
}
