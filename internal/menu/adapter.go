// Package menu normalizes upstream menu payloads into the flat shape the
// rest of the system consumes: every item and side gets a resolved display
// price while its original pricing spec is kept for later recomputation.
package menu

import (
	"micarta/internal/domain"
	"micarta/internal/pricing"
)

// Adapt is a pure transform over a menu payload. Missing sections, items or
// sides are treated as empty sequences, so partial upstream data never fails.
func Adapt(payload domain.MenuPayload) domain.MenuPayload {
	sections := make([]domain.MenuSection, 0, len(payload.Menu))
	for _, section := range payload.Menu {
		items := make([]domain.MenuEntry, 0, len(section.Items))
		for _, item := range section.Items {
			if item.Pricing != nil {
				item.Price = pricing.Resolve(item.Pricing, nil)
			}
			if len(item.Sides) > 0 {
				sides := make([]domain.MenuSide, 0, len(item.Sides))
				for _, side := range item.Sides {
					if side.Pricing != nil {
						side.Price = pricing.Resolve(side.Pricing, nil)
					}
					sides = append(sides, side)
				}
				item.Sides = sides
			}
			items = append(items, item)
		}
		section.Items = items
		sections = append(sections, section)
	}
	return domain.MenuPayload{Menu: sections}
}
