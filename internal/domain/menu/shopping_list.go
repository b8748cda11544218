package menu

import "github.com/google/uuid"

// ShoppingListItem is an aggregated ingredient across all meals of a
// plan, uniquely keyed by the exact (name, unit) pair.
type ShoppingListItem struct {
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	Quantity      float64 `json:"quantity"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// ShoppingList is the flat, deduplicated ingredient list for a plan.
type ShoppingList struct {
	MenuID    uuid.UUID          `json:"menu_id"`
	Items     []ShoppingListItem `json:"items"`
	TotalCost float64            `json:"total_cost"`
}

// BuildShoppingList aggregates ingredient lines across every meal of the
// plan. Grouping is case-sensitive on (name, unit) with no unit
// conversion; quantities and estimated costs are summed. Items keep the
// insertion order of their first occurrence.
func BuildShoppingList(p *Plan) *ShoppingList {
	type key struct {
		name string
		unit string
	}

	index := make(map[key]int)
	list := &ShoppingList{MenuID: p.ID, Items: []ShoppingListItem{}}

	for _, meal := range p.Meals {
		for _, line := range meal.Ingredients {
			k := key{name: line.Name, unit: line.Unit}
			if i, ok := index[k]; ok {
				list.Items[i].Quantity += line.Quantity
				list.Items[i].EstimatedCost += line.EstimatedCost
			} else {
				index[k] = len(list.Items)
				list.Items = append(list.Items, ShoppingListItem{
					Name:          line.Name,
					Unit:          line.Unit,
					Quantity:      line.Quantity,
					EstimatedCost: line.EstimatedCost,
				})
			}
			list.TotalCost += line.EstimatedCost
		}
	}
	return list
}
