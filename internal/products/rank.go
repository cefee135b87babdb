package products

import "sort"

// rankFollowedFirst moves followed-shop rows ahead of the rest without
// disturbing the relative order inside either group.
func rankFollowedFirst(rows []RankedProduct) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].IsFollowedShop && !rows[j].IsFollowedShop
	})
}
