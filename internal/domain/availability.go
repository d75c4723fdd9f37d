package domain

import "sort"

// ZoneAvailability is one entry of an availability answer
type ZoneAvailability struct {
	ZoneID         int64
	NameES         string
	NameEN         string
	AvailableSlots int
}

// ComputeAvailability counts, per zone, suitable tables that are not occupied.
// Zones in blockedZones and zones without free tables are omitted.
// Result is ordered by zone id.
func ComputeAvailability(zones []*Zone, suitableTables []*Table, occupiedTables, blockedZones map[int64]struct{}) []ZoneAvailability {
	free := make(map[int64]int, len(zones))
	for _, t := range suitableTables {
		if _, blocked := blockedZones[t.ZoneID]; blocked {
			continue
		}
		if _, occupied := occupiedTables[t.ID]; occupied {
			continue
		}
		free[t.ZoneID]++
	}

	result := make([]ZoneAvailability, 0, len(free))
	for _, z := range zones {
		slots := free[z.ID]
		if slots <= 0 {
			continue
		}
		result = append(result, ZoneAvailability{
			ZoneID:         z.ID,
			NameES:         z.LocalizedName("es"),
			NameEN:         z.LocalizedName("en"),
			AvailableSlots: slots,
		})
	}

	SortAvailability(result)
	return result
}

// FlexibleAvailability reports every non-blocked zone with UnboundedSlots
func FlexibleAvailability(zones []*Zone, blockedZones map[int64]struct{}) []ZoneAvailability {
	result := make([]ZoneAvailability, 0, len(zones))
	for _, z := range zones {
		if _, blocked := blockedZones[z.ID]; blocked {
			continue
		}
		result = append(result, ZoneAvailability{
			ZoneID:         z.ID,
			NameES:         z.LocalizedName("es"),
			NameEN:         z.LocalizedName("en"),
			AvailableSlots: UnboundedSlots,
		})
	}

	SortAvailability(result)
	return result
}

// SortAvailability orders entries by zone id
func SortAvailability(items []ZoneAvailability) {
	sort.Slice(items, func(i, j int) bool { return items[i].ZoneID < items[j].ZoneID })
}

// FirstFreeTable picks the suitable table with the lowest id that is not occupied
func FirstFreeTable(suitable []*Table, occupied map[int64]struct{}) *Table {
	var best *Table
	for _, t := range suitable {
		if _, taken := occupied[t.ID]; taken {
			continue
		}
		if best == nil || t.ID < best.ID {
			best = t
		}
	}
	return best
}

// IDSet builds a set from a list of ids
func IDSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
