package ecs

import "sort"

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype table.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the archetypes and singletons. Archetypes that were created
// but currently hold no entities are not counted.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		SingletonCount: len(s.singletons),
		SingletonTypes: s.singletonTypeNames(),
	}

	for _, archetype := range s.archetypes {
		if archetype.live == 0 {
			continue
		}
		names := make([]string, len(archetype.types))
		for i, t := range archetype.types {
			names[i] = t.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    archetype.live,
		})
		stats.TotalEntityCount += archetype.live
	}

	sort.Slice(stats.ArchetypeBreakdown, func(i, j int) bool {
		return stats.ArchetypeBreakdown[i].EntityCount > stats.ArchetypeBreakdown[j].EntityCount
	})
	stats.ArchetypeCount = len(stats.ArchetypeBreakdown)
	return stats
}
