package services

import "freight-eda/internal/domain"

// InnerJoin joins loads with service-performance rows on LOAD_ID.
//
// Keys present on one side only are dropped. A key that repeats on either
// side expands into the cartesian product of its rows; this is reported in
// the diagnostics, never corrected. Empty keys never match. Output follows
// left order, then right order within a key.
func InnerJoin(
	loads []domain.LoadRecord,
	service []domain.ServicePerformanceRecord,
) ([]domain.JoinedLoad, domain.JoinDiagnostics) {
	byKey := make(map[string][]int, len(service))
	for i, s := range service {
		if s.LoadID == "" {
			continue
		}
		byKey[s.LoadID] = append(byKey[s.LoadID], i)
	}

	joined := make([]domain.JoinedLoad, 0, len(loads))
	leftKeys := make(map[string]struct{}, len(loads))
	for _, l := range loads {
		leftKeys[l.LoadID] = struct{}{}
		if l.LoadID == "" {
			continue
		}
		for _, idx := range byKey[l.LoadID] {
			joined = append(joined, domain.JoinedLoad{Load: l, Service: service[idx]})
		}
	}

	rightKeys := make(map[string]struct{}, len(service))
	for _, s := range service {
		rightKeys[s.LoadID] = struct{}{}
	}

	joinKeys := make(map[string]struct{}, len(joined))
	for _, j := range joined {
		joinKeys[j.Load.LoadID] = struct{}{}
	}

	diag := domain.JoinDiagnostics{
		LeftRows:        len(loads),
		RightRows:       len(service),
		JoinedRows:      len(joined),
		LeftDuplicates:  len(loads) - len(leftKeys),
		RightDuplicates: len(service) - len(rightKeys),
		JoinDuplicates:  len(joined) - len(joinKeys),
	}

	for k := range leftKeys {
		if _, ok := byKey[k]; !ok && k != "" {
			diag.LeftOnlyKeys++
		}
	}
	for k := range byKey {
		if _, ok := leftKeys[k]; !ok {
			diag.RightOnlyKeys++
		}
	}

	return joined, diag
}
