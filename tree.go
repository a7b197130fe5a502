package corral

// The value tree is the in-progress structured LLM output: a recursive union
// of scalars, []any and map[string]any, with Sentinel leaves inserted by the
// action resolver. The two functions below are invoked once per completed
// tree, not per chunk. The orchestrator first checks ContainsRefrain; if it
// returns true the whole tree is discarded and a single refrain signal is
// surfaced. Otherwise RemoveFiltered produces the tree to deliver.

// ContainsRefrain reports whether the Refrained sentinel appears anywhere in
// the tree. It descends maps and slices and short-circuits on the first
// match. Scalars that are not sentinels never match.
func ContainsRefrain(tree any) bool {
	switch t := tree.(type) {
	case Sentinel:
		return t == Refrained
	case []any:
		for _, item := range t {
			if ContainsRefrain(item) {
				return true
			}
		}
	case map[string]any:
		for _, value := range t {
			if ContainsRefrain(value) {
				return true
			}
		}
	}
	return false
}

// RemoveFiltered rebuilds the tree with every Filtered leaf removed.
//
// Containers are handled asymmetrically, and the asymmetry is part of the
// contract:
//
//   - A list entry that is itself a container and becomes empty after
//     filtering is dropped from the list.
//   - A mapping key whose value is a mapping is kept even when that mapping
//     filters to empty.
//   - A mapping key whose value is a list that filters to empty is dropped
//     along with the key.
//
// Scalars that are not the Filtered sentinel always survive. The function is
// idempotent. It does not treat Refrained specially; run ContainsRefrain
// first.
func RemoveFiltered(tree any) any {
	switch t := tree.(type) {
	case Sentinel:
		if t == Filtered {
			return nil
		}
		return t
	case []any:
		return removeFilteredList(t)
	case map[string]any:
		return removeFilteredMap(t)
	default:
		return tree
	}
}

func removeFilteredList(items []any) []any {
	filtered := make([]any, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case Sentinel:
			if it == Filtered {
				continue
			}
			filtered = append(filtered, it)
		case []any:
			inner := removeFilteredList(it)
			if len(inner) > 0 {
				filtered = append(filtered, inner)
			}
		case map[string]any:
			inner := removeFilteredMap(it)
			if len(inner) > 0 {
				filtered = append(filtered, inner)
			}
		default:
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func removeFilteredMap(m map[string]any) map[string]any {
	filtered := make(map[string]any, len(m))
	for key, value := range m {
		switch v := value.(type) {
		case Sentinel:
			if v == Filtered {
				continue
			}
			filtered[key] = v
		case []any:
			inner := removeFilteredList(v)
			if len(inner) > 0 {
				filtered[key] = inner
			}
		case map[string]any:
			// Mapping keys keep their (possibly empty) mapping.
			filtered[key] = removeFilteredMap(v)
		default:
			filtered[key] = value
		}
	}
	return filtered
}
