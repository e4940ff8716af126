package config

// Merge returns a new store holding base overlaid with overlay. Mappings are
// merged recursively; any other value in overlay replaces the one in base.
// Neither input is modified.
func Merge(base, overlay *Store) *Store {
	if base == nil {
		base = Empty
	}
	if overlay == nil {
		overlay = Empty
	}
	return newStore(deepMerge(base.values.clone(), overlay.values), base.path)
}

// deepMerge merges src into dst, which must be owned by the caller.
func deepMerge(dst, src Mapping) Mapping {
	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = clone(srcVal)
			continue
		}

		srcMap, srcIsMap := srcVal.(Mapping)
		dstMap, dstIsMap := dstVal.(Mapping)
		if srcIsMap && dstIsMap {
			dst[key] = deepMerge(dstMap, srcMap)
		} else {
			dst[key] = clone(srcVal)
		}
	}
	return dst
}
