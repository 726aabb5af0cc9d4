package sync

import "encoding/json"

// mergePatch overlays a field patch onto an entity through its JSON form,
// so unmodified fields survive untouched regardless of entity type.
func mergePatch[E any](current E, patch map[string]any) (E, error) {
	var merged E

	data, err := json.Marshal(current)
	if err != nil {
		return merged, err
	}
	var asMap map[string]any
	if err := json.Unmarshal(data, &asMap); err != nil {
		return merged, err
	}
	for k, v := range patch {
		asMap[k] = v
	}
	out, err := json.Marshal(asMap)
	if err != nil {
		return merged, err
	}
	if err := json.Unmarshal(out, &merged); err != nil {
		return merged, err
	}
	return merged, nil
}
