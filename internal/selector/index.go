package selector

import "pulsecheck/internal/model"

// Index groups a catalog by construct, keeping catalog order inside every
// bucket so a scan over a bucket sees exactly the items, in exactly the
// order, that a scan over the full catalog filtered by construct would.
type Index struct {
	byConstruct    map[model.Construct][]model.Item
	padByConstruct map[model.Construct][]model.Item
	pad            []model.Item // explore + diagnostic, whole catalog
	constructs     []model.Construct
	size           int
}

// NewIndex builds an index over items. items is not retained or modified.
func NewIndex(items []model.Item) *Index {
	idx := &Index{
		byConstruct:    make(map[model.Construct][]model.Item),
		padByConstruct: make(map[model.Construct][]model.Item),
		size:           len(items),
	}
	for _, it := range items {
		if _, seen := idx.byConstruct[it.Construct]; !seen {
			idx.constructs = append(idx.constructs, it.Construct)
		}
		idx.byConstruct[it.Construct] = append(idx.byConstruct[it.Construct], it)
		if isPadItem(it) {
			idx.padByConstruct[it.Construct] = append(idx.padByConstruct[it.Construct], it)
			idx.pad = append(idx.pad, it)
		}
	}
	return idx
}

// Len returns the number of catalog entries indexed
func (x *Index) Len() int {
	return x.size
}

// Constructs returns every construct represented in the catalog, in order
// of first appearance.
func (x *Index) Constructs() []model.Construct {
	return x.constructs
}

// ForConstruct returns the construct's items in catalog order
func (x *Index) ForConstruct(c model.Construct) []model.Item {
	return x.byConstruct[c]
}

// padFor returns unselected pad items for c
func (x *Index) padFor(c model.Construct, picked map[string]bool) []model.Item {
	return unpicked(x.padByConstruct[c], picked)
}

// padAny returns unselected pad items across the whole catalog
func (x *Index) padAny(picked map[string]bool) []model.Item {
	return unpicked(x.pad, picked)
}

func isPadItem(it model.Item) bool {
	return it.Intent == model.IntentExplore && it.Tone == model.ToneDiagnostic
}

func unpicked(items []model.Item, picked map[string]bool) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if !picked[it.ItemID] {
			out = append(out, it)
		}
	}
	return out
}
