package engine

import "strings"

// ColumnRole is the semantic meaning assigned to a table column based on
// its header text.
type ColumnRole string

const (
	RoleDescription ColumnRole = "description"
	RoleQuantity    ColumnRole = "quantity"
	RoleUnitPrice   ColumnRole = "unit_price"
	RoleTotalPrice  ColumnRole = "total_price"
)

// Item is one extracted line item: a subset of the column roles mapped to
// normalized cell values.
type Item map[ColumnRole]string

// ExtractItems extracts line items from every candidate item table.
//
// A table qualifies only if its header row carries both a description
// signal and a quantity ("qty") cell; anything else is ignored without
// error, so a document with no classifiable item table simply yields no
// items. Tables are independent: reordering them reorders the resulting
// items but never changes the set.
func ExtractItems(rs RuleSet, tables []Table) []Item {
	var items []Item
	for _, table := range tables {
		items = append(items, extractTableItems(rs, table)...)
	}
	return items
}

func extractTableItems(rs RuleSet, table Table) []Item {
	if len(table) == 0 || len(table[0]) == 0 {
		return nil
	}

	header := make([]string, len(table[0]))
	for i, cell := range table[0] {
		header[i] = strings.ToLower(cellText(cell))
	}
	if !isItemTable(header, rs.DescriptionSignals()) {
		return nil
	}

	roles := classifyHeader(header, rs.DescriptionSignals())

	var items []Item
	for _, row := range table[1:] {
		if rowEmpty(row) {
			continue
		}
		item := make(Item, len(roles))
		for role, idx := range roles {
			if idx >= len(row) {
				continue
			}
			if v := CollapseWhitespace(cellText(row[idx])); v != "" {
				item[role] = v
			}
		}
		if len(item) > 0 {
			items = append(items, item)
		}
	}
	return items
}

// isItemTable reports whether a lower-cased header row marks a candidate
// item table: at least one description-signal cell and one qty cell.
func isItemTable(header, descSignals []string) bool {
	var hasDesc, hasQty bool
	for _, h := range header {
		if !hasDesc {
			for _, sig := range descSignals {
				if strings.Contains(h, sig) {
					hasDesc = true
					break
				}
			}
		}
		if strings.Contains(h, "qty") {
			hasQty = true
		}
	}
	return hasDesc && hasQty
}

// classifyHeader assigns at most one ColumnRole per header cell using
// ordered substring tests; the first matching rule wins for a cell, and a
// cell matching none stays unclassified. When several cells claim the
// same role, the right-most one keeps it.
func classifyHeader(header, descSignals []string) map[ColumnRole]int {
	roles := make(map[ColumnRole]int)
	for idx, h := range header {
		switch {
		case matchesAny(h, descSignals):
			roles[RoleDescription] = idx
		case strings.Contains(h, "qty"):
			roles[RoleQuantity] = idx
		case strings.Contains(h, "unit price") || (strings.Contains(h, "price") && strings.Contains(h, "unit")):
			roles[RoleUnitPrice] = idx
		case strings.Contains(h, "net amount") || strings.Contains(h, "total amount") || strings.Contains(h, "amount"):
			roles[RoleTotalPrice] = idx
		}
	}
	return roles
}

func matchesAny(h string, signals []string) bool {
	for _, sig := range signals {
		if strings.Contains(h, sig) {
			return true
		}
	}
	return false
}

func rowEmpty(row []*string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cellText(cell)) != "" {
			return false
		}
	}
	return true
}

func cellText(c *string) string {
	if c == nil {
		return ""
	}
	return *c
}
