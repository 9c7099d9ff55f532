package core

// AddLabel appends a label to the collection. On an identifier collision the
// existing label wins and the input collection is returned unchanged, so
// duplicate-name labels cannot coexist.
func AddLabel(labels []Label, label Label) []Label {
	if label.Validate() != nil {
		return labels
	}
	for _, l := range labels {
		if l.ID == label.ID {
			return labels
		}
	}
	out := make([]Label, len(labels), len(labels)+1)
	copy(out, labels)
	return append(out, label)
}

// RenameLabel replaces the label stored under oldID. When the identifier
// changes, every transaction referencing oldID is rewritten to the new ID so
// both collections stay consistent; callers must persist the two results
// together. Renaming onto an identifier that already belongs to another label
// is refused, mirroring the create collision rule. A rename to an equal label
// returns both inputs unchanged.
func RenameLabel(labels []Label, transactions []Transaction, oldID string, newLabel Label) ([]Label, []Transaction) {
	if newLabel.Validate() != nil {
		return labels, transactions
	}

	oldIdx := -1
	for i, l := range labels {
		if l.ID == oldID {
			oldIdx = i
		} else if l.ID == newLabel.ID {
			// target identifier taken by a different label
			return labels, transactions
		}
	}
	if oldIdx < 0 {
		return labels, transactions
	}
	if labels[oldIdx] == newLabel {
		return labels, transactions
	}

	updated := make([]Label, len(labels))
	copy(updated, labels)
	updated[oldIdx] = newLabel

	if newLabel.ID == oldID {
		return updated, transactions
	}

	migrated := make([]Transaction, len(transactions))
	copy(migrated, transactions)
	for i, t := range migrated {
		if !t.HasLabel(oldID) {
			continue
		}
		ids := make([]string, len(t.LabelIDs))
		for j, id := range t.LabelIDs {
			if id == oldID {
				ids[j] = newLabel.ID
			} else {
				ids[j] = id
			}
		}
		migrated[i].LabelIDs = ids
	}
	return updated, migrated
}

// DeleteLabel removes the label and strips its identifier from every
// transaction's label set. Transactions themselves are kept.
func DeleteLabel(labels []Label, transactions []Transaction, id string) ([]Label, []Transaction) {
	remaining := make([]Label, 0, len(labels))
	for _, l := range labels {
		if l.ID != id {
			remaining = append(remaining, l)
		}
	}

	stripped := make([]Transaction, len(transactions))
	copy(stripped, transactions)
	for i, t := range stripped {
		if !t.HasLabel(id) {
			continue
		}
		ids := make([]string, 0, len(t.LabelIDs)-1)
		for _, lid := range t.LabelIDs {
			if lid != id {
				ids = append(ids, lid)
			}
		}
		stripped[i].LabelIDs = ids
	}
	return remaining, stripped
}

// LabelsFor resolves a transaction's label identifiers against the current
// collection. Dangling references are silently dropped, not an error.
func LabelsFor(t Transaction, labels []Label) []Label {
	var out []Label
	for _, id := range t.LabelIDs {
		for _, l := range labels {
			if l.ID == id {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
