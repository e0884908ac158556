package contactview

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/contactbook/backend/internal/model"
)

// FilterAndSort derives the displayed contact list from the full collection.
// The input slice is never mutated; ties keep their input order.
func FilterAndSort(contacts []*model.Contact, searchTerm string, sortBy SortOption) []*model.Contact {
	// Collators buffer state between comparisons, so each call gets its own.
	// Loose gives locale-aware, case-insensitive ordering like localeCompare.
	collator := collate.New(language.English, collate.Loose)

	result := make([]*model.Contact, 0, len(contacts))

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" {
		result = append(result, contacts...)
	} else {
		for _, c := range contacts {
			if matches(c, term) {
				result = append(result, c)
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch sortBy {
		case SortNameAsc:
			return collator.CompareString(a.Name, b.Name) < 0
		case SortNameDesc:
			return collator.CompareString(b.Name, a.Name) < 0
		case SortDateAsc:
			return a.CreatedAt.Before(b.CreatedAt)
		default: // SortDateDesc
			return b.CreatedAt.Before(a.CreatedAt)
		}
	})

	return result
}

// matches reports whether a contact's name, email, phone, or company
// contains the already-lowercased term.
func matches(c *model.Contact, term string) bool {
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Email), term) ||
		strings.Contains(c.Phone, term) ||
		(c.Company != "" && strings.Contains(strings.ToLower(c.Company), term))
}
