package lastseen

import "iter"

// AuthorDates maps author names to formatted dates, keeping the order in
// which authors were first added. A name's date is fixed once set.
type AuthorDates struct {
	names []string
	dates map[string]string
}

func NewAuthorDates() *AuthorDates {
	return &AuthorDates{dates: map[string]string{}}
}

// Set records date for name unless name is already present. It reports
// whether the entry was added.
func (a *AuthorDates) Set(name, date string) bool {
	if _, ok := a.dates[name]; ok {
		return false
	}
	a.names = append(a.names, name)
	a.dates[name] = date
	return true
}

func (a *AuthorDates) Has(name string) bool {
	_, ok := a.dates[name]
	return ok
}

func (a *AuthorDates) Get(name string) (string, bool) {
	date, ok := a.dates[name]
	return date, ok
}

func (a *AuthorDates) Len() int {
	return len(a.names)
}

// Names returns the authors in insertion order.
func (a *AuthorDates) Names() []string {
	return append([]string(nil), a.names...)
}

// All yields name, date pairs in insertion order.
func (a *AuthorDates) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range a.names {
			if !yield(name, a.dates[name]) {
				return
			}
		}
	}
}

// Equal reports whether both mappings hold the same entries in the same order.
func (a *AuthorDates) Equal(other *AuthorDates) bool {
	if a.Len() != other.Len() {
		return false
	}
	for i, name := range a.names {
		if other.names[i] != name || other.dates[name] != a.dates[name] {
			return false
		}
	}
	return true
}
