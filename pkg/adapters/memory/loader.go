package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/flexile/fieldlayout/pkg/domain"
)

// Loader implements ports.FormLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu    sync.RWMutex
	forms map[string]domain.Form
}

// NewLoader creates a Loader pre-populated with forms.
func NewLoader(forms ...domain.Form) (*Loader, error) {
	l := &Loader{forms: make(map[string]domain.Form, len(forms))}
	for _, f := range forms {
		if err := l.Add(f); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add stores a form, replacing any form with the same ID.
func (l *Loader) Add(form domain.Form) error {
	if form.ID == "" {
		return fmt.Errorf("form missing ID")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.forms[form.ID] = form.Clone()
	return nil
}

// GetForm retrieves a copy of the form.
func (l *Loader) GetForm(ctx context.Context, id string) (domain.Form, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	form, ok := l.forms[id]
	if !ok {
		return domain.Form{}, fmt.Errorf("%w: %s", domain.ErrFormNotFound, id)
	}
	return form.Clone(), nil
}

// ListForms returns all available form IDs.
func (l *Loader) ListForms(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.forms))
	for id := range l.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}
