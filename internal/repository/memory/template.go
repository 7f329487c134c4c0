package memory

import (
	"context"

	"github.com/billfold/billfold/internal/domain/template"
)

// TemplateRepository implements template.Repository
type TemplateRepository struct {
	store   *InMemoryStore[*template.ContractTemplate]
	onWrite func()
}

// NewTemplateRepository creates a new in-memory template repository
func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{
		store: NewInMemoryStore[*template.ContractTemplate](),
	}
}

// OnWrite registers a hook invoked after every successful mutation.
func (r *TemplateRepository) OnWrite(fn func()) {
	r.onWrite = fn
}

func (r *TemplateRepository) notify() {
	if r.onWrite != nil {
		r.onWrite()
	}
}

func copyTemplate(t *template.ContractTemplate) *template.ContractTemplate {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func (r *TemplateRepository) Create(ctx context.Context, t *template.ContractTemplate) error {
	if err := r.store.Create(ctx, t.ID, copyTemplate(t)); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *TemplateRepository) Get(ctx context.Context, id string) (*template.ContractTemplate, error) {
	t, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyTemplate(t), nil
}

func (r *TemplateRepository) Update(ctx context.Context, t *template.ContractTemplate) error {
	if err := r.store.Update(ctx, t.ID, copyTemplate(t)); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]*template.ContractTemplate, error) {
	items, err := r.store.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	result := make([]*template.ContractTemplate, len(items))
	for i, t := range items {
		result[i] = copyTemplate(t)
	}
	return result, nil
}

// GetDefault returns the active default template.
func (r *TemplateRepository) GetDefault(ctx context.Context) (*template.ContractTemplate, error) {
	items, err := r.store.List(ctx, func(ctx context.Context, t *template.ContractTemplate) bool {
		return t.IsDefault
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, template.ErrTemplateNotFound
	}
	return copyTemplate(items[0]), nil
}

// SetDefault marks one template as default and clears the rest.
func (r *TemplateRepository) SetDefault(ctx context.Context, id string) error {
	target, err := r.store.Get(ctx, id)
	if err != nil {
		return err
	}

	all, err := r.store.List(ctx, nil)
	if err != nil {
		return err
	}
	for _, t := range all {
		if t.IsDefault && t.ID != id {
			cleared := copyTemplate(t)
			cleared.IsDefault = false
			if err := r.store.Update(ctx, t.ID, cleared); err != nil {
				return err
			}
		}
	}

	updated := copyTemplate(target)
	updated.IsDefault = true
	if err := r.store.Update(ctx, id, updated); err != nil {
		return err
	}
	r.notify()
	return nil
}

// Clear removes all templates. Used by tests.
func (r *TemplateRepository) Clear() {
	r.store.Clear()
}
