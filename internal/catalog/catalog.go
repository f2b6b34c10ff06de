// Package catalog implements the read side of the menu: listing menu items
// with optional category and name filters, and listing categories.
package catalog

import (
	"context"

	"github.com/johnwards/foodorder/internal/store"
)

// Error carries the backend's message for a failed catalog read.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// GetMenuParams filters a menu listing. Empty fields match everything.
type GetMenuParams struct {
	Category string // category id
	Query    string // case-insensitive substring of the item name
}

// Service answers catalog queries.
type Service struct {
	menus      store.MenuStore
	categories store.CategoryStore
}

// New creates a Service.
func New(menus store.MenuStore, categories store.CategoryStore) *Service {
	return &Service{menus: menus, categories: categories}
}

// GetMenu returns the menu items matching p. The result is never nil.
func (s *Service) GetMenu(ctx context.Context, p GetMenuParams) ([]*store.Menu, error) {
	menus, err := s.menus.List(ctx, store.MenuFilter{CategoryID: p.Category, Query: p.Query})
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}
	if menus == nil {
		menus = []*store.Menu{}
	}
	return menus, nil
}

// GetCategories returns every category. The result is never nil.
func (s *Service) GetCategories(ctx context.Context) ([]*store.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}
	if categories == nil {
		categories = []*store.Category{}
	}
	return categories, nil
}
