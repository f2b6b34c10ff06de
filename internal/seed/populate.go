package seed

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/johnwards/foodorder/internal/store"
)

// populate inserts the dataset in four strictly ordered phases, recording
// every generated id in r.
func (s *Seeder) populate(ctx context.Context, ds *Dataset, r *Resolver, rep *Report) error {
	if err := s.insertCategories(ctx, ds, r, rep); err != nil {
		return err
	}
	if err := s.insertCustomizations(ctx, ds, r, rep); err != nil {
		return err
	}
	if err := s.insertMenus(ctx, ds, r, rep); err != nil {
		return err
	}
	return s.insertMenuCustomizations(ctx, ds, r, rep)
}

func (s *Seeder) insertCategories(ctx context.Context, ds *Dataset, r *Resolver, rep *Report) error {
	for _, c := range ds.Categories {
		row, err := s.store.Categories.Create(ctx, c.Name, c.Description)
		if err != nil {
			return &PersistenceError{Op: fmt.Sprintf("insert category %q", c.Name), Err: err}
		}
		r.SetCategory(c.Name, row.ID)
		rep.Categories++
	}
	s.logger.Info("categories inserted", "count", rep.Categories)
	return nil
}

func (s *Seeder) insertCustomizations(ctx context.Context, ds *Dataset, r *Resolver, rep *Report) error {
	for _, c := range ds.Customizations {
		row, err := s.store.Customizations.Create(ctx, c.Name, c.Price, c.Type)
		if err != nil {
			return &PersistenceError{Op: fmt.Sprintf("insert customization %q", c.Name), Err: err}
		}
		r.SetCustomization(c.Name, row.ID)
		rep.Customizations++
	}
	s.logger.Info("customizations inserted", "count", rep.Customizations)
	return nil
}

// menuCategory resolves the category of item. ok is false when the item is
// to be skipped under ReferenceSkip.
func (s *Seeder) menuCategory(item MenuItemSeed, r *Resolver, rep *Report) (id string, ok bool, err error) {
	id, ok = r.CategoryID(item.CategoryName)
	if ok {
		return id, true, nil
	}

	gap := &ReferentialGapError{Kind: RefCategory, Item: item.Name, Name: item.CategoryName}
	if s.policy != ReferenceSkip {
		return "", false, gap
	}
	s.logger.Warn("skipping menu item", "item", item.Name, "reason", gap.Error())
	rep.SkippedMenus = append(rep.SkippedMenus, item.Name)
	return "", false, nil
}

// insertMenus ingests each item's image and inserts the item. With
// concurrency above one, images are ingested in parallel first and rows are
// inserted afterwards in dataset order.
func (s *Seeder) insertMenus(ctx context.Context, ds *Dataset, r *Resolver, rep *Report) error {
	categoryIDs := make([]string, len(ds.Menu))
	imageURLs := make([]string, len(ds.Menu))

	if s.concurrency > 1 {
		for i, item := range ds.Menu {
			id, ok, err := s.menuCategory(item, r, rep)
			if err != nil {
				return err
			}
			if ok {
				categoryIDs[i] = id
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for i, item := range ds.Menu {
			if categoryIDs[i] == "" {
				continue
			}
			g.Go(func() error {
				u, err := s.ingestImage(gctx, item.ImageURL)
				if err != nil {
					return err
				}
				imageURLs[i] = u
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for _, u := range imageURLs {
			if u != "" {
				rep.Assets++
			}
		}
	}

	for i, item := range ds.Menu {
		if s.concurrency <= 1 {
			id, ok, err := s.menuCategory(item, r, rep)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			categoryIDs[i] = id

			u, err := s.ingestImage(ctx, item.ImageURL)
			if err != nil {
				return err
			}
			imageURLs[i] = u
			rep.Assets++
		}
		if categoryIDs[i] == "" {
			continue
		}

		row, err := s.store.Menus.Create(ctx, &store.Menu{
			Name:        item.Name,
			Description: item.Description,
			ImageURL:    imageURLs[i],
			Price:       item.Price,
			Rating:      item.Rating,
			Calories:    item.Calories,
			Proteins:    item.Protein,
			CategoryID:  categoryIDs[i],
		})
		if err != nil {
			return &PersistenceError{Op: fmt.Sprintf("insert menu %q", item.Name), Err: err}
		}
		r.SetMenu(item.Name, row.ID)
		rep.Menus++
	}

	s.logger.Info("menus inserted", "count", rep.Menus, "assets", rep.Assets, "skipped", len(rep.SkippedMenus))
	return nil
}

func (s *Seeder) insertMenuCustomizations(ctx context.Context, ds *Dataset, r *Resolver, rep *Report) error {
	for _, item := range ds.Menu {
		menuID, ok := r.MenuID(item.Name)
		if !ok {
			continue
		}

		for _, name := range item.Customizations {
			customizationID, ok := r.CustomizationID(name)
			if !ok {
				gap := &ReferentialGapError{Kind: RefCustomization, Item: item.Name, Name: name}
				if s.policy != ReferenceSkip {
					return gap
				}
				s.logger.Warn("skipping customization link", "item", item.Name, "reason", gap.Error())
				rep.SkippedCustomizations++
				continue
			}

			if _, err := s.store.MenuCustomizations.Create(ctx, menuID, customizationID); err != nil {
				return &PersistenceError{Op: fmt.Sprintf("link menu %q to %q", item.Name, name), Err: err}
			}
			rep.MenuCustomizations++
		}
	}

	s.logger.Info("menu customizations inserted", "count", rep.MenuCustomizations, "skipped", rep.SkippedCustomizations)
	return nil
}
