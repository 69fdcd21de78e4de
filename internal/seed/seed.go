// Package seed loads portfolio content from a YAML file into the data service.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/crud"
	"github.com/Zachkp/portfolio/internal/entities"
)

// Content is the layout of the content file.
type Content struct {
	Projects []entities.Project `yaml:"projects"`
	Skills   []entities.Skill   `yaml:"skills"`
	Passions []entities.Passion `yaml:"passions"`
}

// Load reads and parses the content file at path.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes content YAML. Every record must carry an _id so reseeding
// updates records instead of duplicating them.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	for name, ids := range c.ids() {
		seen := make(map[string]bool, len(ids))
		for i, id := range ids {
			if id == "" {
				return nil, fmt.Errorf("%s[%d]: missing _id", name, i)
			}
			if seen[id] {
				return nil, fmt.Errorf("%s[%d]: duplicate _id %q", name, i, id)
			}
			seen[id] = true
		}
	}
	return &c, nil
}

func (c *Content) ids() map[string][]string {
	out := map[string][]string{}
	for _, p := range c.Projects {
		out[entities.CollectionProjects] = append(out[entities.CollectionProjects], p.ID)
	}
	for _, s := range c.Skills {
		out[entities.CollectionSkills] = append(out[entities.CollectionSkills], s.ID)
	}
	for _, p := range c.Passions {
		out[entities.CollectionPassions] = append(out[entities.CollectionPassions], p.ID)
	}
	return out
}

// documents returns the records per collection in file order.
func (c *Content) documents() (map[string][]crud.Document, error) {
	out := map[string][]crud.Document{}
	add := func(collection string, v any) error {
		doc, err := crud.Encode(v)
		if err != nil {
			return err
		}
		out[collection] = append(out[collection], doc)
		return nil
	}

	for _, p := range c.Projects {
		if err := add(entities.CollectionProjects, p); err != nil {
			return nil, err
		}
	}
	for _, s := range c.Skills {
		if err := add(entities.CollectionSkills, s); err != nil {
			return nil, err
		}
	}
	for _, p := range c.Passions {
		if err := add(entities.CollectionPassions, p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Options controls Apply.
type Options struct {
	// Prune deletes records of the seeded collections that the file no
	// longer lists.
	Prune bool
}

// Stats counts what Apply changed in one collection.
type Stats struct {
	Created int
	Updated int
	Deleted int
}

// Apply upserts the content into svc and reports per-collection changes.
func Apply(ctx context.Context, svc crud.Service, c *Content, opts Options) (map[string]Stats, error) {
	docs, err := c.documents()
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}

	report := map[string]Stats{}
	for _, collection := range []string{entities.CollectionProjects, entities.CollectionSkills, entities.CollectionPassions} {
		var st Stats
		keep := map[string]bool{}

		for _, doc := range docs[collection] {
			keep[doc.ID()] = true
			created, err := upsert(ctx, svc, collection, doc)
			if err != nil {
				return report, err
			}
			if created {
				st.Created++
			} else {
				st.Updated++
			}
		}

		if opts.Prune {
			res, err := svc.GetAll(ctx, collection)
			if err != nil {
				return report, fmt.Errorf("list %s: %w", collection, err)
			}
			for _, existing := range res.Items {
				if keep[existing.ID()] {
					continue
				}
				if err := svc.Delete(ctx, collection, existing.ID()); err != nil && !errors.Is(err, crud.ErrNotFound) {
					return report, fmt.Errorf("prune %s/%s: %w", collection, existing.ID(), err)
				}
				st.Deleted++
			}
		}

		report[collection] = st
	}
	return report, nil
}

func upsert(ctx context.Context, svc crud.Service, collection string, doc crud.Document) (bool, error) {
	_, err := svc.Get(ctx, collection, doc.ID())
	switch {
	case errors.Is(err, crud.ErrNotFound):
		if _, err := svc.Create(ctx, collection, doc); err != nil {
			return false, fmt.Errorf("create %s/%s: %w", collection, doc.ID(), err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("get %s/%s: %w", collection, doc.ID(), err)
	}

	if _, err := svc.Update(ctx, collection, doc); err != nil {
		return false, fmt.Errorf("update %s/%s: %w", collection, doc.ID(), err)
	}
	return false, nil
}
