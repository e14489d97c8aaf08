/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package poolstore persists named pool sheets in an objstore.Store.
package poolstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/fencingpool-tdbot/internal"
	"github.com/mikeb26/fencingpool-tdbot/objstore"
	"github.com/mikeb26/fencingpool-tdbot/pool"
)

var (
	ErrNotFound  = errors.New("pool not found")
	ErrAmbiguous = errors.New("pool reference is ambiguous")
)

// maximum number of pools LoadAll fetches at once
const loadConcurrency = 8

// Pool is a stored pool sheet.
type Pool[T pool.Competitor[T]] struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Updated time.Time      `json:"updated"`
	Sheet   *pool.Sheet[T] `json:"sheet"`
}

// Summary describes a stored pool without its bouts.
type Summary struct {
	ID       string
	Name     string
	Updated  time.Time
	Fencers  int
	Finished bool
}

type Store[T pool.Competitor[T]] struct {
	objects objstore.Store
	prefix  string
	now     func() time.Time
}

func New[T pool.Competitor[T]](objects objstore.Store) *Store[T] {
	return &Store[T]{
		objects: objects,
		prefix:  internal.PoolPrefix,
		now:     time.Now,
	}
}

func (s *Store[T]) key(id string) string {
	return s.prefix + id + ".json"
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid pool id %q: %w", id, err)
	}
	return nil
}

// Create stores sheet as a new pool.
func (s *Store[T]) Create(ctx context.Context, name string,
	sheet *pool.Sheet[T]) (*Pool[T], error) {

	p := &Pool[T]{ID: uuid.NewString(), Name: name, Sheet: sheet}
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes p, assigning an ID if it has none, and stamps Updated.
func (s *Store[T]) Save(ctx context.Context, p *Pool[T]) error {
	if p.Sheet == nil {
		return fmt.Errorf("unable to save pool %v: no sheet", p.Name)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	} else if err := checkID(p.ID); err != nil {
		return err
	}
	p.Updated = s.now().UTC()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("unable to encode pool %v: %w", p.ID, err)
	}
	if err := s.objects.Put(ctx, s.key(p.ID), data); err != nil {
		return fmt.Errorf("unable to save pool %v: %w", p.ID, err)
	}
	return nil
}

func (s *Store[T]) Load(ctx context.Context, id string) (*Pool[T], error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	data, err := s.objects.Get(ctx, s.key(id))
	if errors.Is(err, objstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v: %w", ErrNotFound, id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load pool %v: %w", id, err)
	}

	var p Pool[T]
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unable to decode pool %v: %w", id, err)
	}
	if p.Sheet == nil {
		return nil, fmt.Errorf("unable to decode pool %v: no sheet", id)
	}
	return &p, nil
}

// LoadAll loads the pools concurrently, returning them in the order of ids.
func (s *Store[T]) LoadAll(ctx context.Context, ids []string) ([]*Pool[T], error) {
	pools := make([]*Pool[T], len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			p, err := s.Load(gctx, id)
			if err != nil {
				return err
			}
			pools[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pools, nil
}

// IDs lists the ids of every stored pool.
func (s *Store[T]) IDs(ctx context.Context) ([]string, error) {
	keys, err := s.objects.List(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("unable to list pools: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		id := strings.TrimSuffix(strings.TrimPrefix(k, s.prefix), ".json")
		if checkID(id) != nil {
			log.Printf("poolstore.ids: skipping unexpected object %v", k)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// List summarizes every stored pool, most recently updated first.
func (s *Store[T]) List(ctx context.Context) ([]Summary, error) {
	ids, err := s.IDs(ctx)
	if err != nil {
		return nil, err
	}
	pools, err := s.LoadAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(pools))
	for i, p := range pools {
		summaries[i] = Summary{
			ID:       p.ID,
			Name:     p.Name,
			Updated:  p.Updated,
			Fencers:  p.Sheet.Len(),
			Finished: p.Sheet.IsFinished(),
		}
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Updated.After(summaries[j].Updated)
	})
	return summaries, nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := s.objects.Delete(ctx, s.key(id))
	if errors.Is(err, objstore.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("unable to delete pool %v: %w", id, err)
	}
	return nil
}

// Find resolves ref as a pool id, a unique id prefix or a pool name
// (ignoring case).
func (s *Store[T]) Find(ctx context.Context, ref string) (*Pool[T], error) {
	ref = strings.TrimSpace(ref)
	if checkID(ref) == nil {
		return s.Load(ctx, ref)
	}

	summaries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []Summary
	for _, sum := range summaries {
		if strings.EqualFold(sum.Name, ref) {
			matches = append(matches, sum)
		}
	}
	if len(matches) == 0 && ref != "" {
		for _, sum := range summaries {
			if strings.HasPrefix(sum.ID, strings.ToLower(ref)) {
				matches = append(matches, sum)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %v", ErrNotFound, ref)
	case 1:
		return s.Load(ctx, matches[0].ID)
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return nil, fmt.Errorf("%w: %v matches %v", ErrAmbiguous, ref,
		strings.Join(ids, ", "))
}

// BuildListOutput formats pool summaries into an aligned table
func BuildListOutput(summaries []Summary) string {
	if len(summaries) == 0 {
		return "No stored pools\n"
	}

	type row struct{ id, name, fencers, status, updated string }
	rows := []row{{"ID", "Name", "Fencers", "Status", "Updated"}}
	for _, s := range summaries {
		status := "in progress"
		if s.Finished {
			status = "finished"
		}
		rows = append(rows, row{
			id:      s.ID[:8],
			name:    s.Name,
			fencers: fmt.Sprintf("%v", s.Fencers),
			status:  status,
			updated: s.Updated.Format(time.DateTime),
		})
	}

	var w [5]int
	for _, r := range rows {
		for i, col := range []string{r.id, r.name, r.fencers, r.status, r.updated} {
			if l := len(col); l > w[i] {
				w[i] = l
			}
		}
	}
	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %*s  %-*s  %v\n", w[0], r.id,
			w[1], r.name, w[2], r.fencers, w[3], r.status, r.updated))
	}
	return sb.String()
}
