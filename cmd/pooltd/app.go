/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mikeb26/fencingpool-tdbot/boutorder"
	"github.com/mikeb26/fencingpool-tdbot/internal"
	"github.com/mikeb26/fencingpool-tdbot/objstore"
	"github.com/mikeb26/fencingpool-tdbot/pool"
	"github.com/mikeb26/fencingpool-tdbot/poolstore"
	"github.com/mikeb26/fencingpool-tdbot/roster"
	"github.com/mikeb26/fencingpool-tdbot/usafencing"
)

type storedPool = poolstore.Pool[usafencing.Fencer]

// app carries what every pooltd command needs
type app struct {
	cfg    *internal.Config
	store  *poolstore.Store[usafencing.Fencer]
	roster *roster.Client
	out    io.Writer
}

func newApp(ctx context.Context, configPath string, out io.Writer) (*app, error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	objects, err := objstore.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v storage: %w", cfg.Storage.Kind,
			err)
	}
	return newAppWith(ctx, cfg, objects, out), nil
}

func newAppWith(ctx context.Context, cfg *internal.Config,
	objects objstore.Store, out io.Writer) *app {

	httpClient := internal.NewCachedHttpClient(nil, 0)
	if cfg.Roster.Cached {
		cache := objstore.NewHTTPCache(ctx, objects, internal.WebCachePrefix)
		httpClient = internal.NewCachedHttpClient(cache, cfg.Roster.CacheTTL)
	}

	return &app{
		cfg:    cfg,
		store:  poolstore.New[usafencing.Fencer](objects),
		roster: roster.NewClient(httpClient),
		out:    out,
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// orders prints the bout order for n fencers, or the supported sizes when n
// is 0
func (a *app) orders(n int, name string) error {
	name = cmp.Or(name, a.cfg.Pool.BoutOrder)
	provider, err := boutorder.ByName(name)
	if err != nil {
		return err
	}
	if n == 0 {
		a.printf("Bout orders: %v\n", strings.Join(boutorder.Names(), ", "))
		if t, ok := provider.(boutorder.Table); ok {
			a.printf("%v supports %v fencers\n", t.Name(), t.Sizes())
		}
		return nil
	}

	order, err := provider.Order(n)
	if err != nil {
		return err
	}
	a.printf("Bout order %v for %d fencers:\n", name, n)
	for i, p := range order {
		a.printf("%3d. %d-%d\n", i+1, p[0], p[1])
	}
	return nil
}

type newPoolOptions struct {
	name       string
	order      string
	rosterURLs []string
	seed       bool
	names      []string
}

func (a *app) newPool(ctx context.Context, opts newPoolOptions) (*storedPool, error) {
	var fencers []usafencing.Fencer
	if len(opts.rosterURLs) > 0 {
		imported, err := a.roster.FetchAll(ctx, opts.rosterURLs)
		if err != nil {
			return nil, err
		}
		fencers = append(fencers, imported...)
	}
	for _, n := range opts.names {
		fencers = append(fencers, usafencing.WithName(n))
	}
	if opts.seed {
		usafencing.Seed(fencers)
	}

	provider, err := boutorder.ByName(cmp.Or(opts.order, a.cfg.Pool.BoutOrder))
	if err != nil {
		return nil, err
	}
	sheet, err := pool.NewSheet(fencers, provider)
	if err != nil {
		return nil, err
	}

	name := cmp.Or(opts.name, "Pool "+time.Now().Format(time.DateOnly))
	return a.store.Create(ctx, name, sheet)
}

func (a *app) list(ctx context.Context) error {
	summaries, err := a.store.List(ctx)
	if err != nil {
		return err
	}
	a.printf("%v", poolstore.BuildListOutput(summaries))
	return nil
}

func (a *app) show(p *storedPool) {
	a.printf("%v\n", p.ID)
	a.printf("%v\n", pool.BuildSheetOutput(p.Sheet, p.Name))
	a.printf("%v", pool.BuildBoutsOutput(p.Sheet))
}

// lookupPair resolves the two named fencers of one bout
func lookupPair(p *storedPool, nameA, nameB string) (*usafencing.Fencer,
	*usafencing.Fencer, error) {

	fa, err := usafencing.Lookup(p.Sheet.Fencers(), nameA)
	if err != nil {
		return nil, nil, err
	}
	fb, err := usafencing.Lookup(p.Sheet.Fencers(), nameB)
	if err != nil {
		return nil, nil, err
	}
	return fa, fb, nil
}

type scoreArgs struct {
	fencerA, touchesA, cardsA string
	fencerB, touchesB, cardsB string
}

func parseTouches(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid touches %q: %w", s, err)
	}
	return uint8(v), nil
}

// parseCards reads "yellow=1,red=2"; an empty string is no cards
func parseCards(s string) (pool.Cards, error) {
	var c pool.Cards
	if strings.TrimSpace(s) == "" {
		return c, nil
	}
	for _, item := range strings.Split(s, ",") {
		kind, count, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			count = "1"
		}
		n, err := strconv.ParseUint(strings.TrimSpace(count), 10, 8)
		if err != nil {
			return c, fmt.Errorf("invalid card count %q: %w", item, err)
		}
		var field *uint8
		switch strings.ToLower(strings.TrimSpace(kind)) {
		case "yellow":
			field = &c.Yellow
		case "red":
			field = &c.Red
		case "group3red":
			field = &c.Group3Red
		case "black":
			field = &c.Black
		case "passivity_yellow":
			field = &c.PassivityYellow
		case "passivity_red":
			field = &c.PassivityRed
		case "passivity_black":
			field = &c.PassivityBlack
		default:
			return c, fmt.Errorf("unknown card %q", kind)
		}
		*field += uint8(n)
	}
	return c, nil
}

// update loads the pool, applies fn to it and saves the result
func (a *app) update(ctx context.Context, ref string,
	fn func(p *storedPool) error) (*storedPool, error) {

	p, err := a.store.Find(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *app) score(ctx context.Context, ref string, args scoreArgs) error {
	var scoreA, scoreB pool.FencerScore[usafencing.Fencer]
	var err error
	if scoreA.Score, err = parseTouches(args.touchesA); err != nil {
		return err
	}
	if scoreB.Score, err = parseTouches(args.touchesB); err != nil {
		return err
	}
	if scoreA.Cards, err = parseCards(args.cardsA); err != nil {
		return err
	}
	if scoreB.Cards, err = parseCards(args.cardsB); err != nil {
		return err
	}

	p, err := a.update(ctx, ref, func(p *storedPool) error {
		fa, fb, err := lookupPair(p, args.fencerA, args.fencerB)
		if err != nil {
			return err
		}
		scoreA.Fencer, scoreB.Fencer = *fa, *fb
		return p.Sheet.UpdateScore(scoreA, scoreB)
	})
	if err != nil {
		return err
	}

	a.printf("%v %d - %v %d\n", scoreA.Fencer, scoreA.Score, scoreB.Fencer,
		scoreB.Score)
	if p.Sheet.IsFinished() {
		a.printf("All bouts of %v are complete.\n", p.Name)
	} else {
		a.printf("%d bouts remaining in %v.\n", len(p.Sheet.Unfinished()), p.Name)
	}
	return nil
}

func (a *app) unscore(ctx context.Context, ref string, nameA, nameB string) error {
	_, err := a.update(ctx, ref, func(p *storedPool) error {
		fa, fb, err := lookupPair(p, nameA, nameB)
		if err != nil {
			return err
		}
		return p.Sheet.UnsetScore(*fa, *fb)
	})
	if err != nil {
		return err
	}
	a.printf("Cleared %v vs %v\n", nameA, nameB)
	return nil
}

// priority gives holder priority in the bout between nameA and nameB, or
// clears it when holder is empty
func (a *app) priority(ctx context.Context, ref string, nameA, nameB,
	holder string) error {

	_, err := a.update(ctx, ref, func(p *storedPool) error {
		fa, fb, err := lookupPair(p, nameA, nameB)
		if err != nil {
			return err
		}
		if holder == "" {
			return p.Sheet.ClearPriority(*fa, *fb)
		}
		fh, err := usafencing.Lookup(p.Sheet.Fencers(), holder)
		if err != nil {
			return err
		}
		return p.Sheet.SetPriority(*fa, *fb, *fh)
	})
	if err != nil {
		return err
	}
	if holder == "" {
		a.printf("Cleared priority for %v vs %v\n", nameA, nameB)
	} else {
		a.printf("Priority to %v in %v vs %v\n", holder, nameA, nameB)
	}
	return nil
}

func (a *app) results(ctx context.Context, ref string, tieBreak string) error {
	tb, err := pool.TieBreakerByName(cmp.Or(tieBreak, a.cfg.Pool.TieBreak))
	if err != nil {
		return err
	}
	p, err := a.store.Find(ctx, ref)
	if err != nil {
		return err
	}
	results, err := p.Sheet.Finish(tb)
	if err != nil {
		return err
	}
	a.printf("%v", pool.BuildResultsOutput(results, p.Name))
	return nil
}

func (a *app) delete(ctx context.Context, ref string) error {
	p, err := a.store.Find(ctx, ref)
	if err != nil {
		return err
	}
	if err := a.store.Delete(ctx, p.ID); err != nil {
		return err
	}
	a.printf("Deleted %v (%v)\n", p.Name, p.ID)
	return nil
}

// export writes the pool's sheet to filename, or to the app's output when
// filename is empty
func (a *app) export(ctx context.Context, ref string, filename string) error {
	p, err := a.store.Find(ctx, ref)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p.Sheet, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode pool %v: %w", p.ID, err)
	}
	data = append(data, '\n')

	if filename == "" {
		_, err = a.out.Write(data)
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("unable to write %v: %w", filename, err)
	}
	return nil
}
