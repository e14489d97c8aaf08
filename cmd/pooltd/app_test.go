/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mikeb26/fencingpool-tdbot/internal"
	"github.com/mikeb26/fencingpool-tdbot/objstore"
	"github.com/mikeb26/fencingpool-tdbot/pool"
	"github.com/mikeb26/fencingpool-tdbot/poolstore"
	"github.com/mikeb26/fencingpool-tdbot/usafencing"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	cfg := internal.DefaultConfig()
	cfg.Storage = internal.StorageConfig{Kind: internal.StorageMemory}
	cfg.Pool.TieBreak = "seed"
	objects, err := objstore.Open(context.Background(), cfg.Storage)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	var out bytes.Buffer
	return newAppWith(context.Background(), &cfg, objects, &out), &out
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		in      string
		want    pool.Cards
		wantErr bool
	}{
		{"", pool.Cards{}, false},
		{"yellow=1", pool.Cards{Yellow: 1}, false},
		{"yellow=1, red=2", pool.Cards{Yellow: 1, Red: 2}, false},
		{"red,red", pool.Cards{Red: 2}, false},
		{"Passivity_Yellow=1,black=1", pool.Cards{PassivityYellow: 1, Black: 1}, false},
		{"group3red=1,passivity_red=1,passivity_black=1",
			pool.Cards{Group3Red: 1, PassivityRed: 1, PassivityBlack: 1}, false},
		{"green=1", pool.Cards{}, true},
		{"yellow=x", pool.Cards{}, true},
		{"yellow=300", pool.Cards{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCards(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCards(%q) err = %v; wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseCards(%q) = %+v; want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTouches(t *testing.T) {
	if v, err := parseTouches(" 5 "); err != nil || v != 5 {
		t.Errorf("parseTouches(5) = %v, %v", v, err)
	}
	for _, bad := range []string{"", "-1", "256", "five"} {
		if _, err := parseTouches(bad); err == nil {
			t.Errorf("parseTouches(%q) succeeded", bad)
		}
	}
}

func TestOrders(t *testing.T) {
	a, out := newTestApp(t)

	if err := a.orders(5, "usafencing"); err != nil {
		t.Fatalf("orders failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 11 {
		t.Fatalf("orders printed %v lines; want 11:\n%v", len(lines), out)
	}
	if lines[1] != "  1. 1-2" || lines[10] != " 10. 4-2" {
		t.Errorf("unexpected order lines %q and %q", lines[1], lines[10])
	}

	out.Reset()
	if err := a.orders(0, "usafencing"); err != nil {
		t.Fatalf("orders failed: %v", err)
	}
	if !strings.Contains(out.String(), "circle") ||
		!strings.Contains(out.String(), "4 5 6") {
		t.Errorf("unexpected orders listing:\n%v", out)
	}

	if err := a.orders(3, "usafencing"); !errors.Is(err, pool.ErrUnsupportedParticipantCount) {
		t.Errorf("orders(3, usafencing) err = %v", err)
	}
	if err := a.orders(4, "bogus"); err == nil {
		t.Error("orders with an unknown provider succeeded")
	}
}

func TestPoolLifecycle(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)

	p, err := a.newPool(ctx, newPoolOptions{
		name:  "Open Epee",
		names: []string{"Doe, John", "Roe, Jane", "Poe, Ed", "Doe, John"},
	})
	if err != nil {
		t.Fatalf("newPool failed: %v", err)
	}
	if p.Sheet.Len() != 3 {
		t.Fatalf("pool has %v fencers; want 3", p.Sheet.Len())
	}

	if err := a.results(ctx, "Open Epee", ""); !errors.Is(err, pool.ErrPoolNotComplete) {
		t.Errorf("results of an unscored pool err = %v", err)
	}

	scores := []scoreArgs{
		{fencerA: "Doe", touchesA: "5", fencerB: "Roe", touchesB: "3",
			cardsB: "yellow=1"},
		{fencerA: "John Doe", touchesA: "5", fencerB: "poe, ed", touchesB: "1"},
		{fencerA: "Jane", touchesA: "4", fencerB: "Ed", touchesB: "4"},
	}
	for _, s := range scores {
		if err := a.score(ctx, p.ID[:8], s); err != nil {
			t.Fatalf("score %+v failed: %v", s, err)
		}
	}
	// 4-4 has no winner until priority is given
	if err := a.priority(ctx, p.ID, "Roe", "Poe", "Roe"); err != nil {
		t.Fatalf("priority failed: %v", err)
	}

	out.Reset()
	if err := a.results(ctx, "open epee", ""); err != nil {
		t.Fatalf("results failed: %v", err)
	}
	lines := strings.Split(out.String(), "\n")
	if len(lines) < 5 {
		t.Fatalf("results output too short:\n%v", out)
	}
	for i, want := range []string{"Doe, John", "Roe, Jane", "Poe, Ed"} {
		line := lines[3+i]
		if !strings.HasPrefix(line, fmt.Sprintf("%d ", i+1)) ||
			!strings.Contains(line, want) {
			t.Errorf("results line %d = %q; want place %d for %v", i, line, i+1, want)
		}
	}

	out.Reset()
	stored, err := a.store.Find(ctx, p.ID)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	a.show(stored)
	if got := out.String(); !strings.Contains(got, "V4*") ||
		!strings.Contains(got, "(priority Roe, Jane)") {
		t.Errorf("show output missing priority decision:\n%v", got)
	}

	if err := a.priority(ctx, p.ID, "Roe", "Poe", ""); err != nil {
		t.Fatalf("clearing priority failed: %v", err)
	}
	if err := a.unscore(ctx, p.ID, "Doe", "Roe"); err != nil {
		t.Fatalf("unscore failed: %v", err)
	}
	stored, err = a.store.Load(ctx, p.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := stored.Sheet.Unfinished(); len(got) != 2 {
		t.Errorf("Unfinished = %v; want 2 bouts", got)
	}
}

func TestScoreErrors(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	p, err := a.newPool(ctx, newPoolOptions{name: "Pool A",
		names: []string{"Doe, John", "Doe, Jane", "Poe, Ed"}})
	if err != nil {
		t.Fatalf("newPool failed: %v", err)
	}

	tests := []struct {
		name string
		args scoreArgs
		want error
	}{
		{"unknown fencer", scoreArgs{fencerA: "Nobody", touchesA: "5",
			fencerB: "Poe", touchesB: "0"}, usafencing.ErrNoSuchFencer},
		{"ambiguous fencer", scoreArgs{fencerA: "Doe", touchesA: "5",
			fencerB: "Poe", touchesB: "0"}, usafencing.ErrAmbiguousFencer},
		{"same fencer", scoreArgs{fencerA: "Poe", touchesA: "5",
			fencerB: "Ed", touchesB: "0"}, pool.ErrInvalidPair},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.score(ctx, p.ID, tt.args)
			if !errors.Is(err, tt.want) {
				t.Errorf("score err = %v; want %v", err, tt.want)
			}
		})
	}

	err = a.score(ctx, "no such pool", scoreArgs{fencerA: "Poe", touchesA: "5",
		fencerB: "Jane", touchesB: "0"})
	if !errors.Is(err, poolstore.ErrNotFound) {
		t.Errorf("score on a missing pool err = %v", err)
	}
}

func TestExportDelete(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)

	p, err := a.newPool(ctx, newPoolOptions{name: "Pool B",
		names: []string{"Doe, John", "Roe, Jane", "Poe, Ed", "Moe, Al"}})
	if err != nil {
		t.Fatalf("newPool failed: %v", err)
	}
	err = a.score(ctx, p.ID, scoreArgs{fencerA: "Doe", touchesA: "5",
		fencerB: "Moe", touchesB: "2", cardsB: "red=1"})
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}

	out.Reset()
	if err := a.export(ctx, "Pool B", ""); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	sheet, err := pool.Decode[usafencing.Fencer](out.Bytes())
	if err != nil {
		t.Fatalf("Decode of export failed: %v\n%v", err, out)
	}
	doe := usafencing.WithName("Doe, John")
	moe := usafencing.WithName("Moe, Al")
	bout, err := sheet.BoutBetween(doe, moe)
	if err != nil {
		t.Fatalf("BoutBetween failed: %v", err)
	}
	if cards, _ := bout.Cards(moe); cards != (pool.Cards{Red: 1}) {
		t.Errorf("exported cards = %+v", cards)
	}

	filename := filepath.Join(t.TempDir(), "pool.json")
	if err := a.export(ctx, p.ID, filename); err != nil {
		t.Fatalf("export to file failed: %v", err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if diff := cmp.Diff(out.String(), string(data)); diff != "" {
		t.Errorf("file export differs from stdout export (-stdout +file):\n%s", diff)
	}

	out.Reset()
	if err := a.delete(ctx, "pool b"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	out.Reset()
	if err := a.list(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if out.String() != "No stored pools\n" {
		t.Errorf("list after delete = %q", out.String())
	}
}

const rosterHTML = `<table>
<tr><th>Name</th><th>Club</th><th>Rating</th></tr>
<tr><td>Roe, Jane</td><td>Salle</td><td>C23</td></tr>
<tr><td>Doe, John</td><td>MIT</td><td>A25</td></tr>
<tr><td>Poe, Ed</td><td></td><td>U</td></tr>
</table>`

func TestNewPoolFromRoster(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, rosterHTML)
	}))
	defer srv.Close()

	for range 2 {
		p, err := a.newPool(ctx, newPoolOptions{
			rosterURLs: []string{srv.URL},
			names:      []string{"Moe, Al"},
			seed:       true,
		})
		if err != nil {
			t.Fatalf("newPool failed: %v", err)
		}
		var got []string
		for _, f := range p.Sheet.Fencers() {
			got = append(got, f.Name.Last)
		}
		want := []string{"Doe", "Roe", "Poe", "Moe"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("seeded fencers mismatch (-want +got):\n%s", diff)
		}
		if !strings.HasPrefix(p.Name, "Pool ") {
			t.Errorf("default pool name = %q", p.Name)
		}
	}
	// the second import is answered from the web cache
	if n := hits.Load(); n != 1 {
		t.Errorf("roster server hit %v times; want 1", n)
	}
}
