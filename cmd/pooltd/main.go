/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":     handleHelp,
	"orders":   handleOrders,
	"new":      handleNew,
	"list":     handleList,
	"show":     handleShow,
	"score":    handleScore,
	"unscore":  handleUnscore,
	"priority": handlePriority,
	"results":  handleResults,
	"delete":   handleDelete,
	"export":   handleExport,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// parseWith parses args and opens the app; -config is accepted by every
// command touching stored pools
func parseWith(ctx context.Context, fs *flag.FlagSet, args []string) *app {
	configPath := fs.String("config", "", "Config file (default $POOLTD_CONFIG)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	a, err := newApp(ctx, *configPath, os.Stdout)
	if err != nil {
		log.Fatalf("Error loading %v: %v", *configPath, err)
	}
	return a
}

func requirePool(fs *flag.FlagSet, ref string) {
	if ref == "" {
		fmt.Fprintln(os.Stderr, "Please provide a pool with --pool <id or name>.")
		fs.Usage()
		os.Exit(1)
	}
}

func handleOrders(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	n := fs.Int("n", 0, "Pool size to print the bout order for")
	order := fs.String("order", "", "Bout order name (default from config)")
	a := parseWith(ctx, fs, args)

	if err := a.orders(*n, *order); err != nil {
		log.Fatalf("Error getting bout order: %v", err)
	}
}

func handleNew(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	name := fs.String("name", "", "Pool name")
	order := fs.String("order", "", "Bout order name (default from config)")
	rosterURLs := fs.String("roster", "", "Comma separated entry list URLs to import")
	seed := fs.Bool("seed", false, "Order fencers by rating before laying out the pool")
	a := parseWith(ctx, fs, args)

	var urls []string
	if *rosterURLs != "" {
		urls = strings.Split(*rosterURLs, ",")
	}
	if len(urls) == 0 && fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Please provide fencer names or --roster <url>.")
		fs.Usage()
		os.Exit(1)
	}

	p, err := a.newPool(ctx, newPoolOptions{
		name:       *name,
		order:      *order,
		rosterURLs: urls,
		seed:       *seed,
		names:      fs.Args(),
	})
	if err != nil {
		log.Fatalf("Error creating pool: %v", err)
	}
	a.show(p)
}

func handleList(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	a := parseWith(ctx, fs, args)

	if err := a.list(ctx); err != nil {
		log.Fatalf("Error listing pools: %v", err)
	}
}

func handleShow(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	ref := fs.String("pool", "", "Pool id, id prefix or name")
	a := parseWith(ctx, fs, args)
	requirePool(fs, *ref)

	p, err := a.store.Find(ctx, *ref)
	if err != nil {
		log.Fatalf("Error finding pool %v: %v", *ref, err)
	}
	a.show(p)
}

func handleScore(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	ref := fs.String("pool", "", "Pool id, id prefix or name")
	cardsA := fs.String("cards-a", "", "Cards for the first fencer, e.g. yellow=1,red=1")
	cardsB := fs.String("cards-b", "", "Cards for the second fencer")
	a := parseWith(ctx, fs, args)
	requirePool(fs, *ref)
	if fs.NArg() != 4 {
		fmt.Fprintln(os.Stderr, "Usage: score --pool <pool> <fencer> <touches> <fencer> <touches>")
		os.Exit(1)
	}

	err := a.score(ctx, *ref, scoreArgs{
		fencerA: fs.Arg(0), touchesA: fs.Arg(1), cardsA: *cardsA,
		fencerB: fs.Arg(2), touchesB: fs.Arg(3), cardsB: *cardsB,
	})
	if err != nil {
		log.Fatalf("Error scoring bout: %v", err)
	}
}

func handleUnscore(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("unscore", flag.ExitOnError)
	ref := fs.String("pool", "", "Pool id, id prefix or name")
	a := parseWith(ctx, fs, args)
	requirePool(fs, *ref)
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: unscore --pool <pool> <fencer> <fencer>")
		os.Exit(1)
	}

	if err := a.unscore(ctx, *ref, fs.Arg(0), fs.Arg(1)); err != nil {
		log.Fatalf("Error clearing bout: %v", err)
	}
}

func handlePriority(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("priority", flag.ExitOnError)
	ref := fs.String("pool", "", "Pool id, id prefix or name")
	clearPriority := fs.Bool("clear", false, "Clear the priority instead of setting it")
	a := parseWith(ctx, fs, args)
	requirePool(fs, *ref)

	holder := ""
	switch {
	case *clearPriority && fs.NArg() == 2:
	case !*clearPriority && fs.NArg() == 3:
		holder = fs.Arg(2)
	default:
		fmt.Fprintln(os.Stderr,
			"Usage: priority --pool <pool> [--clear] <fencer> <fencer> [<holder>]")
		os.Exit(1)
	}

	if err := a.priority(ctx, *ref, fs.Arg(0), fs.Arg(1), holder); err != nil {
		log.Fatalf("Error setting priority: %v", err)
	}
}

func handleResults(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("results", flag.ExitOnError)
	ref := fs.String("pool", "", "Pool id, id prefix or name")
	tieBreak := fs.String("tiebreak", "", "Tie breaker: random or seed (default from config)")
	a := parseWith(ctx, fs, args)
	requirePool(fs, *ref)

	if err := a.results(ctx, *ref, *tieBreak); err != nil {
		log.Fatalf("Error computing results: %v", err)
	}
}

func handleDelete(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	ref := fs.String("pool", "", "Pool id, id prefix or name")
	a := parseWith(ctx, fs, args)
	requirePool(fs, *ref)

	if err := a.delete(ctx, *ref); err != nil {
		log.Fatalf("Error deleting pool: %v", err)
	}
}

func handleExport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	ref := fs.String("pool", "", "Pool id, id prefix or name")
	out := fs.String("out", "", "File to write (default stdout)")
	a := parseWith(ctx, fs, args)
	requirePool(fs, *ref)

	if err := a.export(ctx, *ref, *out); err != nil {
		log.Fatalf("Error exporting pool: %v", err)
	}
}
