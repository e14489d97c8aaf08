/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package roster imports pool entrants from published HTML entry lists.
package roster

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/fencingpool-tdbot/internal"
	"github.com/mikeb26/fencingpool-tdbot/usafencing"
)

type column int

const (
	colName column = iota
	colFirst
	colLast
	colClub
	colRating
	colBirth
	colMember
	colHand
	colUnknown
)

// headerColumn maps an entries table header to the column it holds
func headerColumn(header string) column {
	h := strings.ToLower(strings.TrimSpace(header))
	switch {
	case h == "name" || h == "fencer" || h == "full name":
		return colName
	case strings.HasPrefix(h, "first"):
		return colFirst
	case strings.HasPrefix(h, "last"):
		return colLast
	case strings.HasPrefix(h, "club"):
		return colClub
	case strings.HasPrefix(h, "rating") || h == "class":
		return colRating
	case h == "dob" || strings.Contains(h, "birth"):
		return colBirth
	case strings.Contains(h, "member") || h == "id" || h == "usfa #":
		return colMember
	case strings.HasPrefix(h, "hand"):
		return colHand
	}
	return colUnknown
}

// Parse extracts fencers from the first table of the document with a name
// column. Columns are located by their header text.
func Parse(r io.Reader) ([]usafencing.Fencer, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse entries: %w", err)
	}

	var fencers []usafencing.Fencer
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return true
		}
		var cols []column
		hasName := false
		rows.First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			c := headerColumn(cell.Text())
			cols = append(cols, c)
			if c == colName || c == colLast {
				hasName = true
			}
		})
		if !hasName {
			return true
		}

		found = true
		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			if f, ok := parseRow(cols, row.Find("td")); ok {
				fencers = append(fencers, f)
			}
		})
		return false
	})
	if !found {
		return nil, fmt.Errorf("unable to parse entries: no table with a name column")
	}

	return fencers, nil
}

func parseRow(cols []column, cells *goquery.Selection) (usafencing.Fencer, bool) {
	var f usafencing.Fencer
	var first, last string
	cells.Each(func(i int, cell *goquery.Selection) {
		if i >= len(cols) {
			return
		}
		text := strings.TrimSpace(cell.Text())
		switch cols[i] {
		case colName:
			f.Name = usafencing.ParseName(text)
		case colFirst:
			first = text
		case colLast:
			last = text
		case colClub:
			f.Clubs = parseClubs(text)
		case colRating:
			r, err := usafencing.ParseRating(text)
			if err != nil {
				log.Printf("roster.parse: %v; treating as unrated", err)
			}
			f.Rating = r
		case colBirth:
			dob, err := internal.ParseDateOrZero(text)
			if err != nil {
				log.Printf("roster.parse: unable to parse birth date %q: %v", text, err)
			}
			f.DateOfBirth = usafencing.DateOf(dob)
		case colMember:
			f.MemberID = text
		case colHand:
			switch strings.ToUpper(text) {
			case "L", "LEFT":
				f.Handedness = usafencing.HandLeft
			case "R", "RIGHT":
				f.Handedness = usafencing.HandRight
			}
		}
	})
	if last != "" {
		f.Name.Last = last
		if first != "" {
			f.Name.First = first
		}
	} else if first != "" && f.Name.First == "" {
		f.Name.First = first
	}

	return f, f.Name.First != "" || f.Name.Last != ""
}

func parseClubs(text string) []usafencing.Club {
	var clubs []usafencing.Club
	for _, name := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '/' || r == ';' || r == '\n'
	}) {
		if name = strings.TrimSpace(name); name != "" {
			clubs = append(clubs, usafencing.Club{Name: name})
		}
	}
	return clubs
}

// Client fetches entry lists over http.
type Client struct {
	httpClient *http.Client
}

// NewClient uses http.DefaultClient when httpClient is nil.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

func (c *Client) Fetch(ctx context.Context, url string) ([]usafencing.Fencer, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch entries %v: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	fencers, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", url, err)
	}
	return fencers, nil
}

// FetchAll fetches every url concurrently and concatenates the entries in url
// order.
func (c *Client) FetchAll(ctx context.Context, urls []string) ([]usafencing.Fencer, error) {
	lists := make([][]usafencing.Fencer, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		g.Go(func() error {
			fencers, err := c.Fetch(gctx, url)
			if err != nil {
				return err
			}
			lists[i] = fencers
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []usafencing.Fencer
	for _, l := range lists {
		all = append(all, l...)
	}
	return all, nil
}
