// Package export serializes strategy tables to JSON records, one file per
// rule combination plus an index manifest.
package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/lox/blackjack-solver/blackjack"
	"github.com/lox/blackjack-solver/internal/fileutil"
)

// dealerHeaders is the column header row shared by all three tables.
var dealerHeaders = []string{"", "2", "3", "4", "5", "6", "7", "8", "9", "10", "A"}

// Config mirrors the rule flags in the exported record.
type Config struct {
	Decks            int     `json:"num_decks"`
	DealerHitsSoft17 bool    `json:"dealer_hits_soft_17"`
	DoubleAfterSplit bool    `json:"double_after_split"`
	ResplitAces      bool    `json:"resplit_aces"`
	MaxSplitHands    int     `json:"max_split_hands"`
	DealerPeeks      bool    `json:"dealer_peeks"`
	LateSurrender    bool    `json:"late_surrender"`
	BlackjackPayout  float64 `json:"blackjack_pays"`
	Description      string  `json:"description"`
}

// Row is one labeled strategy table row.
type Row struct {
	Label   string   `json:"label"`
	Actions []string `json:"actions"`
}

// Table is one strategy grid with its headers.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Record is the full per-configuration export.
type Record struct {
	Config    Config  `json:"config"`
	Hard      Table   `json:"hard"`
	Soft      Table   `json:"soft"`
	Pairs     Table   `json:"pairs"`
	HouseEdge float64 `json:"house_edge_pct"`
}

// IndexEntry is one line of the index.json manifest.
type IndexEntry struct {
	Filename string `json:"filename"`
	Config   Config `json:"config"`
}

// Filename derives the export file name from the rule flags, e.g.
// "6-s17-das-nrsa-peek-nls.json". The infinite shoe is spelled "inf".
func Filename(r blackjack.Rules) string {
	decks := "inf"
	if r.Decks > 0 {
		decks = fmt.Sprintf("%d", r.Decks)
	}
	flag := func(on bool, yes, no string) string {
		if on {
			return yes
		}
		return no
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s-%s.json",
		decks,
		flag(r.DealerHitsSoft17, "h17", "s17"),
		flag(r.DoubleAfterSplit, "das", "ndas"),
		flag(r.ResplitAces, "rsa", "nrsa"),
		flag(r.DealerPeeks, "peek", "nopeek"),
		flag(r.LateSurrender, "ls", "nls"))
}

// NewRecord converts tables and a house edge into the export shape.
func NewRecord(t *blackjack.Tables, houseEdge float64) Record {
	rules := t.Rules()
	return Record{
		Config: Config{
			Decks:            rules.Decks,
			DealerHitsSoft17: rules.DealerHitsSoft17,
			DoubleAfterSplit: rules.DoubleAfterSplit,
			ResplitAces:      rules.ResplitAces,
			MaxSplitHands:    rules.MaxSplitHands,
			DealerPeeks:      rules.DealerPeeks,
			LateSurrender:    rules.LateSurrender,
			BlackjackPayout:  rules.BlackjackPayout,
			Description:      rules.String(),
		},
		Hard:      hardTable(t),
		Soft:      softTable(t),
		Pairs:     pairTable(t),
		HouseEdge: houseEdge,
	}
}

// Write marshals the record and writes it atomically under dir, returning
// the file name used.
func Write(dir string, rec Record, rules blackjack.Rules) (string, error) {
	name := Filename(rules)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

// WriteIndex writes the index.json manifest listing every exported record.
func WriteIndex(dir string, entries []IndexEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(dir, "index.json"), data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

func hardTable(t *blackjack.Tables) Table {
	tbl := Table{Headers: dealerHeaders}
	for total := 5; total <= 21; total++ {
		row := Row{Label: fmt.Sprintf("%d", total)}
		for _, up := range blackjack.Ranks {
			row.Actions = append(row.Actions, string(t.Hard(total, up)))
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

func softTable(t *blackjack.Tables) Table {
	tbl := Table{Headers: dealerHeaders}
	for other := blackjack.Two; other <= blackjack.Nine; other++ {
		row := Row{Label: fmt.Sprintf("A,%s", other)}
		for _, up := range blackjack.Ranks {
			row.Actions = append(row.Actions, string(t.Soft(other, up)))
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

func pairTable(t *blackjack.Tables) Table {
	tbl := Table{Headers: dealerHeaders}
	for _, pair := range blackjack.Ranks {
		row := Row{Label: fmt.Sprintf("%s,%s", pair, pair)}
		for _, up := range blackjack.Ranks {
			row.Actions = append(row.Actions, string(t.Pair(pair, up)))
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}
