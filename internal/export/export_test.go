package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-solver/blackjack"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*blackjack.Rules)
		want   string
	}{
		{"defaults", nil, "6-s17-das-nrsa-peek-nls.json"},
		{"infinite", func(r *blackjack.Rules) { r.Decks = 0 }, "inf-s17-das-nrsa-peek-nls.json"},
		{"kitchen sink", func(r *blackjack.Rules) {
			r.Decks = 2
			r.DealerHitsSoft17 = true
			r.DoubleAfterSplit = false
			r.ResplitAces = true
			r.DealerPeeks = false
			r.LateSurrender = true
		}, "2-h17-ndas-rsa-nopeek-ls.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := blackjack.DefaultRules()
			if tt.mutate != nil {
				tt.mutate(&rules)
			}
			assert.Equal(t, tt.want, Filename(rules))
		})
	}
}

func buildRecord(t *testing.T) (Record, blackjack.Rules) {
	t.Helper()
	rules := blackjack.DefaultRules()
	rules.Decks = 0 // infinite keeps the test fast
	tables, err := blackjack.BuildTables(rules)
	require.NoError(t, err)
	return NewRecord(tables, 0.51), rules
}

func TestNewRecordShape(t *testing.T) {
	rec, rules := buildRecord(t)

	assert.Equal(t, rules.Decks, rec.Config.Decks)
	assert.Equal(t, rules.String(), rec.Config.Description)
	assert.Equal(t, 0.51, rec.HouseEdge)

	assert.Len(t, rec.Hard.Headers, 11)
	assert.Len(t, rec.Hard.Rows, 17) // hard 5-21
	assert.Len(t, rec.Soft.Rows, 8)  // A,2-A,9
	assert.Len(t, rec.Pairs.Rows, 10)

	assert.Equal(t, "5", rec.Hard.Rows[0].Label)
	assert.Equal(t, "21", rec.Hard.Rows[16].Label)
	assert.Equal(t, "A,2", rec.Soft.Rows[0].Label)
	assert.Equal(t, "A,A", rec.Pairs.Rows[9].Label)

	for _, row := range rec.Hard.Rows {
		assert.Len(t, row.Actions, 10)
		for _, action := range row.Actions {
			assert.NotEmpty(t, action)
		}
	}
}

func TestWriteAndIndexRoundTrip(t *testing.T) {
	rec, rules := buildRecord(t)
	dir := t.TempDir()

	name, err := Write(dir, rec, rules)
	require.NoError(t, err)
	assert.Equal(t, Filename(rules), name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	var loaded Record
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, rec, loaded)

	entries := []IndexEntry{{Filename: name, Config: rec.Config}}
	require.NoError(t, WriteIndex(dir, entries))

	data, err = os.ReadFile(filepath.Join(dir, "index.json"))
	require.NoError(t, err)
	var loadedIndex []IndexEntry
	require.NoError(t, json.Unmarshal(data, &loadedIndex))
	assert.Equal(t, entries, loadedIndex)
}
