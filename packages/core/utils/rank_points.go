package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRankPoints is the points awarded per finishing rank when a placement
// carries no explicit points.
var DefaultRankPoints = map[int]int64{
	1: 200,
	2: 150,
	3: 120,
	4: 100,
	5: 80,
	6: 60,
	7: 50,
	8: 40,
	9: 30,
}

// RankTable returns a copy of table, or of DefaultRankPoints when table is empty.
func RankTable(table map[int]int64) map[int]int64 {
	if len(table) == 0 {
		table = DefaultRankPoints
	}
	out := make(map[int]int64, len(table))
	for rank, points := range table {
		out[rank] = points
	}
	return out
}

// ParseRankTable converts string-keyed config entries ("1": 200) into a rank table.
func ParseRankTable(raw map[string]int64) (map[int]int64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	table := make(map[int]int64, len(raw))
	for key, points := range raw {
		rank, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || rank < 1 {
			return nil, fmt.Errorf("invalid rank %q in rank table", key)
		}
		table[rank] = points
	}
	return table, nil
}

// GameReason is the history reason used when a placement gives none.
func GameReason(label string, rank int) string {
	return fmt.Sprintf("%s – Rank %d", label, rank)
}
