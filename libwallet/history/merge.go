package history

import (
	"sort"

	"github.com/crypto-power/fediwallet/libwallet/txtypes"
)

// MergeTransactions merges incoming records into existing ones. A record in
// incoming replaces the existing record with the same id in place, new ids
// are appended in arrival order, and the result is stably sorted newest
// first. Records with equal timestamps keep that insertion order. Neither
// input is modified.
func MergeTransactions(existing, incoming []*txtypes.Transaction) []*txtypes.Transaction {
	index := make(map[string]int, len(existing)+len(incoming))
	merged := make([]*txtypes.Transaction, 0, len(existing)+len(incoming))

	for _, list := range [][]*txtypes.Transaction{existing, incoming} {
		for _, tx := range list {
			if tx == nil {
				continue
			}
			if i, ok := index[tx.ID]; ok {
				merged[i] = tx
				continue
			}
			index[tx.ID] = len(merged)
			merged = append(merged, tx)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt > merged[j].CreatedAt
	})
	return merged
}
