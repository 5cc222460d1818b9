package badger

import (
	"fmt"

	"github.com/poiesic/wikiscope/core"
)

// Key prefixes for different data types
const (
	historyPrefix     = "hist:"
	latestSnapshotKey = "snap:latest"
)

// makeHistoryKey generates a key for a history entry by ID.
func makeHistoryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d", historyPrefix, id))
}
