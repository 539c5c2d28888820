package redis

import (
	"fmt"

	"github.com/scoula/omok-server/internal/model"
)

// Key prefix for all directory data
const keyPrefix = "omok"

// roomKey returns the Redis key for one room's listing entry
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomIndexKey returns the Redis key for the SET of known room ids
func roomIndexKey() string {
	return fmt.Sprintf("%s:idx:rooms", keyPrefix)
}
