package querycache

import "strconv"

// Entity names the logical collection a cached query belongs to. A Key is an
// entity plus an optional scope (a uid, a property id, a conversation id);
// invalidation always works at entity granularity across every scope.
type Entity string

const (
	EntityProperties     Entity = "properties"
	EntityProperty       Entity = "property"
	EntityHostProperties Entity = "host-properties"
	EntityBookings       Entity = "bookings"
	EntityHostBookings   Entity = "host-bookings"
	EntityConversations  Entity = "conversations"
	EntityMessages       Entity = "messages"
	EntityReviews        Entity = "reviews"
)

type Key struct {
	Entity Entity
	Scope  string
}

func NewKey(entity Entity, scope string) Key {
	return Key{Entity: entity, Scope: scope}
}

func IDKey(entity Entity, id uint64) Key {
	return Key{Entity: entity, Scope: strconv.FormatUint(id, 10)}
}

func (k Key) String() string {
	if k.Scope == "" {
		return string(k.Entity)
	}
	return string(k.Entity) + ":" + k.Scope
}
