package querycache

// Mutation identifies a write operation against the remote store.
type Mutation string

const (
	MutationPropertyCreate      Mutation = "property.create"
	MutationPropertyUpdate      Mutation = "property.update"
	MutationPropertyDelete      Mutation = "property.delete"
	MutationBookingCreate       Mutation = "booking.create"
	MutationBookingStatusUpdate Mutation = "booking.status_update"
	MutationMessageSend         Mutation = "message.send"
	MutationConversationCreate  Mutation = "conversation.create"
	MutationReviewCreate        Mutation = "review.create"
)

// invalidations is the single source of truth for which cached collections go
// stale after each mutation. Services must not invalidate ad hoc; they report
// the mutation kind and this table decides. Review creation also touches
// properties because average_rating and total_reviews are derived columns.
var invalidations = map[Mutation][]Entity{
	MutationPropertyCreate:      {EntityProperties, EntityHostProperties},
	MutationPropertyUpdate:      {EntityProperties, EntityHostProperties, EntityProperty},
	MutationPropertyDelete:      {EntityProperties, EntityHostProperties, EntityProperty},
	MutationBookingCreate:       {EntityBookings, EntityHostBookings},
	MutationBookingStatusUpdate: {EntityBookings, EntityHostBookings},
	MutationMessageSend:         {EntityMessages, EntityConversations},
	MutationConversationCreate:  {EntityConversations},
	MutationReviewCreate:        {EntityReviews, EntityProperties, EntityProperty},
}

// AffectedEntities returns the entities whose cached views must be dropped
// after a successful mutation of the given kind.
func AffectedEntities(m Mutation) []Entity {
	return invalidations[m]
}
