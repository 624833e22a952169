/*
Package keys defines the key abstraction used by EntityRepo.

A store key has a mandatory hash (partition) component and an optional range
(sort) component:

	keys.HashOnly("USER#123")
	keys.Composite("USER#123", "ORDER#456")

A Descriptor is the per-entity-type strategy that derives keys from
identifiers. Hash-key-only types supply one derivation function; range-key-aware
types supply two:

	// Single hash key
	desc := keys.NewDescriptor[Player, string](func(id string) any {
	    return "PLAYER#" + id
	})

	// Composite hash + range key
	type OrderID struct{ UserID, OrderID string }
	desc := keys.NewCompositeDescriptor[Order, OrderID](
	    func(id OrderID) any { return "USER#" + id.UserID },
	    func(id OrderID) any { return "ORDER#" + id.OrderID },
	)

Whether a type is range-key-aware is fixed for the descriptor's lifetime and
never varies per call. Descriptors are immutable and safe for concurrent use.
*/
package keys
