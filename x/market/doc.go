/*
Package market implements a single-asset marketplace.

Tokens are minted with a creator royalty, listed at a fixed price,
and bought with an atomic settlement that splits the payment between
the creator and the seller. An administrator address, kept in the
package configuration, controls nothing but itself: it can only be
handed over to another address.

Every state transition is a message with its own handler. Handlers
re-validate ownership against the stored state, never against the
message content alone, so a stale listing can never move a token
the seller no longer owns.
*/
package market
