/*
Package bazaar defines the common interfaces that tie the marketplace ledger
together: messages and transactions, handlers with a check/deliver split,
the key-value store family with cache-wrap (savepoint) support, addresses
and conditions, and the query router used for the read-only surface.

Extensions live under x/ and depend only on the interfaces declared here,
which keeps the core testable with fabricated state.
*/
package bazaar
