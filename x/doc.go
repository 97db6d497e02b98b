/*
Package x contains some standard extensions and the interfaces they
share.

Extensions implement the ledger business logic as message handlers. The
interfaces in this package, most importantly Authenticator, let the
extensions cooperate without depending on one another.
*/
package x
