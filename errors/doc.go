/*
Package errors implements custom error interfaces for the ledger.

Error declarations should be generic and cover broad range of cases. Each
returned error instance can wrap a generic error declaration to provide more
details. This package provides a broad range of errors declared that can be
used throughout the application. Extensions register their own kinds with
unique codes via the Register function.
*/
package errors
