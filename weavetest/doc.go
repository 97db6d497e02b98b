/*
Package weavetest provides mocks and helpers for testing extensions.

Structures implemented here are mocks of interfaces used across the
application. They allow to customize any behaviour and track the usage.
In addition, they provide helpers for counting method calls.
*/
package weavetest
