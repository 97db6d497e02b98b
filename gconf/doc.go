/*
Package gconf provides a toolset for managing an extension configuration.

Every extension can define its own configuration object. The object is
stored in the database under a key derived from the package name, so there
is always at most one configuration per extension. Configuration is
initialized from the genesis and can later be updated by whatever rules
the owning extension enforces.
*/
package gconf
