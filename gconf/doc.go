/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps its configuration as a single entity stored under the
"_c:<package name>" key. Configuration is loaded from the genesis file
during the chain initialization and read by handlers when processing
messages.

Not being able to load a configuration is a critical condition. Handlers
must fail the transaction instead of guessing the values.
*/
package gconf
