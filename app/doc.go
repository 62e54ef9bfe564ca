/*
Package app contains the pieces needed to assemble extensions into a running
state machine: a router dispatching messages to handlers, decorator chains,
genesis initialization and the Application executing transactions block by
block.
*/
package app
