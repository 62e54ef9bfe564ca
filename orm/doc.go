/*
Package orm provides an easy to use db wrapper.

Every entity is stored under a key prefixed with the name of the bucket it
belongs to. Entities implement the Model interface and are serialized
using their own Marshal and Unmarshal methods.
*/
package orm
