/*
Package utils provides decorators shared by all extensions: panic recovery,
transaction logging and savepoints that discard partial state changes of a
failed transaction.
*/
package utils
