/*
Package x contains the extensions of the lockup application and the
authentication helpers they share.

Extensions implement handlers and decorators and can be combined together
to construct an application. cash is the asset ledger holding balances and
allowances, lockup is the deposit engine moving assets through the cash
controller, utils provides the decorators every application uses.

Avoid stutter in the exported names of an extension. Use eg.
`lockup.DepositMsg` in place of `lockup.LockupDepositMsg`.
*/
package x
