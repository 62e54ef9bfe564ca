/*
Package cash implements the asset ledger the lockup extension operates on.

Each address owns a wallet holding a set of coins. The balance of any coin
may never go below zero. Apart from moving coins between wallets, an owner
can approve another address to spend a limited amount of its coins on its
behalf.

An address can be registered as a receiver. Every transfer into that
address is reported to the receiver, which allows an extension to react on
incoming funds. A transfer with no value is accepted only toward a
registered receiver and acts as a plain notification.
*/
package cash
