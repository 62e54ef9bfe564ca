/*
Package lockup implements a deposit lockup with a tiered bonus.

An administrator configures the bonus strategy: three amount boundaries
(low, mid, high) and a bonus rate for every combination of an amount band
and a duration tier. Opening the deposit window freezes the strategy.

While the window is open, every address can deposit once. The deposited
amount is taken from the allowance the depositor granted to the custody
address, capped to the highest boundary. Deposits below the lowest boundary
are rejected. An empty transfer into the custody address is a deposit with
the medium duration tier.

A deposit can be withdrawn at any time. The bonus is paid only when the
lock period has ended; early withdrawal returns the principal alone. The
bonus is taken from the bonus pool, which must approve the custody address
to spend its funds.
*/
package lockup
