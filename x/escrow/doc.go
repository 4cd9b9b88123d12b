/*
Package escrow mediates a purchase of units of an asset service for
native currency.

The buyer attaches a payment to escrow/initiate. The contract keeps it,
pays the fees of two remote calls and schedules a chain: the asset service
reserves the units of the seller the payment covers, then escrow/confirm
runs on behalf of the contract itself. The confirmation records the escrow
in the Ledger and schedules the transfer of the reserved units to the
buyer. When the reservation failed, the confirmation refunds the buyer
instead and the chain ends with a failure.

Between initiation and confirmation the purchase is kept as a
PendingPurchase, so that the locked amount never has to be guessed and an
interrupted chain can be refunded by the timeout scan.

An escrow is resolved exactly once. escrow/approve pays the seller,
escrow/cancel refunds the buyer and returns the units to the seller,
escrow/timeout_scan pays the seller of every escrow older than the
configured timeout.

The contract account holds every locked amount. Fees of remote calls
scheduled by confirmations and cancellations are paid from what exceeds
the locked total, a reserve funded at genesis.
*/
package escrow
