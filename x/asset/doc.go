/*
Package asset implements a simple asset service living next to the escrow.

Every service is identified by an address and keeps a mapping from an
account to the number of asset units it holds. Units are sold for native
currency at a fixed unit price.

The asset moving entry points are not meant to be used directly by users.
They can only be executed as remote calls addressed to the service and
made by the escrow contract configured for that service.

A purchase happens in two steps. asset/escrow_purchase reserves the units
on the seller's holding and returns a receipt. asset/transfer with the
reserved flag set moves the reserved units to the buyer. A plain
asset/transfer moves any units that are not reserved.
*/
package asset
