// Package order contains the order aggregate and its parts: checkout stages,
// line items, addresses, shipments, and shipping rates. The aggregate guards
// the checkout invariants (forward-only stage movement, single order
// currency, at most one selected rate per shipment) while the checkout
// machine in the services package drives the actual transitions.
package order
