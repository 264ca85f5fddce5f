// Package kernel holds the primitives shared by every aggregate of the
// logistics domain. Currently that is UUID, the identifier of orders and
// line items.
package kernel
