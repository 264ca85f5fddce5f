// Package order provides the Order aggregate of the construction-materials
// logistics domain together with the value objects its status workflow is
// built from.
//
// An order's line items are fulfilled through four product groups
// (hardware, workshop/warehouse, LPO and custom). Every group carries its
// own Status; the LPO group is tracked per supplier and its displayed status
// is derived from the supplier map by DeriveLpoAggregate.
//
// Key business rules:
//   - Every group starts Pending; LPO suppliers without a recorded status read as Pending
//   - Hardware never goes InTransit
//   - Rejected is only recorded together with a non-empty RejectionRecord note
//   - InTransit and OutForDelivery are only recorded together with DriverDetails
//     for that phase; until then a request is held as a PendingTransition
//   - Records are never removed, only overwritten
package order
