package order

// DeriveLpoAggregate folds the per-supplier statuses of the LPO group into
// the single status shown for the group.
//
// Precedence, first match wins:
//
//	any Rejected -> Rejected
//	any Pending  -> Pending
//	any Approved -> Approved
//	otherwise    -> Pending
//
// Maps that only hold InTransit, OutForDelivery, Delivered or Cancelled fall
// through to Pending. The result depends only on which statuses are present,
// never on map iteration order.
func DeriveLpoAggregate(suppliers map[string]Status) Status {
	present := make(map[Status]bool, len(suppliers))
	for _, s := range suppliers {
		present[s] = true
	}

	switch {
	case present[Rejected]:
		return Rejected
	case present[Pending]:
		return Pending
	case present[Approved]:
		return Approved
	default:
		return Pending
	}
}
