package order

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the status workflow. It owns the line items,
// one status per group (per supplier for LPO), the rejection notes and the
// driver details recorded for dispatch phases.
//
// Invariants:
//   - Hardware, Workshop and Custom always have a status; LPO has one per
//     supplier referenced by its line items, defaulting to Pending
//   - A group is Rejected only with a RejectionRecord for it
//   - A group is InTransit/OutForDelivery only with DriverDetails for that phase
//   - Statuses are only ones allowed for the group's type
type Order struct {
	id        kernel.UUID
	number    string
	customer  string
	site      string
	createdAt time.Time

	lineItems     []*LineItem
	statuses      map[GroupRef]Status
	rejections    map[GroupRef]RejectionRecord
	driverDetails map[driverKey]DriverDetails
	events        []StatusChanged

	isConstructed bool
}

// NewOrder creates an order with every group Pending.
//
// Example:
//
//	cement, _ := order.NewLineItem(kernel.NewUUID(), "Cement 50kg", order.LPO, "SUP-7", 40, nil)
//	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1042", "Acme Builders", "Tower B", []*order.LineItem{cement}, time.Now())
func NewOrder(
	id kernel.UUID,
	number string,
	customer string,
	site string,
	lineItems []*LineItem,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		statuses:      make(map[GroupRef]Status),
		rejections:    make(map[GroupRef]RejectionRecord),
		driverDetails: make(map[driverKey]DriverDetails),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomer(customer),
		o.setSite(site),
		o.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	for _, g := range []GroupType{Hardware, Workshop, Custom} {
		o.statuses[GroupRef{groupType: g}] = Pending
	}
	for _, supplier := range o.Suppliers() {
		o.statuses[GroupRef{groupType: LPO, supplierID: supplier}] = Pending
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. Statuses missing from the
// map read as Pending; records must satisfy the aggregate invariants.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customer string,
	site string,
	lineItems []*LineItem,
	createdAt time.Time,
	statuses map[GroupRef]Status,
	rejections []RejectionRecord,
	driverDetails []DriverDetails,
) (*Order, error) {
	o, err := NewOrder(id, number, customer, site, lineItems, createdAt)
	if err != nil {
		return nil, err
	}

	for _, r := range rejections {
		if err = errors.Join(r.Validate(), o.checkGroup(r.Group())); err != nil {
			return nil, err
		}
		o.rejections[r.Group()] = r
	}
	for _, d := range driverDetails {
		if err = errors.Join(d.Validate(), o.checkGroup(d.Group())); err != nil {
			return nil, err
		}
		o.driverDetails[driverKey{group: d.Group(), phase: d.Phase()}] = d
	}

	for ref, s := range statuses {
		if err = o.checkGroup(ref); err != nil {
			return nil, err
		}
		if err = o.checkStatusPayload(ref, s); err != nil {
			return nil, err
		}
		o.statuses[ref] = s
	}

	return o, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number is the human-facing order reference, e.g. "ORD-1042".
func (o *Order) Number() string {
	return o.number
}

func (o *Order) Customer() string {
	return o.customer
}

// Site is the construction site the materials are delivered to.
func (o *Order) Site() string {
	return o.site
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// LineItems returns a copy of the item list.
func (o *Order) LineItems() []*LineItem {
	out := make([]*LineItem, len(o.lineItems))
	copy(out, o.lineItems)
	return out
}

// LineItemsOf returns the items fulfilled through group g.
func (o *Order) LineItemsOf(g GroupType) []*LineItem {
	var out []*LineItem
	for _, item := range o.lineItems {
		if item.group == g {
			out = append(out, item)
		}
	}
	return out
}

// MaterialTotals aggregates the bill of materials across every line item.
func (o *Order) MaterialTotals() []MaterialTotal {
	return SumMaterials(o.lineItems)
}

// Suppliers lists the LPO suppliers referenced by line items, sorted.
func (o *Order) Suppliers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range o.lineItems {
		if item.group == LPO && !seen[item.supplierID] {
			seen[item.supplierID] = true
			out = append(out, item.supplierID)
		}
	}
	sort.Strings(out)
	return out
}

// HasSupplier reports whether an LPO line item references supplierID.
func (o *Order) HasSupplier(supplierID string) bool {
	for _, item := range o.lineItems {
		if item.group == LPO && item.supplierID == supplierID {
			return true
		}
	}
	return false
}

// StatusOf returns the status of one slot. For LPO the ref must name a
// supplier of the order, otherwise ErrUnknownSupplier is returned.
func (o *Order) StatusOf(ref GroupRef) (Status, error) {
	if err := o.checkGroup(ref); err != nil {
		return Unknown, err
	}
	if s, ok := o.statuses[ref]; ok {
		return s, nil
	}
	return Pending, nil
}

// GroupStatus is the displayed status of a whole group; for LPO it is the
// aggregate over the supplier map.
func (o *Order) GroupStatus(g GroupType) Status {
	if g == LPO {
		return o.LpoAggregate()
	}
	if s, ok := o.statuses[GroupRef{groupType: g}]; ok {
		return s
	}
	return Pending
}

// SupplierStatuses returns the LPO supplier map with defaults filled in.
func (o *Order) SupplierStatuses() map[string]Status {
	out := make(map[string]Status)
	for _, supplier := range o.Suppliers() {
		s, ok := o.statuses[GroupRef{groupType: LPO, supplierID: supplier}]
		if !ok {
			s = Pending
		}
		out[supplier] = s
	}
	return out
}

// LpoAggregate derives the LPO group status from SupplierStatuses.
func (o *Order) LpoAggregate() Status {
	return DeriveLpoAggregate(o.SupplierStatuses())
}

// Statuses returns a copy of every recorded slot status.
func (o *Order) Statuses() map[GroupRef]Status {
	out := make(map[GroupRef]Status, len(o.statuses))
	for ref, s := range o.statuses {
		out[ref] = s
	}
	return out
}

// Rejection returns the rejection note recorded for ref, if any.
func (o *Order) Rejection(ref GroupRef) (RejectionRecord, bool) {
	r, ok := o.rejections[ref]
	return r, ok
}

// Rejections returns every rejection record ordered by group.
func (o *Order) Rejections() []RejectionRecord {
	out := make([]RejectionRecord, 0, len(o.rejections))
	for _, r := range o.rejections {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].group.String() < out[j].group.String() })
	return out
}

// DriverDetailsFor returns the driver recorded for ref during phase.
func (o *Order) DriverDetailsFor(ref GroupRef, phase Status) (DriverDetails, bool) {
	d, ok := o.driverDetails[driverKey{group: ref, phase: phase}]
	return d, ok
}

// AllDriverDetails returns every recorded driver ordered by group then phase.
func (o *Order) AllDriverDetails() []DriverDetails {
	out := make([]DriverDetails, 0, len(o.driverDetails))
	for _, d := range o.driverDetails {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].group != out[j].group {
			return out[i].group.String() < out[j].group.String()
		}
		return out[i].phase < out[j].phase
	})
	return out
}

// ChangeStatus applies a status that needs no accompanying payload.
// Rejected and the dispatch phases must go through Reject and Dispatch.
func (o *Order) ChangeStatus(ref GroupRef, target Status, at time.Time) error {
	if err := o.checkTransition(ref, target); err != nil {
		return err
	}
	if target.RequiresNote() {
		return fmt.Errorf("%w: %w", ErrMissingRejectionNote, errs.NewValueIsRequiredError("note"))
	}
	if target.IsDispatchPhase() {
		return fmt.Errorf("%w: %s needs driver details", ErrMissingDriverDetails, target)
	}

	o.raise(ref, o.statuses[ref], target, at)
	o.statuses[ref] = target
	return nil
}

// Reject records note for ref and moves it to Rejected in one step.
// An earlier note for the same slot is replaced.
func (o *Order) Reject(ref GroupRef, note string, at time.Time) error {
	if err := o.checkTransition(ref, Rejected); err != nil {
		return err
	}

	record, err := NewRejectionRecord(ref, note, at)
	if err != nil {
		return err
	}

	o.raise(ref, o.statuses[ref], Rejected, at)
	o.rejections[ref] = record
	o.statuses[ref] = Rejected
	return nil
}

// Dispatch records the driver for a dispatch phase and moves the slot to that phase.
func (o *Order) Dispatch(details DriverDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}
	if err := o.checkTransition(details.Group(), details.Phase()); err != nil {
		return err
	}

	o.raise(details.Group(), o.statuses[details.Group()], details.Phase(), details.RecordedAt())
	o.driverDetails[driverKey{group: details.Group(), phase: details.Phase()}] = details
	o.statuses[details.Group()] = details.Phase()
	return nil
}

// EditRejectionNote replaces the note of an existing rejection; the status is untouched.
func (o *Order) EditRejectionNote(ref GroupRef, note string, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.checkGroup(ref); err != nil {
		return err
	}

	current, ok := o.rejections[ref]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoRejectionRecorded, ref)
	}

	edited, err := current.WithNote(note, at)
	if err != nil {
		return err
	}

	o.rejections[ref] = edited
	return nil
}

func (o *Order) checkTransition(ref GroupRef, target Status) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := ref.Type().ValidateStatus(target); err != nil {
		return err
	}
	return o.checkGroup(ref)
}

// checkGroup validates ref and, for LPO, that the supplier is on the order.
func (o *Order) checkGroup(ref GroupRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	if ref.Type() == LPO && !o.HasSupplier(ref.SupplierID()) {
		return fmt.Errorf("%w: %w", ErrUnknownSupplier, errs.NewObjectNotFoundError("supplier", ref.SupplierID()))
	}
	return nil
}

// checkStatusPayload verifies a restored status carries its required record.
func (o *Order) checkStatusPayload(ref GroupRef, s Status) error {
	if err := ref.Type().ValidateStatus(s); err != nil {
		return err
	}
	if s.RequiresNote() {
		if _, ok := o.rejections[ref]; !ok {
			return fmt.Errorf("%w: %s is rejected without a note", ErrMissingRejectionNote, ref)
		}
	}
	if s.IsDispatchPhase() {
		if _, ok := o.driverDetails[driverKey{group: ref, phase: s}]; !ok {
			return fmt.Errorf("%w: %s is %s without driver details", ErrMissingDriverDetails, ref, s)
		}
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

func (o *Order) setSite(site string) error {
	o.site = strings.TrimSpace(site)
	return nil
}

func (o *Order) setLineItems(items []*LineItem) error {
	seen := make(map[kernel.UUID]bool, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if seen[item.ID()] {
			return errs.NewValueIsInvalidErrorWithCause(
				"line_items",
				fmt.Errorf("line item %s appears twice", item.ID()),
			)
		}
		seen[item.ID()] = true
	}
	o.lineItems = append([]*LineItem(nil), items...)
	return nil
}
