package order

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// GroupType identifies the fulfilment channel a line item belongs to.
type GroupType int

const (
	// UnknownGroup catches uninitialised values.
	UnknownGroup GroupType = iota
	Hardware
	Workshop
	LPO
	Custom
)

var groupTypeStrings = map[GroupType]string{
	Hardware: "hardware",
	Workshop: "workshop",
	LPO:      "lpo",
	Custom:   "custom",
}

// GroupTypes returns every valid group in display order.
func GroupTypes() []GroupType {
	return []GroupType{Hardware, Workshop, LPO, Custom}
}

// ParseGroupType converts the wire name ("hardware", "workshop", "lpo", "custom").
func ParseGroupType(s string) (GroupType, error) {
	for g, name := range groupTypeStrings {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return g, nil
		}
	}
	return UnknownGroup, errs.NewValueIsInvalidErrorWithCause("group", fmt.Errorf("%q is not a product group", s))
}

func (g GroupType) String() string {
	if s, ok := groupTypeStrings[g]; ok {
		return s
	}
	return "unknown"
}

func (g GroupType) Validate() error {
	if _, ok := groupTypeStrings[g]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("group", fmt.Errorf("%d is not a valid product group", g))
	}
	return nil
}

// IsPerSupplier reports whether the group tracks status per supplier.
func (g GroupType) IsPerSupplier() bool {
	return g == LPO
}

// AllowedStatuses returns the statuses a group may be moved to.
func (g GroupType) AllowedStatuses() []Status {
	if g == Hardware {
		return []Status{Pending, Approved, OutForDelivery, Delivered, Rejected, Cancelled}
	}
	return Statuses()
}

// ValidateStatus returns ErrInvalidStatusForGroup when s is not allowed for g.
func (g GroupType) ValidateStatus(s Status) error {
	if err := g.Validate(); err != nil {
		return err
	}
	for _, allowed := range g.AllowedStatuses() {
		if allowed == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not allowed for %s", ErrInvalidStatusForGroup, s, g)
}

// GroupRef addresses one status slot of an order: a whole group, or a single
// supplier inside the LPO group. It is comparable and used as a map key.
type GroupRef struct {
	groupType  GroupType
	supplierID string
}

// NewGroupRef validates that a supplier is given for LPO and only for LPO.
func NewGroupRef(groupType GroupType, supplierID string) (GroupRef, error) {
	if err := groupType.Validate(); err != nil {
		return GroupRef{}, err
	}

	supplierID = strings.TrimSpace(supplierID)
	if groupType.IsPerSupplier() && supplierID == "" {
		return GroupRef{}, errs.NewValueIsRequiredError("supplier_id")
	}
	if !groupType.IsPerSupplier() && supplierID != "" {
		return GroupRef{}, errs.NewValueIsInvalidErrorWithCause(
			"supplier_id",
			fmt.Errorf("%s group is not tracked per supplier", groupType),
		)
	}

	return GroupRef{groupType: groupType, supplierID: supplierID}, nil
}

// MustGroupRef is NewGroupRef for fixed, known-good arguments.
func MustGroupRef(groupType GroupType, supplierID string) GroupRef {
	ref, err := NewGroupRef(groupType, supplierID)
	if err != nil {
		panic(err)
	}
	return ref
}

func (r GroupRef) Type() GroupType {
	return r.groupType
}

// SupplierID is empty for every group except LPO.
func (r GroupRef) SupplierID() string {
	return r.supplierID
}

func (r GroupRef) Validate() error {
	_, err := NewGroupRef(r.groupType, r.supplierID)
	return err
}

// String renders "hardware" or "lpo[SUP-1]".
func (r GroupRef) String() string {
	if r.supplierID == "" {
		return r.groupType.String()
	}
	return r.groupType.String() + "[" + r.supplierID + "]"
}

var errGroupRefIsEmpty = errors.New("group reference is empty")

// ParseGroupRef is the inverse of String.
func ParseGroupRef(s string) (GroupRef, error) {
	if s == "" {
		return GroupRef{}, errs.NewValueIsInvalidErrorWithCause("group", errGroupRefIsEmpty)
	}
	name, supplier, found := strings.Cut(s, "[")
	if found {
		supplier = strings.TrimSuffix(supplier, "]")
	}
	groupType, err := ParseGroupType(name)
	if err != nil {
		return GroupRef{}, err
	}
	return NewGroupRef(groupType, supplier)
}
