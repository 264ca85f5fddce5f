package order

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// Material is one raw material a product is made of, e.g. 0.5 m3 of sand per
// bag of mortar mix.
type Material struct {
	Name            string
	Unit            string
	QuantityPerUnit float64
}

func (m Material) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errs.NewValueIsRequiredError("material name")
	}
	if m.QuantityPerUnit <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"material quantity",
			fmt.Errorf("%v is not greater than 0", m.QuantityPerUnit),
		)
	}
	return nil
}

// LineItem is one ordered product. LPO items name the supplier fulfilling them.
type LineItem struct {
	id         kernel.UUID
	product    string
	group      GroupType
	supplierID string
	quantity   int
	materials  []Material

	guard guard.ConstructorGuard
}

// NewLineItem validates the item; supplierID is required for LPO items and
// rejected for every other group.
func NewLineItem(
	id kernel.UUID,
	product string,
	group GroupType,
	supplierID string,
	quantity int,
	materials []Material,
) (*LineItem, error) {
	item := &LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setProduct(product),
		item.setGroup(group, supplierID),
		item.setQuantity(quantity),
		item.setMaterials(materials),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (li *LineItem) Validate() error {
	if li == nil {
		return ErrLineItemIsNotConstructed
	}
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li *LineItem) ID() kernel.UUID {
	return li.id
}

func (li *LineItem) Product() string {
	return li.product
}

func (li *LineItem) Group() GroupType {
	return li.group
}

func (li *LineItem) SupplierID() string {
	return li.supplierID
}

func (li *LineItem) Quantity() int {
	return li.quantity
}

// Materials returns a copy of the bill of materials.
func (li *LineItem) Materials() []Material {
	out := make([]Material, len(li.materials))
	copy(out, li.materials)
	return out
}

// GroupRef returns the status slot this item is tracked under.
func (li *LineItem) GroupRef() GroupRef {
	return GroupRef{groupType: li.group, supplierID: li.supplierID}
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setProduct(product string) error {
	product = strings.TrimSpace(product)
	if product == "" {
		return errs.NewValueIsRequiredError("product")
	}
	li.product = product
	return nil
}

func (li *LineItem) setGroup(group GroupType, supplierID string) error {
	ref, err := NewGroupRef(group, supplierID)
	if err != nil {
		return err
	}
	li.group = ref.Type()
	li.supplierID = ref.SupplierID()
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setMaterials(materials []Material) error {
	cleaned := make([]Material, 0, len(materials))
	for _, m := range materials {
		if err := m.validate(); err != nil {
			return err
		}
		cleaned = append(cleaned, Material{
			Name:            strings.TrimSpace(m.Name),
			Unit:            strings.TrimSpace(m.Unit),
			QuantityPerUnit: m.QuantityPerUnit,
		})
	}
	li.materials = cleaned
	return nil
}

// MaterialTotal is the quantity of one material needed across an order.
type MaterialTotal struct {
	Name     string
	Unit     string
	Quantity float64
}

// SumMaterials multiplies every material by its line quantity and sums per
// (name, unit). The result is sorted by name, then unit.
func SumMaterials(items []*LineItem) []MaterialTotal {
	type key struct{ name, unit string }
	totals := make(map[key]float64)

	for _, item := range items {
		for _, m := range item.materials {
			totals[key{m.Name, m.Unit}] += m.QuantityPerUnit * float64(item.quantity)
		}
	}

	out := make([]MaterialTotal, 0, len(totals))
	for k, q := range totals {
		out = append(out, MaterialTotal{Name: k.name, Unit: k.unit, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}
