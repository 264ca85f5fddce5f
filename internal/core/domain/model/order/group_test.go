package order_test

import (
	"testing"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupType_AllowedStatuses(t *testing.T) {
	t.Run("hardware excludes in_transit", func(t *testing.T) {
		err := order.Hardware.ValidateStatus(order.InTransit)
		require.ErrorIs(t, err, order.ErrInvalidStatusForGroup)
		assert.NotContains(t, order.Hardware.AllowedStatuses(), order.InTransit)
	})

	for _, g := range []order.GroupType{order.Workshop, order.LPO, order.Custom} {
		t.Run(g.String()+" allows every status", func(t *testing.T) {
			for _, s := range order.Statuses() {
				require.NoError(t, g.ValidateStatus(s))
			}
		})
	}

	t.Run("unknown status is never allowed", func(t *testing.T) {
		require.ErrorIs(t, order.Workshop.ValidateStatus(order.Unknown), order.ErrInvalidStatusForGroup)
	})
}

func TestParseGroupType(t *testing.T) {
	for _, g := range order.GroupTypes() {
		parsed, err := order.ParseGroupType(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}

	_, err := order.ParseGroupType("warehouse-2")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "Workshop / Warehouse", order.Workshop.Label())
}

func TestNewGroupRef(t *testing.T) {
	t.Run("lpo requires supplier", func(t *testing.T) {
		_, err := order.NewGroupRef(order.LPO, "  ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("other groups reject supplier", func(t *testing.T) {
		_, err := order.NewGroupRef(order.Hardware, "SUP-1")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid group", func(t *testing.T) {
		_, err := order.NewGroupRef(order.UnknownGroup, "")
		require.Error(t, err)
	})

	t.Run("string round trip", func(t *testing.T) {
		for _, ref := range []order.GroupRef{
			order.MustGroupRef(order.Workshop, ""),
			order.MustGroupRef(order.LPO, "SUP-9"),
		} {
			parsed, err := order.ParseGroupRef(ref.String())
			require.NoError(t, err)
			assert.Equal(t, ref, parsed)
		}
		assert.Equal(t, "lpo[SUP-9]", order.MustGroupRef(order.LPO, " SUP-9 ").String())
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		require.Error(t, order.GroupRef{}.Validate())
		_, err := order.ParseGroupRef("")
		require.Error(t, err)
	})
}
