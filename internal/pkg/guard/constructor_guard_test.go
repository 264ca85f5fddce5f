package guard_test

import (
	"errors"
	"testing"

	"logistics/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("DriverDetails must be created via NewDriverDetails")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type supplierRef struct {
		id    string
		guard guard.ConstructorGuard
	}
	errNotConstructed := errors.New("supplierRef must be created via newSupplierRef")

	newSupplierRef := func(id string) supplierRef {
		return supplierRef{id: id, guard: guard.NewConstructorGuard()}
	}

	t.Run("constructed_value_passes", func(t *testing.T) {
		ref := newSupplierRef("SUP-1")
		require.NoError(t, ref.guard.Validate(errNotConstructed))
		assert.Equal(t, "SUP-1", ref.id)
	})

	t.Run("literal_value_fails", func(t *testing.T) {
		ref := supplierRef{id: "SUP-1"}
		assert.Equal(t, errNotConstructed, ref.guard.Validate(errNotConstructed))
	})

	t.Run("copies_keep_state", func(t *testing.T) {
		ref := newSupplierRef("SUP-2")
		refCopy := ref
		require.NoError(t, refCopy.guard.Validate(errNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
