package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "processing", StatusProcessing.String())
	assert.Equal(t, "shipped", StatusShipped.String())
	assert.Equal(t, "delivered", StatusDelivered.String())
	assert.Equal(t, "Status(42)", Status(42).String())
}

func TestParseStatus(t *testing.T) {
	for st := StatusPending; st <= StatusDelivered; st++ {
		got, err := ParseStatus(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ParseStatus("cancelled")
	require.Error(t, err)
}

func TestAdvanceStatus_ForwardOnly(t *testing.T) {
	o := &Order{ID: "o1", Status: StatusPending}

	want := []Status{StatusProcessing, StatusShipped, StatusDelivered}
	for _, expected := range want {
		st, err := o.AdvanceStatus()
		require.NoError(t, err)
		assert.Equal(t, expected, st)
		assert.Equal(t, expected, o.Status)
	}

	// Delivered is final.
	st, err := o.AdvanceStatus()
	require.ErrorIs(t, err, ErrDelivered)
	assert.Equal(t, StatusDelivered, st)
}

func TestLedger_AppendAndLookup(t *testing.T) {
	l := NewLedger()

	o := &Order{
		ID:        "o1",
		Total:     decimal.RequireFromString("80.00"),
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	require.NoError(t, l.Append(o))

	got, err := l.ByID("o1")
	require.NoError(t, err)
	assert.Same(t, o, got)
}

func TestLedger_ByID_NotFound(t *testing.T) {
	_, err := NewLedger().ByID("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLedger_RejectsDuplicateID(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Append(&Order{ID: "o1"}))

	err := l.Append(&Order{ID: "o1"})
	require.Error(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestLedger_AllPreservesPlacementOrder(t *testing.T) {
	l := NewLedger()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, l.Append(&Order{ID: id}))
	}

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].ID, all[1].ID, all[2].ID})
}
