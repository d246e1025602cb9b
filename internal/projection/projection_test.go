package projection

import (
	"testing"
	"time"

	"comandas_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderAt(id int64, status models.OrderStatus, total float64, createdAt time.Time) models.Order {
	return models.Order{ID: id, Status: status, TotalAmount: total, CreatedAt: createdAt}
}

func TestBuildKitchenBoard_ExcludesDeliveredAndPaid(t *testing.T) {
	now := time.Now().UTC()
	orders := []models.Order{
		orderAt(1, models.OrderStatusPending, 10, now),
		orderAt(2, models.OrderStatusInPreparation, 20, now),
		orderAt(3, models.OrderStatusReady, 30, now),
		orderAt(4, models.OrderStatusDelivered, 40, now),
		orderAt(5, models.OrderStatusPaid, 50, now),
	}

	board := BuildKitchenBoard(orders)
	require.Len(t, board.Pending, 1)
	require.Len(t, board.InPreparation, 1)
	require.Len(t, board.Ready, 1)
	assert.Equal(t, int64(1), board.Pending[0].ID)
	assert.Equal(t, int64(2), board.InPreparation[0].ID)
	assert.Equal(t, int64(3), board.Ready[0].ID)
}

func TestBuildAdminBoard_FourBuckets(t *testing.T) {
	now := time.Now().UTC()
	orders := []models.Order{
		orderAt(1, models.OrderStatusPending, 10, now),
		orderAt(2, models.OrderStatusDelivered, 40, now),
		orderAt(3, models.OrderStatusPaid, 50, now),
	}

	board := BuildAdminBoard(orders)
	assert.Len(t, board.Pending, 1)
	assert.Len(t, board.Delivered, 1)
	assert.Empty(t, board.InPreparation)
	assert.Empty(t, board.Ready)
}

func TestBuildWaiterLists_OnlyActionableStatuses(t *testing.T) {
	now := time.Now().UTC()
	orders := []models.Order{
		orderAt(1, models.OrderStatusPending, 10, now),
		orderAt(2, models.OrderStatusReady, 30, now),
		orderAt(3, models.OrderStatusDelivered, 40, now),
	}

	lists := BuildWaiterLists(orders)
	require.Len(t, lists.Ready, 1)
	require.Len(t, lists.Delivered, 1)
	assert.Equal(t, int64(2), lists.Ready[0].ID)
	assert.Equal(t, int64(3), lists.Delivered[0].ID)
}

func TestBuildBoards_EmptyInputYieldsEmptySlices(t *testing.T) {
	board := BuildKitchenBoard(nil)
	assert.NotNil(t, board.Pending)
	assert.NotNil(t, board.InPreparation)
	assert.NotNil(t, board.Ready)

	history := BuildHistory(nil)
	assert.Empty(t, history.Groups)
	assert.Empty(t, history.All)
}

func TestBuildHistory_GroupsByUTCMonthMostRecentFirst(t *testing.T) {
	dec1 := time.Date(2024, time.December, 5, 12, 0, 0, 0, time.UTC)
	dec2 := time.Date(2024, time.December, 20, 18, 30, 0, 0, time.UTC)
	jan := time.Date(2025, time.January, 3, 9, 0, 0, 0, time.UTC)

	orders := []models.Order{
		orderAt(1, models.OrderStatusPaid, 100, dec1),
		orderAt(2, models.OrderStatusPaid, 150, dec2),
		orderAt(3, models.OrderStatusPaid, 200, jan),
	}

	history := BuildHistory(orders)
	require.Len(t, history.Groups, 2)

	assert.Equal(t, 2025, history.Groups[0].Year)
	assert.Equal(t, time.January, history.Groups[0].Month)
	assert.Equal(t, 1, history.Groups[0].Count)
	assert.Equal(t, 200.0, history.Groups[0].Total)

	assert.Equal(t, 2024, history.Groups[1].Year)
	assert.Equal(t, time.December, history.Groups[1].Month)
	assert.Equal(t, 2, history.Groups[1].Count)
	assert.Equal(t, 250.0, history.Groups[1].Total)
	// Within a group, newest first.
	assert.Equal(t, int64(2), history.Groups[1].Orders[0].ID)

	require.Len(t, history.All, 3)
	assert.Equal(t, int64(3), history.All[0].ID)
	assert.Equal(t, int64(2), history.All[1].ID)
	assert.Equal(t, int64(1), history.All[2].ID)
}

func TestBuildHistory_UTCBoundary(t *testing.T) {
	// Dec 31 21:00 in UTC-3 is already January in UTC; the group key must
	// come from the UTC month so every client computes the same buckets.
	buenosAires := time.FixedZone("-03", -3*60*60)
	localNewYear := time.Date(2024, time.December, 31, 21, 30, 0, 0, buenosAires)

	history := BuildHistory([]models.Order{orderAt(1, models.OrderStatusPaid, 75, localNewYear)})
	require.Len(t, history.Groups, 1)
	assert.Equal(t, 2025, history.Groups[0].Year)
	assert.Equal(t, time.January, history.Groups[0].Month)
}

func TestBuildHistory_IncludesAllStatuses(t *testing.T) {
	now := time.Now().UTC()
	orders := []models.Order{
		orderAt(1, models.OrderStatusPending, 10, now),
		orderAt(2, models.OrderStatusPaid, 50, now),
	}

	history := BuildHistory(orders)
	require.Len(t, history.Groups, 1)
	assert.Equal(t, 2, history.Groups[0].Count)
	assert.Equal(t, 60.0, history.Groups[0].Total)
}
