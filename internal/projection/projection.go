// Package projection derives the role-specific read-only views every client
// renders from the same canonical order set. All functions are pure: they
// partition, filter and aggregate but never mutate orders.
package projection

import (
	"sort"
	"time"

	"comandas_backend/internal/models"
)

// KitchenBoard partitions active orders into the three buckets the kitchen
// works: pending, in preparation and ready. Delivered and paid orders never
// appear here.
type KitchenBoard struct {
	Pending       []models.Order `json:"pending"`
	InPreparation []models.Order `json:"in_preparation"`
	Ready         []models.Order `json:"ready"`
}

// BuildKitchenBoard groups orders for the kitchen view.
func BuildKitchenBoard(orders []models.Order) KitchenBoard {
	board := KitchenBoard{
		Pending:       []models.Order{},
		InPreparation: []models.Order{},
		Ready:         []models.Order{},
	}
	for _, o := range orders {
		switch o.Status {
		case models.OrderStatusPending:
			board.Pending = append(board.Pending, o)
		case models.OrderStatusInPreparation:
			board.InPreparation = append(board.InPreparation, o)
		case models.OrderStatusReady:
			board.Ready = append(board.Ready, o)
		}
	}
	return board
}

// AdminBoard is the operational kanban: the kitchen's three buckets plus
// delivered orders awaiting payment.
type AdminBoard struct {
	Pending       []models.Order `json:"pending"`
	InPreparation []models.Order `json:"in_preparation"`
	Ready         []models.Order `json:"ready"`
	Delivered     []models.Order `json:"delivered"`
}

// BuildAdminBoard groups orders for the admin kanban view.
func BuildAdminBoard(orders []models.Order) AdminBoard {
	board := AdminBoard{
		Pending:       []models.Order{},
		InPreparation: []models.Order{},
		Ready:         []models.Order{},
		Delivered:     []models.Order{},
	}
	for _, o := range orders {
		switch o.Status {
		case models.OrderStatusPending:
			board.Pending = append(board.Pending, o)
		case models.OrderStatusInPreparation:
			board.InPreparation = append(board.InPreparation, o)
		case models.OrderStatusReady:
			board.Ready = append(board.Ready, o)
		case models.OrderStatusDelivered:
			board.Delivered = append(board.Delivered, o)
		}
	}
	return board
}

// WaiterLists carries the two actionable lists of the waiter view: ready
// orders to deliver and delivered orders to collect payment for.
type WaiterLists struct {
	Ready     []models.Order `json:"ready"`
	Delivered []models.Order `json:"delivered"`
}

// BuildWaiterLists groups orders for the waiter view.
func BuildWaiterLists(orders []models.Order) WaiterLists {
	lists := WaiterLists{
		Ready:     []models.Order{},
		Delivered: []models.Order{},
	}
	for _, o := range orders {
		switch o.Status {
		case models.OrderStatusReady:
			lists.Ready = append(lists.Ready, o)
		case models.OrderStatusDelivered:
			lists.Delivered = append(lists.Delivered, o)
		}
	}
	return lists
}

// HistoryGroup aggregates one calendar month of orders.
type HistoryGroup struct {
	Year   int            `json:"year"`
	Month  time.Month     `json:"month"`
	Count  int            `json:"count"`
	Total  float64        `json:"total"`
	Orders []models.Order `json:"orders"`
}

// History is the sales-history projection: per-month groups sorted most
// recent first, plus the ungrouped chronological listing ("ALL" view).
type History struct {
	Groups []HistoryGroup `json:"groups"`
	All    []models.Order `json:"all"`
}

// BuildHistory groups orders by the UTC calendar month of their creation.
// UTC boundaries keep the grouping key identical on every client regardless
// of the viewer's timezone.
func BuildHistory(orders []models.Order) History {
	type monthKey struct {
		year  int
		month time.Month
	}

	groupIndex := make(map[monthKey]*HistoryGroup)
	for _, o := range orders {
		created := o.CreatedAt.UTC()
		key := monthKey{created.Year(), created.Month()}
		group, ok := groupIndex[key]
		if !ok {
			group = &HistoryGroup{Year: key.year, Month: key.month}
			groupIndex[key] = group
		}
		group.Count++
		group.Total += o.TotalAmount
		group.Orders = append(group.Orders, o)
	}

	groups := make([]HistoryGroup, 0, len(groupIndex))
	for _, group := range groupIndex {
		sort.SliceStable(group.Orders, func(i, j int) bool {
			return group.Orders[i].CreatedAt.After(group.Orders[j].CreatedAt)
		})
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Year != groups[j].Year {
			return groups[i].Year > groups[j].Year
		}
		return groups[i].Month > groups[j].Month
	})

	all := make([]models.Order, len(orders))
	copy(all, orders)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return History{Groups: groups, All: all}
}
