package services

import (
	"errors"
	"fmt"

	"comandas_backend/internal/models"
)

// Custom Errors for the order lifecycle
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("status transition not allowed from current state")
	ErrUnauthorizedEdge   = errors.New("actor role not authorized for this status transition")
)

// forwardPath is the single authoritative next-status table. Every client,
// regardless of role, gets its allowed transitions from here; none of them
// hardcodes status literals.
var forwardPath = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusPending:       models.OrderStatusInPreparation,
	models.OrderStatusInPreparation: models.OrderStatusReady,
	models.OrderStatusReady:         models.OrderStatusDelivered,
	models.OrderStatusDelivered:     models.OrderStatusPaid,
}

// statusEdge identifies one legal transition.
type statusEdge struct {
	from models.OrderStatus
	to   models.OrderStatus
}

// edgeRoles lists the non-admin roles allowed to drive each edge.
// Admin may drive every edge (override/correction scenarios).
var edgeRoles = map[statusEdge][]models.Role{
	{models.OrderStatusPending, models.OrderStatusInPreparation}: {models.RoleKitchen},
	{models.OrderStatusInPreparation, models.OrderStatusReady}:   {models.RoleKitchen},
	{models.OrderStatusReady, models.OrderStatusDelivered}:       {models.RoleWaiter},
	{models.OrderStatusDelivered, models.OrderStatusPaid}:        {models.RoleWaiter},
}

// NextStatus returns the unique successor of the given status. The second
// return is false for the terminal PAID status.
func NextStatus(current models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := forwardPath[current]
	return next, ok
}

// ValidateTransition decides accept/reject for a requested status change.
// The requested status must be the immediate successor of current (no skips,
// no backward moves, no same-state), and the actor role must own that edge.
func ValidateTransition(current, requested models.OrderStatus, role models.Role) error {
	next, ok := forwardPath[current]
	if !ok || next != requested {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, requested)
	}
	if role == models.RoleAdmin {
		return nil
	}
	for _, allowed := range edgeRoles[statusEdge{current, requested}] {
		if allowed == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s on %s -> %s", ErrUnauthorizedEdge, role, current, requested)
}
