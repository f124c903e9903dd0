package orderstatus

import "shopfront/internal/domain"

// transitions is the full directed edge set. DELIVERED and CANCELLED
// are terminal: no outgoing edges.
var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.StatusPending:        {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed:      {domain.StatusProcessing, domain.StatusCancelled},
	domain.StatusProcessing:     {domain.StatusReadyForPickup, domain.StatusShipped, domain.StatusCancelled},
	domain.StatusReadyForPickup: {domain.StatusDelivered, domain.StatusCancelled},
	domain.StatusShipped:        {domain.StatusDelivered, domain.StatusCancelled},
	domain.StatusDelivered:      {},
	domain.StatusCancelled:      {},
}

func CanTransition(current, target domain.OrderStatus) bool {
	for _, s := range transitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

func IsTerminal(s domain.OrderStatus) bool {
	return len(transitions[s]) == 0
}

// Action pairs a reachable status with the label the management UI
// shows for it.
type Action struct {
	Status domain.OrderStatus `json:"status"`
	Label  string             `json:"label"`
}

// allActions is the fixed, ordered action list. AvailableActions keeps
// this order, not the transition table's.
var allActions = []Action{
	{domain.StatusConfirmed, "Confirm order"},
	{domain.StatusProcessing, "Start processing"},
	{domain.StatusReadyForPickup, "Ready for pickup"},
	{domain.StatusShipped, "Mark as shipped"},
	{domain.StatusDelivered, "Mark as delivered"},
	{domain.StatusCancelled, "Cancel order"},
}

// AvailableActions filters the fixed action list down to the statuses
// reachable from current.
func AvailableActions(current domain.OrderStatus) []Action {
	out := []Action{}
	for _, a := range allActions {
		if CanTransition(current, a.Status) {
			out = append(out, a)
		}
	}
	return out
}

// CanCancelAsCustomer restricts cancellation to early states in the
// customer-facing flow. Note the mismatch with CanCancelAsManager:
// the two rules coexist in production and have not been unified
// (CONFIRMED orders are manager-cancellable but not customer-cancellable).
func CanCancelAsCustomer(s domain.OrderStatus) bool {
	return s == domain.StatusPending || s == domain.StatusProcessing
}

// CanCancelAsManager allows cancellation from any non-terminal state,
// matching the transition table.
func CanCancelAsManager(s domain.OrderStatus) bool {
	return CanTransition(s, domain.StatusCancelled)
}

func CanReorder(s domain.OrderStatus) bool {
	return s == domain.StatusDelivered || s == domain.StatusReadyForPickup
}
