package order

import "plantkart/internal/model"

// AggregateStatus collapses the statuses of a parent's child orders into one
// logical status for list, filter and badge display.
//
// Precedence, first match wins:
//  1. no children            -> pending
//  2. all children one value -> that value
//  3. all delivered          -> delivered
//  4. any shipped            -> shipped
//  5. any processing         -> processing
//  6. any confirmed          -> confirmed
//  7. otherwise              -> pending
//
// The reduction is deliberately lossy: cancelled has no rule of its own, so
// a cancelled child among delivered siblings falls through to pending. Kept
// as-is until a product decision on how cancellation should rank.
func AggregateStatus(statuses []model.Status) model.Status {
	if len(statuses) == 0 {
		return model.StatusPending
	}

	allSame := true
	allDelivered := true
	var anyShipped, anyProcessing, anyConfirmed bool

	for _, s := range statuses {
		if s != statuses[0] {
			allSame = false
		}
		if s != model.StatusDelivered {
			allDelivered = false
		}
		switch s {
		case model.StatusShipped:
			anyShipped = true
		case model.StatusProcessing:
			anyProcessing = true
		case model.StatusConfirmed:
			anyConfirmed = true
		}
	}

	switch {
	case allSame:
		return statuses[0]
	case allDelivered:
		return model.StatusDelivered
	case anyShipped:
		return model.StatusShipped
	case anyProcessing:
		return model.StatusProcessing
	case anyConfirmed:
		return model.StatusConfirmed
	default:
		return model.StatusPending
	}
}

// AggregateLabel returns the display label for an aggregated status. A mixed
// set containing shipped children is labelled "Partially Shipped" rather than
// plain "Shipped".
func AggregateLabel(statuses []model.Status) string {
	agg := AggregateStatus(statuses)
	if agg == model.StatusShipped && !allEqual(statuses) {
		return "Partially Shipped"
	}
	return agg.Label()
}

// ChildStatuses projects the status values of a set of child orders. An
// empty child set yields the order's own status as a single element, so a
// plain (unsplit) order aggregates to itself.
func ChildStatuses(parent *model.Order, children []model.Order) []model.Status {
	if len(children) == 0 {
		if parent == nil {
			return nil
		}
		return []model.Status{parent.Status}
	}

	statuses := make([]model.Status, len(children))
	for i, c := range children {
		statuses[i] = c.Status
	}
	return statuses
}

func allEqual(statuses []model.Status) bool {
	for _, s := range statuses {
		if s != statuses[0] {
			return false
		}
	}
	return true
}
