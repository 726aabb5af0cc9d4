package sync

import "github.com/greencart/console/internal/fleet"

// Resource descriptors shared by every surface that mirrors a collection.
// routeId and orderId are operator-facing keys fixed at creation, so they are
// stripped from outgoing patches.

// Drivers describes the /drivers collection.
func Drivers() Resource[fleet.Driver] {
	return Resource[fleet.Driver]{
		Path:  "/drivers",
		ID:    func(d fleet.Driver) string { return d.ID },
		Label: "driver",
	}
}

// Routes describes the /routes collection.
func Routes() Resource[fleet.Route] {
	return Resource[fleet.Route]{
		Path:      "/routes",
		ID:        func(r fleet.Route) string { return r.ID },
		Immutable: []string{"routeId"},
		Label:     "route",
	}
}

// Orders describes the /orders collection.
func Orders() Resource[fleet.Order] {
	return Resource[fleet.Order]{
		Path:      "/orders",
		ID:        func(o fleet.Order) string { return o.ID },
		Immutable: []string{"orderId"},
		Label:     "order",
	}
}
