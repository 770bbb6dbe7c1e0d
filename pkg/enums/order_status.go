package enums

// OrderStatus is deliberately open-ended: the system itself only ever
// assigns Pending, and admins may transition an order to any non-empty
// string, so there is no closed validation set here.
type OrderStatus = string

const (
	OrderStatusPending OrderStatus = "pending"
)
