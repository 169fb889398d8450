package rules

import "github.com/Kitchen-Control/CentralKitchen/internal/model"

// Capability names authorized operations. Route middleware and services both
// consult the same role → capability mapping, so there is exactly one place
// where "who may do what" lives.
type Capability string

const (
	CapManageProducts  Capability = "products:manage"
	CapManageUsers     Capability = "users:manage"
	CapManageStores    Capability = "stores:manage"
	CapViewInventory   Capability = "inventory:view"
	CapProcureStock    Capability = "inventory:procure"
	CapApproveImport   Capability = "inventory:approve-import"
	CapDisposeStock    Capability = "inventory:dispose"
	CapPlaceOrder      Capability = "orders:place"
	CapCancelOrder     Capability = "orders:cancel"
	CapViewAllOrders   Capability = "orders:view-all"
	CapResolveOrder    Capability = "orders:resolve"
	CapManagePlans     Capability = "plans:manage"
	CapRunBatches      Capability = "batches:run"
	CapCreateDelivery  Capability = "deliveries:create"
	CapStartDelivery   Capability = "deliveries:start"
	CapViewDeliveries  Capability = "deliveries:view"
	CapSubmitFeedback  Capability = "feedback:submit"
	CapViewFeedback    Capability = "feedback:view"
)

var roleCapabilities = map[string][]Capability{
	model.RoleAdmin: {
		CapManageProducts, CapManageUsers, CapManageStores, CapViewInventory,
		CapViewAllOrders, CapManagePlans, CapViewDeliveries, CapViewFeedback,
		CapCancelOrder,
	},
	model.RoleManager: {
		CapViewInventory, CapViewAllOrders, CapManagePlans, CapViewDeliveries,
		CapViewFeedback,
	},
	model.RoleKitchen: {
		CapViewInventory, CapRunBatches,
	},
	model.RoleCoordinator: {
		CapViewAllOrders, CapCreateDelivery, CapStartDelivery, CapViewDeliveries,
	},
	model.RoleShipper: {
		CapStartDelivery, CapResolveOrder, CapViewDeliveries,
	},
	model.RoleStore: {
		CapPlaceOrder, CapCancelOrder, CapSubmitFeedback,
	},
	model.RoleWarehouse: {
		CapViewInventory, CapProcureStock, CapApproveImport, CapDisposeStock,
	},
}

// Allowed reports whether role carries the capability.
func Allowed(role string, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

// Capabilities returns the capability set for a role (empty for unknown
// roles — unknown is unauthorized, never a default).
func Capabilities(role string) []Capability {
	caps := roleCapabilities[role]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}
