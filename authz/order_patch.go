package authz

// OrderPatch is the mutable slice of an order as submitted by a caller.
// Nil means "not submitted". Every other order field is frozen at checkout
// and never reaches this type.
type OrderPatch struct {
	Status         *string
	DeliveryCrewID *uint
}

// OrderPatchRules applies the field-level policy for order updates:
//   - delivery crew may change status only; submitting delivery_crew is an
//     outright rejection, not a silent drop
//   - managers and admins may change both status and delivery_crew
//
// It returns the patch that is allowed to reach storage, or ok=false when
// the caller must receive a forbidden outcome.
func OrderPatchRules(r Role, submitted OrderPatch) (allowed OrderPatch, ok bool) {
	switch r {
	case RoleDeliveryCrew:
		if submitted.DeliveryCrewID != nil {
			return OrderPatch{}, false
		}
		return OrderPatch{Status: submitted.Status}, true
	case RoleManager, RoleAdmin:
		return submitted, true
	default:
		return OrderPatch{}, false
	}
}
