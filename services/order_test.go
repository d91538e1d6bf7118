package services

import (
	"errors"
	"testing"

	"littlelemon-api/authz"
	"littlelemon-api/models"
)

func TestPlaceOrderSnapshotsCart(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	salad := createMenuItem(t, db, "Greek Salad", "12.99")

	cart := NewCartService(db)
	if _, err := cart.AddOrUpdate(alice.ID, salad.ID, 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	orders := NewOrderService(db)
	order, err := orders.Place(alice.ID)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	if order.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if !order.Total.Equal(mustDecimal(t, "25.98")) {
		t.Errorf("total = %s, want 25.98", order.Total)
	}
	if len(order.Lines) != 1 {
		t.Fatalf("order lines = %d, want 1", len(order.Lines))
	}
	line := order.Lines[0]
	if line.Quantity != 2 || !line.UnitPrice.Equal(mustDecimal(t, "12.99")) || !line.LinePrice.Equal(mustDecimal(t, "25.98")) {
		t.Errorf("line = qty %d unit %s total %s, want qty 2 unit 12.99 total 25.98",
			line.Quantity, line.UnitPrice, line.LinePrice)
	}

	lines, err := cart.List(alice.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("cart lines after checkout = %d, want 0", len(lines))
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)

	orders := NewOrderService(db)
	if _, err := orders.Place(alice.ID); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("error = %v, want ErrEmptyCart", err)
	}
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("orders created = %d, want 0", count)
	}
}

func TestSecondPlacementSeesEmptyCart(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	salad := createMenuItem(t, db, "Greek Salad", "12.99")

	cart := NewCartService(db)
	if _, err := cart.AddOrUpdate(alice.ID, salad.ID, 1); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	orders := NewOrderService(db)
	if _, err := orders.Place(alice.ID); err != nil {
		t.Fatalf("first Place: %v", err)
	}
	if _, err := orders.Place(alice.ID); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("second Place error = %v, want ErrEmptyCart", err)
	}
	var count int64
	db.Model(&models.Order{}).Where("user_id = ?", alice.ID).Count(&count)
	if count != 1 {
		t.Errorf("orders = %d, want exactly 1", count)
	}
}

func TestPlaceOrderLeavesOtherCartsAlone(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)
	salad := createMenuItem(t, db, "Greek Salad", "12.99")

	cart := NewCartService(db)
	if _, err := cart.AddOrUpdate(alice.ID, salad.ID, 1); err != nil {
		t.Fatalf("alice add: %v", err)
	}
	if _, err := cart.AddOrUpdate(bob.ID, salad.ID, 5); err != nil {
		t.Fatalf("bob add: %v", err)
	}

	if _, err := NewOrderService(db).Place(alice.ID); err != nil {
		t.Fatalf("Place: %v", err)
	}

	bobLines, err := cart.List(bob.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bobLines) != 1 || bobLines[0].Quantity != 5 {
		t.Errorf("bob's cart was touched: %+v", bobLines)
	}
}

func TestOrderTotalFrozenAfterCatalogPriceChange(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	salad := createMenuItem(t, db, "Greek Salad", "12.99")

	cart := NewCartService(db)
	if _, err := cart.AddOrUpdate(alice.ID, salad.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	orders := NewOrderService(db)
	placed, err := orders.Place(alice.ID)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	if err := db.Model(salad).Update("price", mustDecimal(t, "99.99")).Error; err != nil {
		t.Fatalf("update catalog price: %v", err)
	}

	got, err := orders.Get(authz.RoleCustomer, alice.ID, placed.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Total.Equal(mustDecimal(t, "25.98")) {
		t.Errorf("total = %s, want frozen 25.98", got.Total)
	}
	sum := mustDecimal(t, "0")
	for _, l := range got.Lines {
		sum = sum.Add(l.LinePrice)
	}
	if !got.Total.Equal(sum) {
		t.Errorf("total %s != sum of line prices %s", got.Total, sum)
	}
}

func TestOrderVisibilityByRole(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)
	crew := createUser(t, db, "crew", false, models.GroupDeliveryCrew)
	manager := createUser(t, db, "manager", false, models.GroupManager)
	salad := createMenuItem(t, db, "Greek Salad", "12.99")

	cart := NewCartService(db)
	orders := NewOrderService(db)
	for _, u := range []*models.User{alice, bob} {
		if _, err := cart.AddOrUpdate(u.ID, salad.ID, 1); err != nil {
			t.Fatalf("add: %v", err)
		}
		if _, err := orders.Place(u.ID); err != nil {
			t.Fatalf("Place: %v", err)
		}
	}

	aliceOrders, err := orders.List(authz.RoleCustomer, alice.ID, "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(aliceOrders) != 1 || aliceOrders[0].UserID != alice.ID {
		t.Errorf("customer sees %d orders, want only their own", len(aliceOrders))
	}

	crewOrders, err := orders.List(authz.RoleDeliveryCrew, crew.ID, "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(crewOrders) != 0 {
		t.Errorf("unassigned crew sees %d orders, want 0", len(crewOrders))
	}

	managerOrders, err := orders.List(authz.RoleManager, manager.ID, "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(managerOrders) != 2 {
		t.Errorf("manager sees %d orders, want all 2", len(managerOrders))
	}

	// Bob's order is not-found for alice, not forbidden.
	bobOrders, _ := orders.List(authz.RoleCustomer, bob.ID, "", "")
	if _, err := orders.Get(authz.RoleCustomer, alice.ID, bobOrders[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user Get error = %v, want ErrNotFound", err)
	}
}

func TestCrewUpdateStatusOnly(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	crew := createUser(t, db, "crew", false, models.GroupDeliveryCrew)
	other := createUser(t, db, "other", false, models.GroupDeliveryCrew)
	salad := createMenuItem(t, db, "Greek Salad", "12.99")

	cart := NewCartService(db)
	orders := NewOrderService(db)
	if _, err := cart.AddOrUpdate(alice.ID, salad.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	placed, err := orders.Place(alice.ID)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := orders.AssignDeliveryCrew(authz.RoleManager, placed.ID, crew.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// Submitting delivery_crew alongside status is rejected outright and
	// nothing is applied.
	delivered := string(models.StatusDelivered)
	_, err = orders.Update(authz.RoleDeliveryCrew, crew.ID, placed.ID, authz.OrderPatch{
		Status:         &delivered,
		DeliveryCrewID: &other.ID,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
	got, err := orders.Get(authz.RoleDeliveryCrew, crew.ID, placed.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("status = %s, want untouched pending", got.Status)
	}
	if got.DeliveryCrewID == nil || *got.DeliveryCrewID != crew.ID {
		t.Errorf("delivery crew = %v, want untouched %d", got.DeliveryCrewID, crew.ID)
	}

	// A status-only patch goes through.
	got, err = orders.Update(authz.RoleDeliveryCrew, crew.ID, placed.ID, authz.OrderPatch{Status: &delivered})
	if err != nil {
		t.Fatalf("status-only update: %v", err)
	}
	if got.Status != models.StatusDelivered {
		t.Errorf("status = %s, want delivered", got.Status)
	}

	// Delivered is terminal.
	pending := string(models.StatusPending)
	if _, err := orders.Update(authz.RoleManager, 0, placed.ID, authz.OrderPatch{Status: &pending}); err == nil {
		t.Error("delivered → pending accepted, want rejection")
	}
}

func TestCrewCannotTouchUnassignedOrder(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	crew := createUser(t, db, "crew", false, models.GroupDeliveryCrew)
	salad := createMenuItem(t, db, "Greek Salad", "12.99")

	cart := NewCartService(db)
	orders := NewOrderService(db)
	if _, err := cart.AddOrUpdate(alice.ID, salad.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	placed, err := orders.Place(alice.ID)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	delivered := string(models.StatusDelivered)
	if _, err := orders.Update(authz.RoleDeliveryCrew, crew.ID, placed.ID, authz.OrderPatch{Status: &delivered}); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound (order not assigned to crew)", err)
	}
}

func TestAssignDeliveryCrew(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	crew := createUser(t, db, "crew", false, models.GroupDeliveryCrew)
	notCrew := createUser(t, db, "notcrew", false)
	salad := createMenuItem(t, db, "Greek Salad", "12.99")

	cart := NewCartService(db)
	orders := NewOrderService(db)
	if _, err := cart.AddOrUpdate(alice.ID, salad.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	placed, err := orders.Place(alice.ID)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	if _, err := orders.AssignDeliveryCrew(authz.RoleCustomer, placed.ID, crew.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("customer assign error = %v, want ErrForbidden", err)
	}
	if _, err := orders.AssignDeliveryCrew(authz.RoleManager, placed.ID, notCrew.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-crew target error = %v, want ErrNotFound", err)
	}

	got, err := orders.AssignDeliveryCrew(authz.RoleManager, placed.ID, crew.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got.DeliveryCrewID == nil || *got.DeliveryCrewID != crew.ID {
		t.Errorf("delivery crew = %v, want %d", got.DeliveryCrewID, crew.ID)
	}
}

func TestCustomerCannotUpdateOrders(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", false)
	salad := createMenuItem(t, db, "Greek Salad", "12.99")

	cart := NewCartService(db)
	orders := NewOrderService(db)
	if _, err := cart.AddOrUpdate(alice.ID, salad.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	placed, err := orders.Place(alice.ID)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	delivered := string(models.StatusDelivered)
	if _, err := orders.Update(authz.RoleCustomer, alice.ID, placed.ID, authz.OrderPatch{Status: &delivered}); !errors.Is(err, ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}
