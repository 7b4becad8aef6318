package domain

import "testing"

func TestCanTransition_FromPending(t *testing.T) {
	for _, to := range []OrderStatus{OrderStatusProcessed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCanceled} {
		if !CanTransition(OrderStatusPending, to) {
			t.Errorf("expected pending -> %s to be allowed", to)
		}
	}
}

func TestCanTransition_TerminalStatesAreFinal(t *testing.T) {
	all := []OrderStatus{OrderStatusPending, OrderStatusProcessed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCanceled}
	for _, from := range []OrderStatus{OrderStatusDelivered, OrderStatusCanceled} {
		for _, to := range all {
			if CanTransition(from, to) {
				t.Errorf("expected %s -> %s to be rejected", from, to)
			}
		}
	}
}

func TestCanTransition_ShippedOnlyDelivers(t *testing.T) {
	if !CanTransition(OrderStatusShipped, OrderStatusDelivered) {
		t.Error("expected shipped -> delivered to be allowed")
	}
	if CanTransition(OrderStatusShipped, OrderStatusCanceled) {
		t.Error("expected shipped -> canceled to be rejected")
	}
	if CanTransition(OrderStatusShipped, OrderStatusPending) {
		t.Error("expected shipped -> pending to be rejected")
	}
}

func TestValidOrderStatus(t *testing.T) {
	if !ValidOrderStatus(OrderStatusProcessed) {
		t.Error("processed should be a valid status")
	}
	if ValidOrderStatus("refunded") {
		t.Error("refunded is not a valid status")
	}
}

func TestHoldsStock(t *testing.T) {
	cases := map[OrderStatus]bool{
		OrderStatusPending:   true,
		OrderStatusProcessed: true,
		OrderStatusShipped:   true,
		OrderStatusDelivered: false,
		OrderStatusCanceled:  false,
	}
	for s, want := range cases {
		if got := s.HoldsStock(); got != want {
			t.Errorf("HoldsStock(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestOrderMutable(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusShipped, OrderStatusDelivered, OrderStatusCanceled} {
		if (Order{Status: s}).Mutable() {
			t.Errorf("order in status %s must not be mutable", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusProcessed} {
		if !(Order{Status: s}).Mutable() {
			t.Errorf("order in status %s must be mutable", s)
		}
	}
}
