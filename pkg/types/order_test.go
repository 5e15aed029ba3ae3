package types

import "testing"

func TestOrderStatusIsTerminal(t *testing.T) {
	terminal := []OrderStatus{
		StatusFilled,
		StatusCancelled,
		StatusRejected,
		StatusPartiallyCanceled,
		StatusPartiallyFilledCanceled,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}

	resting := []OrderStatus{StatusNew, StatusPartiallyFilled, OrderStatus("Untriggered"), OrderStatus("")}
	for _, s := range resting {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
