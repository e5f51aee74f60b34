package cryptotax

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPolicy_Rate(t *testing.T) {
	p := DefaultPolicy()
	if !p.Rate(true).Equal(decimal.NewFromFloat(0.10)) {
		t.Errorf("long-term rate = %s", p.Rate(true))
	}
	if !p.Rate(false).Equal(decimal.NewFromFloat(0.18)) {
		t.Errorf("short-term rate = %s", p.Rate(false))
	}
}

func TestPolicy_Net(t *testing.T) {
	p := DefaultPolicy()
	if !p.net(R(1000)).Equal(R(1000)) {
		t.Error("zero fee rate must leave proceeds untouched")
	}

	p.FeeRate = decimal.NewFromFloat(0.0025)
	if got := p.net(R(1000)); !got.Equal(R(997.5)) {
		t.Errorf("net(1000) at 0.25%% = %s, want 997.5", got)
	}
}
