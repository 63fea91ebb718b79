package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockState(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		minStock int
		want     string
	}{
		{"empty shelf", 0, 10, StockStateOut},
		{"negative treated as out", -1, 10, StockStateOut},
		{"below threshold", 3, 10, StockStateLow},
		{"exactly at threshold", 10, 10, StockStateLow},
		{"just above threshold", 11, 10, StockStateIn},
		{"plenty", 100, 10, StockStateIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Stock: tt.stock, MinStock: tt.minStock}
			assert.Equal(t, tt.want, p.StockState())
		})
	}
}
