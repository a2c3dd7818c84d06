package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	grand := decimal.NewFromInt(26)

	assert.Equal(t, PaymentStatusDue, DerivePaymentStatus(decimal.Zero, grand))
	assert.Equal(t, PaymentStatusPartial, DerivePaymentStatus(decimal.NewFromInt(10), grand))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(grand, grand))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(decimal.NewFromInt(30), grand),
		"pagar de más sigue siendo PAID")
}
