package model_test

import (
	"testing"

	"github.com/dasdy/pizzastore/model"
	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		in       string
		expected model.Role
		staff    bool
	}{
		{"manager", model.RoleManager, true},
		{" Driver  ", model.RoleDriver, true},
		{"Customer", model.RoleCustomer, false},
		{"", model.Role(""), false},
	}

	for _, v := range testCases {
		t.Run(v.in, func(t *testing.T) {
			role := model.ParseRole(v.in)
			assert.Equal(t, v.expected, role)
			assert.Equal(t, v.staff, role.IsStaff())
		})
	}
}

func TestOrderTotal(t *testing.T) {
	t.Run("sums lines", func(t *testing.T) {
		o := model.Order{Lines: []model.OrderLine{
			{ItemName: "Margherita", Quantity: 2, Price: 9.5},
			{ItemName: "Soda", Quantity: 3, Price: 1},
		}}

		assert.InDelta(t, 22.0, o.Total(), 1e-9)
	})

	t.Run("empty order is free", func(t *testing.T) {
		assert.Zero(t, model.Order{}.Total())
	})
}
