package pool

import (
	"context"
	"testing"

	"lever/core"
	"lever/pkg/number"

	"github.com/stretchr/testify/assert"
)

func TestReentrancyGuard(t *testing.T) {
	s := &poolService{}

	assert.Nil(t, s.enter())

	// a nested entry while the guard is held is rejected
	assert.Equal(t, core.ErrReentrantCall, s.enter())

	s.leave()
	assert.Nil(t, s.enter())
	s.leave()
}

func TestWithdrawReservesRequiresAdmin(t *testing.T) {
	s := &poolService{system: &core.System{Admins: []string{"admin"}}}

	err := s.WithdrawReserves(context.Background(), "mallory", "btc", "treasury", number.Decimal("1"))
	assert.Equal(t, core.ErrOperationForbidden, err)

	// the guard must be released on the refusal path
	assert.Nil(t, s.enter())
	s.leave()
}
