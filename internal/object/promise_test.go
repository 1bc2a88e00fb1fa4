package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func immediateDispatch(cb func(PromiseState, Value)) {
	cb(Pending, NullVal)
}

func TestPromiseSettleFulfilled(t *testing.T) {
	p := NewPromise()
	var seenState PromiseState
	var seenValue Value
	p.OnSettle(func(state PromiseState, value Value) {
		seenState, seenValue = state, value
	}, immediateDispatch)

	p.Settle(Fulfilled, &Number{Value: 42}, immediateDispatch)

	assert.Equal(t, Fulfilled, p.State)
	assert.Equal(t, Fulfilled, seenState)
	require.IsType(t, &Number{}, seenValue)
	assert.Equal(t, 42.0, seenValue.(*Number).Value)
}

func TestPromiseSettleIsOneWay(t *testing.T) {
	p := NewPromise()
	p.Settle(Fulfilled, &String{Value: "first"}, immediateDispatch)
	p.Settle(Rejected, &String{Value: "second"}, immediateDispatch)

	assert.Equal(t, Fulfilled, p.State)
	assert.Equal(t, "first", p.Value.(*String).Value)
}

func TestPromiseOnSettleAfterSettlementStillDispatches(t *testing.T) {
	p := NewPromise()
	p.Settle(Rejected, &String{Value: "boom"}, immediateDispatch)

	var called bool
	p.OnSettle(func(state PromiseState, value Value) {
		called = true
		assert.Equal(t, Rejected, state)
	}, immediateDispatch)

	assert.True(t, called, "OnSettle on an already-settled promise must still invoke its callback")
}

func TestPromiseAwaitBlocking(t *testing.T) {
	p := NewPromise()
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Settle(Fulfilled, &Boolean{Value: true}, func(cb func(PromiseState, Value)) { cb(Pending, NullVal) })
	}()

	state, value := p.AwaitBlocking()
	<-done

	assert.Equal(t, Fulfilled, state)
	assert.Equal(t, TrueVal, value)
}
