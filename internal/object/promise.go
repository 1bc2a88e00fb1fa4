package object

// Settle transitions the promise from Pending to Fulfilled or Rejected
// exactly once (spec §4.6: settlement is a one-way transition). A second
// call is a no-op. dispatch receives every registered callback so the
// caller (internal/eventloop) can post each one as a task rather than
// invoking it inline.
func (p *Promise) Settle(state PromiseState, value Value, dispatch func(cb func(PromiseState, Value))) {
	p.Mu.Lock()
	if p.State != Pending {
		p.Mu.Unlock()
		return
	}
	p.State = state
	p.Value = value
	callbacks := p.Callbacks
	p.Callbacks = nil
	p.SettleCond.Broadcast()
	p.Mu.Unlock()

	for _, cb := range callbacks {
		cb := cb
		dispatch(func(PromiseState, Value) { cb(state, value) })
	}
}

// OnSettle registers cb to run once the promise settles. If already settled,
// dispatch is called immediately with cb so the caller still posts it as a
// task rather than running it inline (spec §4.6: then/catch never inline,
// even on an already-settled promise).
func (p *Promise) OnSettle(cb func(PromiseState, Value), dispatch func(cb func(PromiseState, Value))) {
	p.Mu.Lock()
	if p.State != Pending {
		state, value := p.State, p.Value
		p.Mu.Unlock()
		dispatch(func(PromiseState, Value) { cb(state, value) })
		return
	}
	p.Callbacks = append(p.Callbacks, cb)
	p.Mu.Unlock()
}

// AwaitBlocking blocks the calling OS thread until the promise settles,
// returning its final state and value (spec §4.5 `await`: "blocks the host
// thread on the promise condvar").
func (p *Promise) AwaitBlocking() (PromiseState, Value) {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	for p.State == Pending {
		p.SettleCond.Wait()
	}
	return p.State, p.Value
}
