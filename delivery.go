package gridstar

type pendingResult struct {
	callback Callback
	result   Result
}

// deferredDelivery queues results until the next Flush, so callbacks never
// run inside the call that produced them.
type deferredDelivery struct {
	pending []pendingResult
}

func (d *deferredDelivery) enqueue(callback Callback, result Result) {
	d.pending = append(d.pending, pendingResult{callback: callback, result: result})
}

func (d *deferredDelivery) drain() []pendingResult {
	batch := d.pending
	d.pending = nil
	return batch
}

// deliver hands result to callback now in sync mode, otherwise on the next
// Flush.
func (p *Pathfinder[TileType]) deliver(callback Callback, result Result) {
	if p.options.Sync {
		callback(result)
		return
	}
	p.outbox.enqueue(callback, result)
}

// Flush invokes the callbacks of results queued outside sync mode and
// returns how many were delivered. Calculate flushes before doing any work.
// Callbacks may submit new requests; those results wait for the next Flush.
func (p *Pathfinder[TileType]) Flush() int {
	batch := p.outbox.drain()
	for _, pending := range batch {
		pending.callback(pending.result)
	}
	return len(batch)
}
