package dom

// MutationRecord reports child-list changes on one parent.
type MutationRecord struct {
	Target  *Node
	Added   []*Node
	Removed []*Node
}

type observer struct {
	fn func([]MutationRecord)
}

// Observe registers fn to receive batched mutation records for child-list
// changes under connected parents. The returned function unregisters it.
func (d *Document) Observe(fn func([]MutationRecord)) (stop func()) {
	o := &observer{fn: fn}
	d.observers = append(d.observers, o)
	return func() {
		for i, cur := range d.observers {
			if cur == o {
				d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
				break
			}
		}
		if len(d.observers) == 0 {
			d.records = nil
		}
	}
}

// PendingMutations returns the number of queued records.
func (d *Document) PendingMutations() int {
	return len(d.records)
}

// record queues a child-list change and schedules delivery.
func (d *Document) record(target, added, removed *Node) {
	if len(d.observers) == 0 {
		return
	}
	rec := MutationRecord{Target: target}
	if added != nil {
		rec.Added = []*Node{added}
	}
	if removed != nil {
		rec.Removed = []*Node{removed}
	}
	d.records = append(d.records, rec)

	if d.dispatch != nil && !d.scheduled {
		d.scheduled = true
		d.dispatch(d.deliver)
	}
}

// deliver hands the queued batch to every observer.
func (d *Document) deliver() {
	d.scheduled = false
	if len(d.records) == 0 {
		return
	}
	batch := d.records
	d.records = nil

	observers := make([]*observer, len(d.observers))
	copy(observers, d.observers)
	for _, o := range observers {
		o.fn(batch)
	}
}

// FlushMutations delivers queued records synchronously. Records produced by
// observers during delivery are delivered in further rounds until the queue
// drains. It returns the number of rounds delivered.
func (d *Document) FlushMutations() int {
	rounds := 0
	for len(d.records) > 0 && rounds < maxFlushRounds {
		d.deliver()
		rounds++
	}
	return rounds
}
