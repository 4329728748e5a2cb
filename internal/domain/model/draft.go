package model

// DraftOrder collects order data across conversation steps before a ticket exists.
type DraftOrder struct {
	Zone                string
	ServiceType         ServiceType
	QuantityDescription string
	CustomerName        string
	CustomerPhone       string
	CustomerAddress     string
	ComputedPrice       int64
	PriceComputed       bool
	TransientMessageIDs []int64
}

// HasZone reports whether a zone was selected.
func (d *DraftOrder) HasZone() bool {
	return d.Zone != ""
}

// Clone returns a deep copy so transition functions never share slices.
func (d *DraftOrder) Clone() *DraftOrder {
	if d == nil {
		return nil
	}
	cp := *d
	cp.TransientMessageIDs = append([]int64(nil), d.TransientMessageIDs...)
	return &cp
}
