package date

// Range represents a range of dates, both boundaries included.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Empty reports whether the range starts after it ends.
func (r Range) Empty() bool { return r.From.After(r.To) }

func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
