package domain

// ShiftRecord is one raw availability declaration as supplied by the
// upstream CSV collaborator: one record per shift, before merging by person.
// Date is day/month/year; TimeOfDay is "jour", "matin" or an afternoon
// label. Area flags mark the geographic zones covered for that shift.
type ShiftRecord struct {
	FirstName string
	LastName  string
	Address   string
	Postcode  string
	Date      string
	TimeOfDay string
	Area1     bool
	Area2     bool
	Area3     bool
	Area4     bool
}

// SectorMask folds the area flags into the person sector bitmask.
func (s ShiftRecord) SectorMask() int {
	mask := 0
	if s.Area1 {
		mask |= 1 << 0
	}
	if s.Area2 {
		mask |= 1 << 1
	}
	if s.Area3 {
		mask |= 1 << 2
	}
	if s.Area4 {
		mask |= 1 << 3
	}
	return mask
}
