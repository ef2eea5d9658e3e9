package slcan

// AcceptanceFilter calculates SJA1000 dual filter acceptance code and mask
// registers letting the given 11-bit identifiers through. Mask bits set to 1 are
// "don't care". Without ids every frame is accepted.
//
// Identifiers that differ in a bit make that bit don't care, so ids other than
// the requested ones may pass when the list is not contiguous.
func AcceptanceFilter(ids ...uint32) (code, mask uint32) {
	if len(ids) == 0 {
		return 0, ^uint32(0)
	}
	ref := ids[0] & MaxStandardID
	var diff uint32
	for _, id := range ids[1:] {
		diff |= (id & MaxStandardID) ^ ref
	}
	// id sits in the top 11 bits of each 16-bit half, RTR and data bits below are ignored
	code = ref << 5
	mask = diff<<5 | 0x1F
	code |= code << 16
	mask |= mask << 16
	return code, mask
}
