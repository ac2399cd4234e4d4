package delivery

// mapPincodeSet implements PincodeSet using a map for O(1) lookups.
type mapPincodeSet struct {
	pincodes map[string]struct{}
}

// NewMapPincodeSet creates a new map-based pincode set.
func NewMapPincodeSet(capacity int) PincodeSet {
	return &mapPincodeSet{
		pincodes: make(map[string]struct{}, capacity),
	}
}

// Contains checks if a pincode exists in the set.
func (s *mapPincodeSet) Contains(pincode string) bool {
	_, exists := s.pincodes[pincode]
	return exists
}

// Size returns the number of pincodes in the set.
func (s *mapPincodeSet) Size() int {
	return len(s.pincodes)
}

// Add adds a pincode to the set.
func (s *mapPincodeSet) Add(pincode string) {
	s.pincodes[pincode] = struct{}{}
}
