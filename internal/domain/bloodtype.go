package domain

// BloodTypes holds the eight ABO/Rh combinations in canonical display
// order. Inventory listings and reports sort by this order.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}

var bloodTypeRank = func() map[string]int {
	m := make(map[string]int, len(BloodTypes))
	for i, bt := range BloodTypes {
		m[bt] = i
	}
	return m
}()

// IsValidBloodType reports whether bt is one of the eight known types.
func IsValidBloodType(bt string) bool {
	_, ok := bloodTypeRank[bt]
	return ok
}

// BloodTypeRank returns the canonical sort position of bt. Unknown
// types rank after all known ones.
func BloodTypeRank(bt string) int {
	if r, ok := bloodTypeRank[bt]; ok {
		return r
	}
	return len(BloodTypes)
}
