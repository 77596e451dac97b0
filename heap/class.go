package heap

// numClasses is the fixed number of segregated size-class lists (spec.md §3).
const numClasses = 7

// classOf returns the smallest class index i in [0, numClasses) such that
// size <= opt.ClassBounds[i]. ClassBounds is validated (Option.validate) to
// be strictly increasing; the final bound is not checked, and a size above
// it falls through to the last class.
func classOf(size int32, opt *Option) int {
	for i := 0; i < numClasses; i++ {
		if size <= opt.ClassBounds[i] {
			return i
		}
	}
	return numClasses - 1
}
