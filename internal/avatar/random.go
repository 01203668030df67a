package avatar

// Intn is the random source Random draws from. *rand.Rand satisfies it.
type Intn interface {
	IntN(n int) int
}

// Random picks one option per category uniformly. Categories without
// options in catalog stay empty.
func Random(r Intn, catalog Catalog) Avatar {
	a := Avatar{}
	for _, c := range Categories() {
		opts := catalog.InCategory(c)
		if len(opts) == 0 {
			continue
		}
		a.Select(opts[r.IntN(len(opts))])
	}
	return a
}
