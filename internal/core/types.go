package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Advancer is a unit of per-tick work. Implementations must only touch their
// own state so that distinct Advancers can run concurrently.
type Advancer interface {
	Advance()
}

// Sim defines the minimal contract a simulated grid must implement.
type Sim interface {
	Advancer
	Name() string
	Size() Size
	Reset(seed int64)
	Frame() int
	// Pixels exposes the RGBA output of the most recent completed Advance.
	Pixels() []byte
}
