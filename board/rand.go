package board

// PseudoRand is a xorshift64* generator. The zobrist keys are drawn from it
// with a fixed seed so signatures stay stable across processes.
type PseudoRand struct {
	s uint64
}

func NewPseudoRand() *PseudoRand {
	return &PseudoRand{}
}

func (r *PseudoRand) Seed(seed uint64) {
	r.s = seed
}

func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}
