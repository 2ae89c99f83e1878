//go:build !pooldebug

package pool

// debugState is empty unless the pooldebug build tag is set.
type debugState struct{}

func (debugState) alloc(Ref) {}
func (debugState) free(Ref)  {}
func (debugState) check(Ref) {}
func (*debugState) reset()   {}
