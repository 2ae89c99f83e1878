//go:build pooldebug

package pool

import "fmt"

// debugState tracks which slots are live so that
// misuse of Refs panics instead of corrupting the pool.
type debugState struct {
	live map[Ref]bool
}

func (d *debugState) alloc(r Ref) {
	if d.live == nil {
		d.live = make(map[Ref]bool)
	}
	if d.live[r] {
		panic(fmt.Sprintf("pool: slot %d handed out twice", r))
	}
	d.live[r] = true
}

func (d *debugState) free(r Ref) {
	if !d.live[r] {
		panic(fmt.Sprintf("pool: free of slot %d that is not allocated", r))
	}
	delete(d.live, r)
}

func (d *debugState) check(r Ref) {
	if !d.live[r] {
		panic(fmt.Sprintf("pool: use of slot %d that is not allocated", r))
	}
}

func (d *debugState) reset() {
	d.live = nil
}
