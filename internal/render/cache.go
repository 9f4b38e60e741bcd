package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// A TermRenderer is not safe for concurrent Render calls, so callers borrow
// one per call from a sync.Pool dedicated to their Options.
var pools sync.Map // Options -> *sync.Pool

func poolFor(opts Options) *sync.Pool {
	if p, ok := pools.Load(opts); ok {
		return p.(*sync.Pool)
	}
	p, _ := pools.LoadOrStore(opts, &sync.Pool{})
	return p.(*sync.Pool)
}

func borrow(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := poolFor(opts).Get().(*glamour.TermRenderer); ok {
		return r, nil
	}
	return newTermRenderer(opts)
}

func giveBack(opts Options, r *glamour.TermRenderer) {
	if r != nil {
		poolFor(opts).Put(r)
	}
}

func newTermRenderer(opts Options) (*glamour.TermRenderer, error) {
	ropts := []glamour.TermRendererOption{
		glamour.WithStylePath(glamourStyle(opts.Style)),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(ropts...)
}

// pooledConfigs counts the option sets seen so far.
func pooledConfigs() int {
	n := 0
	pools.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func resetPools() {
	pools.Range(func(k, _ any) bool {
		pools.Delete(k)
		return true
	})
}
