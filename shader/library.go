package shader

import (
	"context"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/varlet/backend"
)

type libraryEntry struct {
	hash   uint64
	shader *Shader
}

// Library caches compiled shaders by name. A name is recompiled when its
// sources change.
//
// Library is not safe for concurrent use; only Preload reads files on
// worker goroutines.
type Library struct {
	b       backend.Programs
	opts    []Option
	entries map[string]libraryEntry
}

// NewLibrary creates an empty library. opts apply to every shader it compiles.
func NewLibrary(b backend.Programs, opts ...Option) *Library {
	return &Library{
		b:       b,
		opts:    opts,
		entries: make(map[string]libraryEntry),
	}
}

func sourceHash(src Sources) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(src.Vertex)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(src.Fragment)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(src.Geometry)
	return d.Sum64()
}

// Compile returns the cached shader for name when its sources are
// unchanged, otherwise compiles src and replaces the cached entry.
func (l *Library) Compile(name string, src Sources) *Shader {
	h := sourceHash(src)
	if e, ok := l.entries[name]; ok {
		if e.hash == h {
			return e.shader
		}
		e.shader.Destroy()
	}
	opts := append(slices.Clone(l.opts), WithLabel(name))
	s := New(l.b, src, opts...)
	l.entries[name] = libraryEntry{hash: h, shader: s}
	return s
}

// Load reads the stage files and compiles them under name.
func (l *Library) Load(name string, p Paths) *Shader {
	return l.Compile(name, LoadSources(p))
}

// Get returns the cached shader for name.
func (l *Library) Get(name string) (*Shader, bool) {
	e, ok := l.entries[name]
	return e.shader, ok
}

// Names returns the cached names, sorted.
func (l *Library) Names() []string {
	return slices.Sorted(maps.Keys(l.entries))
}

// Len returns the number of cached shaders.
func (l *Library) Len() int { return len(l.entries) }

// Preload reads every set of stage files concurrently, then compiles them
// in name order on the calling goroutine. Unreadable files degrade to
// empty stages as in LoadSources. It returns ctx.Err() if ctx is done
// before reading finishes; nothing is compiled in that case.
func (l *Library) Preload(ctx context.Context, set map[string]Paths) error {
	names := slices.Sorted(maps.Keys(set))
	sources := make([]Sources, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sources[i] = LoadSources(set[name])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, name := range names {
		l.Compile(name, sources[i])
	}
	return nil
}

// Close destroys every cached shader and empties the library.
func (l *Library) Close() {
	for _, e := range l.entries {
		e.shader.Destroy()
	}
	clear(l.entries)
}
