package sqlt

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	cache := NewCache(2)
	require.Equal(t, 0, cache.Len())

	prep, err := cache.Get(`select ?`)
	require.NoError(t, err)
	require.Equal(t, 1, prep.Params)
	require.True(t, cache.Has(`select ?`))
	require.Equal(t, 1, cache.Len())

	again, err := cache.Get(`select ?`)
	require.NoError(t, err)
	require.Equal(t, prep, again)
	require.Equal(t, 1, cache.Len())

	_, err = cache.Get(`?{`)
	require.ErrorIs(t, err, ErrMalformedTemplate)
	require.False(t, cache.Has(`?{`))
	require.Equal(t, 1, cache.Len())

	_ = try1(cache.Get(`one`))
	_ = try1(cache.Get(`two`))
	require.Equal(t, 2, cache.Len())
	require.False(t, cache.Has(`select ?`))
	require.True(t, cache.Has(`one`))
	require.True(t, cache.Has(`two`))

	cache.Purge()
	require.Equal(t, 0, cache.Len())
}

func TestCache_nil(t *testing.T) {
	require.Nil(t, NewCache(0))
	require.Nil(t, NewCache(-1))

	var cache *Cache
	prep, err := cache.Get(`select ?d`)
	require.NoError(t, err)
	require.Equal(t, []Node{text(`select `), param(SpecInt)}, prep.Nodes)
	require.False(t, cache.Has(`select ?d`))
	require.Equal(t, 0, cache.Len())
	cache.Purge()
}

func TestCache_concurrent(t *testing.T) {
	cache := NewCache(8)

	var group sync.WaitGroup
	for ind := 0; ind < 32; ind++ {
		group.Add(1)
		go func(ind int) {
			defer group.Done()
			src := fmt.Sprintf(`select ?d -- %v`, ind%16)
			prep, err := cache.Get(src)
			if err != nil || prep.Params != 1 {
				t.Errorf(`unexpected parse of %q: %v %#v`, src, err, prep)
			}
		}(ind)
	}
	group.Wait()

	require.Equal(t, 8, cache.Len())
}

func TestPreparse(t *testing.T) {
	const src = `select ?a -- preparse test`

	prep, err := Preparse(src)
	require.NoError(t, err)
	require.True(t, prepCache.Has(src))
	require.Equal(t, prep, TryPreparse(src))

	require.Panics(t, func() { TryPreparse(`?{ ?{ } }`) })
}
