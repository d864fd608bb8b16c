package possibletypes

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeCache_firstWriterWins(t *testing.T) {
	cache := newTypeCache()

	assert.True(t, cache.setIfAbsent("Droid", []string{"Character"}))
	// a later answer can't replace the entry, even if it is empty
	assert.False(t, cache.setIfAbsent("Droid", []string{}))
	assert.False(t, cache.setIfAbsent("Droid", []string{"Machine"}))

	assert.Equal(t, map[string][]string{"Droid": {"Character"}}, cache.snapshot())
}

func TestTypeCache_setIfAbsentSuppressesDuplicates(t *testing.T) {
	cache := newTypeCache()

	cache.setIfAbsent("Droid", []string{"Character", "Character", "Machine"})

	assert.Equal(t, []string{"Character", "Machine"}, cache.snapshot()["Droid"])
}

func TestTypeCache_addPossibleType(t *testing.T) {
	cache := newTypeCache()

	assert.True(t, cache.addPossibleType("Human", "Character"))
	assert.True(t, cache.addPossibleType("Human", "Named"))
	assert.False(t, cache.addPossibleType("Human", "Character"))

	assert.Equal(t, []string{"Character", "Named"}, cache.snapshot()["Human"])
	assert.True(t, cache.satisfies("Human", "Named"))
	assert.False(t, cache.satisfies("Human", "Droid"))
	assert.False(t, cache.satisfies("Planet", "Named"))
}

func TestTypeCache_ensure(t *testing.T) {
	cache := newTypeCache()

	assert.True(t, cache.ensure("Obj"))
	assert.False(t, cache.ensure("Obj"))
	assert.True(t, cache.has("Obj"))
	assert.Equal(t, []string{}, cache.snapshot()["Obj"])

	// ensuring an existing entry leaves it alone
	cache.addPossibleType("Human", "Character")
	cache.ensure("Human")
	assert.Equal(t, []string{"Character"}, cache.snapshot()["Human"])
}

func TestTypeCache_unknown(t *testing.T) {
	cache := newTypeCache()
	cache.ensure("B")

	assert.Equal(t, []string{"C", "A"}, cache.unknown([]string{"C", "B", "A"}))
	assert.Equal(t, []string{}, cache.unknown([]string{"B"}))
}

func TestTypeCache_snapshotIsACopy(t *testing.T) {
	cache := newTypeCache()
	cache.setIfAbsent("Droid", []string{"Character"})

	snapshot := cache.snapshot()
	snapshot["Droid"][0] = "Changed"
	snapshot["Human"] = []string{"Character"}

	assert.Equal(t, map[string][]string{"Droid": {"Character"}}, cache.snapshot())
}

func TestTypeCache_concurrentWriters(t *testing.T) {
	cache := newTypeCache()

	wg := &sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cache.addPossibleType("Human", "Character")
			cache.setIfAbsent(fmt.Sprintf("Type%d", i%5), []string{"Node"})
			cache.satisfies("Human", "Character")
		}(i)
	}
	wg.Wait()

	snapshot := cache.snapshot()
	assert.Equal(t, []string{"Character"}, snapshot["Human"])
	assert.Len(t, snapshot, 6)
}
