package petstore

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/restcontract/petstore-contract-tests/model"
)

var (
	categoryNames = []string{"Dogs", "Cats", "Birds", "Fish", "Reptiles"}
	petNames      = []string{"Bella", "Max", "Luna", "Charlie", "Lucy", "Cooper", "Daisy", "Milo", "Zoe", "Rocky"}
	tagNames      = []string{"friendly", "playful", "calm", "young", "senior", "trained", "fluffy", "rescue"}
)

// Generator produces pets for tests that do not care about the exact values.
type Generator interface {
	Pet() model.Pet
}

// RandomGenerator fills every Pet field with random values. It is safe for concurrent use.
type RandomGenerator struct {
	lock sync.Mutex
	rand *rand.Rand
}

// NewRandomGenerator returns a RandomGenerator seeded from the clock.
func NewRandomGenerator() *RandomGenerator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator returns a RandomGenerator whose numeric and name choices are repeatable.
// Photo URLs always contain a fresh UUID.
func NewSeededGenerator(seed int64) *RandomGenerator {
	return &RandomGenerator{rand: rand.New(rand.NewSource(seed))}
}

func (g *RandomGenerator) Pet() model.Pet {
	g.lock.Lock()
	defer g.lock.Unlock()
	return model.Pet{
		ID: model.Int64(g.between(1, 100000)),
		Category: &model.Category{
			ID:   model.Int64(g.between(1, 100)),
			Name: model.String(g.pick(categoryNames)),
		},
		Name:      model.String(g.pick(petNames)),
		PhotoURLs: []string{"https://loremflickr.com/640/480/animals?lock=" + uuid.NewString()},
		Tags: []model.Tag{
			{ID: model.Int64(g.between(1, 100)), Name: model.String(g.pick(tagNames))},
		},
		Status: model.String(g.pick(model.AllStatuses)),
	}
}

func (g *RandomGenerator) between(min, max int64) int64 {
	return min + g.rand.Int63n(max-min+1)
}

func (g *RandomGenerator) pick(values []string) string {
	return values[g.rand.Intn(len(values))]
}
