// Package seed produces the reference catalog and demo orders the
// application starts with, and the service item batches attached to new
// Annual Service orders.
package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/nhle/fieldservice/internal/model"
)

// Generator produces batches of service items for a new Annual Service.
type Generator interface {
	ServiceItems(count int) []model.ServiceItem
}

var machineTypes = []string{
	"Treadmill",
	"Elliptical",
	"Rowing Machine",
	"Cable Crossover",
	"Leg Press",
}

const issueComment = "Parts worn out, replacement ordered."

var issueImages = []string{
	"https://placehold.co/400x300/e2e8f0/64748b?text=Broken+Part",
	"https://placehold.co/400x300/e2e8f0/64748b?text=Serial+Tag",
}

// RandomGenerator rolls machine types, serial numbers and inspection
// outcomes from a seeded source.
type RandomGenerator struct {
	rng   *rand.Rand
	now   func() time.Time
	batch int
}

// NewRandom returns a generator seeded with seed. A zero seed is replaced
// with the current time so demo runs differ.
func NewRandom(seed int64, now func() time.Time) *RandomGenerator {
	if now == nil {
		now = time.Now
	}
	if seed == 0 {
		seed = now().UnixNano()
	}
	return &RandomGenerator{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1)),
		now: now,
	}
}

// ServiceItems returns count items. Roughly 40% come back Fixed, 20% Issue
// and the rest Pending.
func (g *RandomGenerator) ServiceItems(count int) []model.ServiceItem {
	g.batch++
	items := make([]model.ServiceItem, 0, count)
	servicedAt := g.now()

	for i := 0; i < count; i++ {
		id := itemID(g.batch, i)
		name := fmt.Sprintf("%s #%d", machineTypes[g.rng.IntN(len(machineTypes))], 100+i)
		serial := "SN-" + strings.ToUpper(fmt.Sprintf("%x", g.rng.IntN(1_000_000)))

		roll := g.rng.Float64()
		switch {
		case roll > 0.6:
			items = append(items, model.InspectedItem(
				id, name, serial, model.ItemStatusFixed, "", servicedAt, nil,
			))
		case roll > 0.4:
			items = append(items, model.InspectedItem(
				id, name, serial, model.ItemStatusIssue, issueComment, servicedAt, issueImages,
			))
		default:
			items = append(items, model.PendingItem(id, name, serial))
		}
	}

	return items
}

// Fixture is a deterministic generator for tests and reproducible demos.
// Item i takes Statuses[i % len(Statuses)]; an empty pattern yields
// pending items.
type Fixture struct {
	Statuses   []model.ItemStatus
	ServicedAt time.Time
	batch      int
}

// ServiceItems returns count items following the status pattern.
func (f *Fixture) ServiceItems(count int) []model.ServiceItem {
	f.batch++
	items := make([]model.ServiceItem, 0, count)

	for i := 0; i < count; i++ {
		id := itemID(f.batch, i)
		name := fmt.Sprintf("%s #%d", machineTypes[i%len(machineTypes)], 100+i)
		serial := fmt.Sprintf("SN-F%05d", f.batch*1000+i)

		status := model.ItemStatusPending
		if len(f.Statuses) > 0 {
			status = f.Statuses[i%len(f.Statuses)]
		}

		comments := ""
		var images []string
		if status == model.ItemStatusIssue {
			comments = issueComment
			images = issueImages
		}
		items = append(items, model.InspectedItem(
			id, name, serial, status, comments, f.ServicedAt, images,
		))
	}

	return items
}

func itemID(batch, index int) string {
	return fmt.Sprintf("item-%d-%d", batch, index)
}
