package knowledge

// In this file: sample data generation for "kb seed".

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcpost/mcpost/internal/embedding"
)

// Seed defaults.
const (
	DefSeedDepots   = 20
	DefSeedReadings = 100

	seedWorkers = 4
)

var seedHubs = []struct {
	name string
	desc string
}{
	{"Central Hub", "Main sorting floor. Conveyor machinery and high package volume."},
	{"North Depot", "Cold chain storage. Climate controlled, refrigerated bays."},
	{"Airport Gateway", "Air freight interchange. Customs holding area, rapid turnover."},
	{"Harbour Yard", "Container terminal. Heavy cranes, open air storage."},
}

var seedKinds = []string{"sorting", "storage", "transit", "pickup"}

var seedIssues = []string{
	"Conveyor belt three drifts left when the load exceeds forty kilograms.",
	"Label printer in bay two jams on glossy stock.",
	"Dock door sensor reports closed while the door is half open.",
	"Sorting arm overshoots the chute on high speed runs.",
	"Scale readings drift upward after four hours of continuous use.",
	"Barcode scanner misreads crumpled labels in low light.",
}

var seedFixes = []string{
	"Retensioned the belt and replaced the worn tracking roller.",
	"Cleaned the print head and switched to matte label stock.",
	"Realigned the magnet and recalibrated the sensor.",
	"Lowered the arm speed limit and updated the firmware.",
	"Scheduled a tare reset every two hours.",
	"Replaced the scanner with the higher gain model.",
}

// SeedOptions controls what Seed generates.
type SeedOptions struct {
	Depots   int  // number of depots
	Readings int  // readings per depot
	Clear    bool // truncate existing data first
}

// SeedProgressFunc is called after each fully seeded depot.  It may be
// called from multiple goroutines.
type SeedProgressFunc func(total, count int)

// Seed populates the knowledge base with generated depots, a week of load
// readings per depot and a handful of embedded notes.  Readings follow a
// per-depot sine wave with noise and the occasional anomaly spike, so the
// data is plausible to query.
func Seed(ctx context.Context, st *Store, emb embedding.Embedder, opts SeedOptions, progress SeedProgressFunc) error {
	if opts.Depots <= 0 {
		opts.Depots = DefSeedDepots
	}
	if opts.Readings <= 0 {
		opts.Readings = DefSeedReadings
	}
	if progress == nil {
		progress = func(int, int) {}
	}
	if opts.Clear {
		if err := st.clear(ctx); err != nil {
			return err
		}
	}

	// Depots are inserted first, readings and notes reference them.
	type pending struct {
		depot   Depot
		hubDesc string
	}
	var depots []pending
	for i := range opts.Depots {
		hub := seedHubs[rand.IntN(len(seedHubs))]
		kind := seedKinds[rand.IntN(len(seedKinds))]
		d := Depot{
			ID:       fmt.Sprintf("d%03d", i),
			Name:     fmt.Sprintf("%s %s station %d", hub.name, kind, i),
			Kind:     kind,
			Location: hub.name,
		}
		if err := st.AddDepot(ctx, d); err != nil {
			return err
		}
		depots = append(depots, pending{depot: d, hubDesc: hub.desc})
	}

	start := time.Now().Add(-7 * 24 * time.Hour)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(seedWorkers)
	var done atomic.Int32
	for _, p := range depots {
		eg.Go(func() error {
			if err := seedReadings(ctx, st, p.depot.ID, opts.Readings, start); err != nil {
				return err
			}
			if err := seedNotes(ctx, st, emb, p.depot.ID, p.depot.Location, p.hubDesc); err != nil {
				return err
			}
			progress(opts.Depots, int(done.Add(1)))
			return nil
		})
	}
	return eg.Wait()
}

func seedReadings(ctx context.Context, st *Store, depotID string, n int, start time.Time) error {
	period := 10 + rand.Float64()*40
	phase := rand.Float64() * 2 * math.Pi
	base := 20 + rand.Float64()*60
	for j := range n {
		val := base + 10*math.Sin(float64(j)/period*2*math.Pi+phase) + rand.Float64()*2 - 1
		if rand.Float64() < 0.01 {
			val += 20 + rand.Float64()*30
		}
		if err := st.recordReadingAt(ctx, depotID, val, start.Add(time.Duration(j)*time.Hour)); err != nil {
			return err
		}
	}
	return nil
}

func seedNotes(ctx context.Context, st *Store, emb embedding.Embedder, depotID, hubName, hubDesc string) error {
	var notes []string
	if rand.Float64() < 0.3 {
		notes = append(notes, fmt.Sprintf("Location Info: %s. %s", hubName, hubDesc))
	}
	if rand.Float64() < 0.5 {
		issue := seedIssues[rand.IntN(len(seedIssues))]
		fix := seedFixes[rand.IntN(len(seedFixes))]
		notes = append(notes, fmt.Sprintf("Maintenance Log: %s Resolution: %s", issue, fix))
	}
	for _, content := range notes {
		vec, err := emb.Embed(ctx, content)
		if err != nil {
			return err
		}
		if err := st.AddNote(ctx, depotID, content, vec); err != nil {
			return err
		}
	}
	return nil
}
