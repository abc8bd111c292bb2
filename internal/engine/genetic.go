package engine

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/panelcut/internal/model"
)

// GeneticConfig holds parameters for the genetic order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters, scaled for the
// number of demand instances.
func DefaultGeneticConfig(instances int) GeneticConfig {
	cfg := GeneticConfig{
		PopulationSize: 30,
		Generations:    40,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
	if instances > 20 {
		cfg.Generations = 60
	}
	if instances > 50 {
		cfg.Generations = 80
		cfg.PopulationSize = 40
	}
	return cfg
}

// chromosome is an ordering of demand instances, evaluated by running the
// allocator in that order.
type chromosome struct {
	order []int // Permutation of indexes into the demand slice
	alloc allocation
}

// geneticSearch evolves demand orderings. Every evaluation draws from the
// shared attempt budget, so the search stops as soon as it is spent.
type geneticSearch struct {
	opt    *Optimizer
	config GeneticConfig
	stocks []model.StockDefinition
	parts  []model.PartRequirement
	demand []instance
	budget *attemptBudget
	rng    *rand.Rand
	spent  bool
}

// searchOrder runs the greedy allocation first, then tries to beat it by
// evolving the instance order. The greedy result is returned unchanged unless
// a candidate is strictly better, which includes placing everything where
// greedy left instances behind.
func (o *Optimizer) searchOrder(stocks []model.StockDefinition, parts []model.PartRequirement, demand []instance, budget *attemptBudget) allocation {
	g := &geneticSearch{
		opt:    o,
		config: DefaultGeneticConfig(len(demand)),
		stocks: stocks,
		parts:  parts,
		demand: demand,
		budget: budget,
	}
	g.rng = rand.New(rand.NewSource(g.config.Seed))
	return g.run()
}

func (g *geneticSearch) run() allocation {
	greedy := g.identity()
	g.evaluate(&greedy)
	if len(g.demand) < 2 || g.spent {
		return greedy.alloc
	}
	best := greedy

	population := g.initPopulation(greedy)
	for i := 1; i < len(population) && !g.spent; i++ {
		g.evaluate(&population[i])
	}

	for gen := 0; gen < g.config.Generations && !g.spent; gen++ {
		g.rank(population)
		if fitter(population[0].alloc, best.alloc) {
			best = population[0]
		}

		next := make([]chromosome, 0, g.config.PopulationSize)
		elite := g.config.EliteCount
		if elite > len(population) {
			elite = len(population)
		}
		for i := 0; i < elite; i++ {
			next = append(next, population[i])
		}

		for len(next) < g.config.PopulationSize && !g.spent {
			p1 := g.tournamentSelect(population)
			p2 := g.tournamentSelect(population)
			child := g.orderCrossover(p1, p2)
			g.mutate(&child)
			g.evaluate(&child)
			next = append(next, child)
		}
		population = next

		g.opt.log.Debug("genetic generation",
			"generation", gen,
			"best_sheets", len(best.alloc.sheets),
			"best_waste", best.alloc.wasteArea(),
			"attempts_left", g.budget.remaining)
	}

	g.rank(population)
	if len(population) > 0 && fitter(population[0].alloc, best.alloc) {
		best = population[0]
	}
	return best.alloc
}

// evaluate allocates in the chromosome's order. An evaluation cut short by
// the budget ranks below every run that finished.
func (g *geneticSearch) evaluate(c *chromosome) {
	ordered := make([]instance, len(c.order))
	for i, di := range c.order {
		ordered[i] = g.demand[di]
	}
	c.alloc = g.opt.allocate(g.stocks, g.parts, ordered, g.budget)
	if c.alloc.outOfTries {
		g.spent = true
	}
}

// fitter orders allocations for the search: runs cut short by the budget
// come last, then allocation.better decides (fewer unplaced, fewer sheets,
// less waste).
func fitter(a, b allocation) bool {
	if a.outOfTries != b.outOfTries {
		return !a.outOfTries
	}
	return a.better(b)
}

// rank sorts the population fittest first.
func (g *geneticSearch) rank(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		return fitter(population[i].alloc, population[j].alloc)
	})
}

func (g *geneticSearch) identity() chromosome {
	order := make([]int, len(g.demand))
	for i := range order {
		order[i] = i
	}
	return chromosome{order: order}
}

// initPopulation keeps the evaluated greedy order in slot 0 and fills the
// rest with random permutations.
func (g *geneticSearch) initPopulation(greedy chromosome) []chromosome {
	population := make([]chromosome, g.config.PopulationSize)
	population[0] = greedy
	for i := 1; i < len(population); i++ {
		population[i] = chromosome{order: g.rng.Perm(len(g.demand))}
	}
	return population
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticSearch) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		c := population[g.rng.Intn(len(population))]
		if fitter(c.alloc, best.alloc) {
			best = c
		}
	}
	return best
}

// orderCrossover implements Order Crossover (OX1). It keeps a slice of
// parent1 in place and fills the rest in parent2's relative order.
func (g *geneticSearch) orderCrossover(p1, p2 chromosome) chromosome {
	n := len(p1.order)
	child := chromosome{order: make([]int, n)}
	if n <= 2 {
		copy(child.order, p1.order)
		return child
	}

	a := g.rng.Intn(n)
	b := g.rng.Intn(n)
	if a > b {
		a, b = b, a
	}

	inSegment := make(map[int]bool, b-a+1)
	for i := a; i <= b; i++ {
		child.order[i] = p1.order[i]
		inSegment[p1.order[i]] = true
	}
	pos := (b + 1) % n
	for _, di := range p2.order {
		if inSegment[di] {
			continue
		}
		child.order[pos] = di
		pos = (pos + 1) % n
	}
	return child
}

// mutate applies swap and inversion mutations in place.
func (g *geneticSearch) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}
	if g.rng.Float64() < g.config.MutationRate {
		i, j := g.rng.Intn(n), g.rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i, j := g.rng.Intn(n), g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for ; i < j; i, j = i+1, j-1 {
			c.order[i], c.order[j] = c.order[j], c.order[i]
		}
	}
}
