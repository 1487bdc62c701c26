package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
)

// Lookup is the remote search surface the resolver needs.
type Lookup interface {
	SearchFarmProduce(ctx context.Context, term string) ([]models.FarmProduce, error)
	SearchUsers(ctx context.Context, term string) ([]models.User, error)
}

// Resolution carries the identifiers found for one import. Missing keys mean no match.
type Resolution struct {
	Categories map[models.Category]string `json:"categories"`
	Services   map[string]string          `json:"services"`
	ClientID   string                     `json:"clientId,omitempty"`
	ClientName string                     `json:"clientName,omitempty"`
	Unresolved []string                   `json:"unresolved"`
}

// Resolver fans out catalog searches for a parsed spreadsheet.
type Resolver struct {
	lookup      Lookup
	concurrency int
	logger      *zap.Logger
}

// NewResolver wires a resolver. concurrency below 1 means one lookup at a time.
func NewResolver(lookup Lookup, concurrency int, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Resolver{lookup: lookup, concurrency: concurrency, logger: logger}
}

type lookupJob struct {
	category models.Category
	service  string
	term     string
	id       string
	found    bool
}

func (j *lookupJob) label() string {
	if j.service != "" {
		return fmt.Sprintf("%s service %q (%s)", j.category, j.service, j.term)
	}
	return fmt.Sprintf("%s (%s)", j.category, j.term)
}

// Resolve looks up every detected category and every slaughter service concurrently
// and waits for all of them. A failed lookup is logged and counts as no match.
func (r *Resolver) Resolve(ctx context.Context, result *models.ParseResult) Resolution {
	res := Resolution{
		Categories: map[models.Category]string{},
		Services:   map[string]string{},
		Unresolved: []string{},
	}
	if result == nil {
		return res
	}

	jobs := r.plan(result)
	client := &clientJob{name: result.Metadata.ClientName}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			job.id, job.found = r.searchProduce(gctx, job.term)
			return nil
		})
	}
	if client.name != "" {
		g.Go(func() error {
			user, ok := r.ResolveClient(gctx, client.name)
			if ok {
				client.id, client.display = user.ID, user.DisplayName()
			}
			return nil
		})
	}
	// Lookup failures are absorbed per job, so Wait never reports an error.
	_ = g.Wait()

	for _, job := range jobs {
		switch {
		case !job.found:
			res.Unresolved = append(res.Unresolved, job.label())
		case job.service != "":
			res.Services[job.service] = job.id
		default:
			res.Categories[job.category] = job.id
		}
	}
	if client.name != "" {
		if client.id == "" {
			res.Unresolved = append(res.Unresolved, fmt.Sprintf("client %q", client.name))
		}
		res.ClientID, res.ClientName = client.id, client.display
	}

	r.logger.Info("import lookups resolved",
		zap.Int("lookups", len(jobs)),
		zap.Int("unresolved", len(res.Unresolved)),
		zap.Bool("client_resolved", res.ClientID != ""))

	return res
}

type clientJob struct {
	name    string
	id      string
	display string
}

// ResolveClient searches users by name and applies the match policy.
func (r *Resolver) ResolveClient(ctx context.Context, name string) (models.User, bool) {
	users, err := r.lookup.SearchUsers(ctx, name)
	if err != nil {
		r.logger.Warn("client lookup failed", zap.String("name", name), zap.Error(err))
		return models.User{}, false
	}
	return MatchUser(users, name)
}

func (r *Resolver) plan(result *models.ParseResult) []*lookupJob {
	var jobs []*lookupJob
	for _, cat := range models.AllCategories {
		parsed, ok := result.Prices[cat]
		if !ok {
			continue
		}
		if cat == models.CategorySlaughter {
			for _, service := range parsed.Order {
				jobs = append(jobs, &lookupJob{category: cat, service: service, term: ServiceSearchTerm(service)})
			}
			continue
		}
		if term, ok := CategorySearchTerm(cat); ok {
			jobs = append(jobs, &lookupJob{category: cat, term: term})
		}
	}
	return jobs
}

func (r *Resolver) searchProduce(ctx context.Context, term string) (string, bool) {
	items, err := r.lookup.SearchFarmProduce(ctx, term)
	if err != nil {
		r.logger.Warn("farm produce lookup failed", zap.String("term", term), zap.Error(err))
		return "", false
	}
	match, ok := MatchProduce(items, term)
	if !ok {
		r.logger.Debug("no farm produce match", zap.String("term", term), zap.Int("candidates", len(items)))
		return "", false
	}
	return match.ID, true
}
