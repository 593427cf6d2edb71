package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/light-bringer/tracked-catalog/internal/app/product/queries/get_product"
	"github.com/light-bringer/tracked-catalog/internal/app/product/queries/list_events"
	"github.com/light-bringer/tracked-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/tracked-catalog/internal/app/product/repo"
	"github.com/light-bringer/tracked-catalog/internal/app/product/usecases/archive_product"
	"github.com/light-bringer/tracked-catalog/internal/app/product/usecases/create_product"
	"github.com/light-bringer/tracked-catalog/internal/app/product/usecases/edit_product"
	"github.com/light-bringer/tracked-catalog/internal/app/product/usecases/set_status"
	"github.com/light-bringer/tracked-catalog/internal/config"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
	"github.com/light-bringer/tracked-catalog/internal/pkg/committer"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Registry      *prometheus.Registry

	// Commands
	CreateProduct  *create_product.Interactor
	EditProduct    *edit_product.Interactor
	SetStatus      *set_status.Interactor
	ArchiveProduct *archive_product.Interactor

	// Queries
	GetProduct   *get_product.Query
	ListProducts *list_products.Query
	ListEvents   *list_events.Query
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("failed to apply config: %w", err)
	}

	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	return Wire(spannerClient, clock.System()), nil
}

// Wire builds the use cases and queries on top of an existing client.
func Wire(spannerClient *spanner.Client, clk clock.Clock) *ServiceOptions {
	// 2. Create infrastructure components
	registry := prometheus.NewRegistry()
	comm := committer.NewCommitter(spannerClient, committer.WithMetrics(committer.NewMetrics(registry)))

	// 3. Create repositories
	productRepo := repo.NewProductRepo(spannerClient, clk)
	outboxRepo := repo.NewOutboxRepo()
	readModel := repo.NewReadModel(spannerClient)

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Registry:      registry,

		// 4. Create command use cases (write operations)
		CreateProduct:  create_product.NewInteractor(productRepo, outboxRepo, comm, clk),
		EditProduct:    edit_product.NewInteractor(productRepo, outboxRepo, comm, clk),
		SetStatus:      set_status.NewInteractor(productRepo, outboxRepo, comm, clk),
		ArchiveProduct: archive_product.NewInteractor(productRepo, outboxRepo, comm, clk),

		// 5. Create query use cases (read operations)
		GetProduct:   get_product.NewQuery(readModel),
		ListProducts: list_products.NewQuery(readModel),
		ListEvents:   list_events.NewQuery(repo.NewEventsReadModel(spannerClient)),
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
