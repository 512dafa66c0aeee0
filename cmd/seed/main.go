// Seeds a local database with demo CRM data for manual testing.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pipelinecrm/internal/database"
	"pipelinecrm/internal/domain"
	"pipelinecrm/internal/modules/opportunity"
	"pipelinecrm/internal/repository"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "crm.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("connect")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	ctx := context.Background()
	orgRepo := repository.NewOrganizationRepository(db)
	principalRepo := repository.NewPrincipalRepository(db)
	productRepo := repository.NewProductRepository(db)
	oppRepo := repository.NewOpportunityRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)

	orgs := []*domain.Organization{
		{Name: "Test Corp", Type: domain.OrgTypeCustomer, Segment: "Enterprise", City: "Chicago", IsActive: true},
		{Name: "Acme Foods", Type: domain.OrgTypeDistributor, Segment: "Food Service", City: "Denver", IsActive: true},
		{Name: "Globex Retail", Type: domain.OrgTypeProspect, Segment: "Retail", City: "Austin", IsActive: true},
	}
	for _, o := range orgs {
		if err := orgRepo.Create(ctx, o); err != nil {
			log.Fatal().Err(err).Str("org", o.Name).Msg("seed org")
		}
	}

	principals := []*domain.Principal{
		{OrganizationID: orgs[0].ID, Name: "Jane Doe", Title: "Head of Purchasing", Email: "jane@testcorp.example", IsActive: true},
		{OrganizationID: orgs[0].ID, Name: "Bob Smith", Title: "Category Manager", Email: "bob@testcorp.example", IsActive: true},
		{OrganizationID: orgs[1].ID, Name: "Carol White", Title: "Owner", Email: "carol@acme.example", IsActive: true},
	}
	for _, p := range principals {
		if err := principalRepo.Create(ctx, p); err != nil {
			log.Fatal().Err(err).Str("principal", p.Name).Msg("seed principal")
		}
	}

	products := []*domain.Product{
		{Name: "Premium Blend", Category: "Beverages", SKU: "BEV-001", IsActive: true},
		{Name: "Snack Pack", Category: "Snacks", SKU: "SNK-014", IsActive: true},
	}
	for _, p := range products {
		if err := productRepo.Create(ctx, p); err != nil {
			log.Fatal().Err(err).Str("product", p.Name).Msg("seed product")
		}
	}

	orgNames := make(map[uuid.UUID]string, len(orgs))
	for _, o := range orgs {
		orgNames[o.ID] = o.Name
	}

	now := time.Now()
	close := now.AddDate(0, 2, 0)
	for i, p := range principals {
		name, err := opportunity.GenerateName(orgNames[p.OrganizationID], p.Name, domain.ContextNewBusiness, now)
		if err != nil {
			log.Fatal().Err(err).Msg("generate name")
		}
		opp := &domain.Opportunity{
			Name:           name,
			OrganizationID: p.OrganizationID,
			PrincipalID:    p.ID,
			ProductID:      &products[i%len(products)].ID,
			Context:        domain.ContextNewBusiness,
			Stage:          domain.Stages[i%len(domain.Stages)],
			Probability:    25 * (i + 1),
			Value:          float64(5000 * (i + 1)),
			CloseDate:      &close,
			DealOwner:      "demo",
		}
		if err := oppRepo.Create(ctx, opp); err != nil {
			log.Fatal().Err(err).Str("opportunity", name).Msg("seed opportunity")
		}

		inter := &domain.Interaction{
			Type:        domain.InteractionCall,
			Subject:     "Intro call",
			PrincipalID: p.ID,
			OccurredAt:  now.AddDate(0, 0, -i),
			CreatedBy:   "demo",
		}
		if err := interactionRepo.Create(ctx, inter); err != nil {
			log.Fatal().Err(err).Msg("seed interaction")
		}
	}

	log.Info().
		Int("organizations", len(orgs)).
		Int("principals", len(principals)).
		Int("products", len(products)).
		Msg("seed complete")
}
