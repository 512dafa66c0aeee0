// Prints a pipeline summary from a running API server. Mostly useful for
// smoke-testing a deployment from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"pipelinecrm/internal/client"
	"pipelinecrm/internal/repository"
	"pipelinecrm/internal/store"
)

func main() {
	baseURL := os.Getenv("CRM_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	token := os.Getenv("CRM_API_TOKEN")
	if token == "" {
		fmt.Fprintln(os.Stderr, "CRM_API_TOKEN is empty")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := client.New(baseURL, token)
	opps := store.NewOpportunityStore(api)

	if err := opps.FetchList(ctx, repository.OpportunityFilters{Limit: 100}); err != nil {
		fmt.Fprintf(os.Stderr, "fetch opportunities: %v\n", err)
		os.Exit(1)
	}

	k := opps.KPIs()
	fmt.Println("Pipeline summary")
	fmt.Printf("  total opportunities:  %d\n", k.Total)
	fmt.Printf("  active:               %d\n", k.Active)
	fmt.Printf("  won this month:       %d\n", k.WonThisMonth)
	fmt.Printf("  avg probability:      %.1f%%\n", k.AvgProbability)
	fmt.Printf("  weighted pipeline:    %.2f\n", k.PipelineValue)

	if kpis, err := api.Dashboard(ctx); err == nil {
		fmt.Println("Server-side aggregates")
		fmt.Printf("  total: %d  active: %d  won this month: %d  pipeline: %.2f\n",
			kpis.Total, kpis.Active, kpis.WonThisMonth, kpis.PipelineValue)
	}

	rows, err := api.PrincipalActivity(ctx, 10, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch principal activity: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Top principals")
	for _, row := range rows {
		fmt.Printf("  %-24s %-20s opps=%d won=%d interactions=%d\n",
			row.PrincipalName, row.OrganizationName, row.TotalOpps, row.WonOpps, row.InteractionCount)
	}
}
