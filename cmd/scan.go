package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/osint-surface/pkg/cache"
	"github.com/user/osint-surface/pkg/collectors"
	"github.com/user/osint-surface/pkg/config"
	"github.com/user/osint-surface/pkg/logging"
	"github.com/user/osint-surface/pkg/recon"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a full surface scan against an organization",
	Run: func(cmd *cobra.Command, args []string) {
		logging.DebugEnabled = DebugMode

		company, _ := cmd.Flags().GetString("company")
		domain, _ := cmd.Flags().GetString("domain")
		cachePath, _ := cmd.Flags().GetString("cache")
		jsonOut, _ := cmd.Flags().GetBool("json")

		if company == "" || domain == "" {
			fmt.Println("Error: --company and --domain are required")
			os.Exit(1)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Warning: could not load config (%v), all keyed sources disabled\n", err)
			cfg = &config.Config{}
		}

		ddg := collectors.NewDuckDuckGo()
		searchers := []recon.PeopleSearcher{ddg}
		if cfg.GoogleAPIKey != "" && cfg.GoogleCX != "" {
			searchers = append(searchers, collectors.NewGoogleCSE(cfg.GoogleAPIKey, cfg.GoogleCX))
		}
		searchers = append(searchers, collectors.NewSearchEngineDork())

		code := collectors.NewGitHub(cfg.GitHubToken)
		orchestrator := &recon.Orchestrator{
			Organization: company,
			Domain:       domain,
			Infra:        collectors.NewInfra(domain),
			Enricher:     collectors.NewEnricher(ddg),
			Code:         code,
			People:       searchers,
			Pivot:        &recon.PivotEngine{Organization: company, Code: code},
			Store:        cache.New(cachePath),
		}

		fmt.Printf("Scanning %s (%s)...\n", company, domain)
		result, err := orchestrator.Run(context.Background())
		if errors.Is(err, recon.ErrNoData) {
			fmt.Println("Error: repository source is rate limited and no cached snapshot exists for this target.")
			os.Exit(1)
		}
		if err != nil {
			fmt.Printf("Scan failed: %v\n", err)
			os.Exit(1)
		}

		if jsonOut {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				fmt.Printf("Error encoding result: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}
		renderReport(result, company, domain)
	},
}

func renderReport(r recon.ScanResult, company, domain string) {
	if r.Provenance == recon.ProvenanceCached {
		fmt.Printf("\nWARNING: source rate limited. Showing cached data from %s.\n",
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}

	fmt.Printf("\nSurface Overview: %s (%s)\n", company, domain)
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Risk Score:    %d/100\n", r.RiskScore)
	fmt.Printf("Identities:    %d\n", len(r.People))
	fmt.Printf("Repositories:  %d\n", len(r.Repositories))
	fmt.Printf("Provenance:    %s\n", r.Provenance)

	if r.Enrichment.Name != "" {
		fmt.Printf("\nCompany: %s (%s)\n", r.Enrichment.Name, r.Enrichment.Employees)
		fmt.Printf("  %s\n", r.Enrichment.Description)
		fmt.Printf("  %s\n", r.Enrichment.LinkedIn)
	}

	if len(r.Infra) > 0 {
		fmt.Println("\nTech Stack:")
		for _, f := range r.Infra {
			fmt.Printf("  [%s] %s\n", f.Risk, f.Label)
		}
	}

	if len(r.ExposedSubdomains) > 0 {
		fmt.Println("\nExposed Subdomains:")
		for _, f := range r.ExposedSubdomains {
			fmt.Printf("  [%s] %s\n", f.Risk, f.Label)
		}
	}

	if len(r.Repositories) > 0 {
		fmt.Println("\nRepositories:")
		for _, repo := range r.Repositories {
			fmt.Printf("  [%d/100] %s\n", repo.RiskScore, repo.Name)
			fmt.Printf("    %s\n", repo.URL)
		}
	}

	if len(r.People) > 0 {
		fmt.Println("\nDiscovered Identities:")
		for _, p := range r.People {
			fmt.Printf("  %s (@%s) - %s [%s]\n", p.DisplayName, p.Username, p.Status, p.Source)
			if p.ClaimedCompany != "" {
				fmt.Printf("    Company: %s\n", p.ClaimedCompany)
			}
			if p.ProfileURL != "" {
				fmt.Printf("    Profile: %s\n", p.ProfileURL)
			}
			for _, link := range p.AssociatedLinks {
				fmt.Printf("    Link:    %s\n", link)
			}
		}
	}
}

func init() {
	scanCmd.Flags().StringP("company", "c", "", "Organization name to scan")
	scanCmd.Flags().StringP("domain", "d", "", "Primary domain of the organization")
	scanCmd.Flags().String("cache", cache.DefaultSnapshotPath, "Path to the snapshot cache file")
	scanCmd.Flags().Bool("json", false, "Print the raw scan result as JSON")

	rootCmd.AddCommand(scanCmd)
}
