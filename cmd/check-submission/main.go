package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/onchainreach/creator-hub/internal/campaigns"
	"github.com/onchainreach/creator-hub/internal/config"
	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/onchainreach/creator-hub/internal/validation"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		campaignID = flag.String("campaign", "", "campaign id whose requirements are checked")
		contentURL = flag.String("url", "", "content URL to check")
		platform   = flag.String("platform", models.PlatformTwitter, "content platform (twitter, farcaster, lens, other)")
		hashtags   = flag.String("hashtags", "", "comma separated hashtags, used when no campaign is given")
		mentions   = flag.String("mentions", "", "comma separated mentions, used when no campaign is given")
		topics     = flag.String("topics", "", "comma separated topics, used when no campaign is given")
		urls       = flag.String("urls", "", "comma separated URLs, used when no campaign is given")
		health     = flag.Bool("health", false, "only check that the content inspector is reachable")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	validator := validation.NewValidator(validation.Config{
		BaseURL: cfg.InspectorBaseURL,
		Timeout: cfg.InspectorTimeout,
		Policy:  validation.Policy(cfg.PlatformPolicy),
	})

	ctx := context.Background()

	if *health {
		status := validator.CheckHealth(ctx)
		printJSON(status)
		if status.Status == "error" {
			os.Exit(1)
		}
		return
	}

	if strings.TrimSpace(*contentURL) == "" {
		fmt.Fprintln(os.Stderr, "usage: check-submission -url <content url> [-campaign <id> | -hashtags ... -mentions ... -topics ... -urls ...]")
		os.Exit(2)
	}

	reqs := models.RequirementSet{
		Hashtags: splitList(*hashtags),
		Mentions: splitList(*mentions),
		Topics:   splitList(*topics),
		URLs:     urlList(*urls),
	}
	if *campaignID != "" {
		campaign, err := campaigns.NewCatalog(campaigns.DefaultCampaigns).Get(*campaignID)
		if err != nil {
			logrus.Fatalf("Unknown campaign %s: %v", *campaignID, err)
		}
		reqs = campaigns.RequirementsFor(campaign)
		fmt.Printf("Checking %s against %q (%s)\n", *contentURL, campaign.Title, campaign.Brand)
	}

	result := validator.ValidateSubmission(ctx, *platform, *contentURL, reqs)
	printJSON(result)

	if !result.Passed {
		if missing := result.MissingElements(); len(missing) > 0 {
			fmt.Printf("\nMissing: %s\n", strings.Join(missing, ", "))
		}
		os.Exit(1)
	}
}

func splitList(value string) []string {
	out := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// urlList leaves URLs unset unless the flag was given so the category stays out of the check
func urlList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return splitList(value)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(data))
}
