package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/repository"
)

var tagsLimit int

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:   "tags <query>",
	Short: "Look up tags by name",
	Long: `Look up tags by exact name, falling back to a wildcard search when
the exact lookup finds nothing and the query is at least three characters.

Examples:
  boorucli tags landscape
  boorucli tags cat --limit 20 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runTags,
}

func init() {
	tagsCmd.Flags().IntVar(&tagsLimit, "limit", constants.DefaultTagLimit, "maximum number of tags to fetch")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	repo, err := newRepository()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	query := args[0]

	tags, err := repo.GetTags(cmd.Context(), repository.TagSearchCriteria{
		Name:  query,
		Limit: tagsLimit,
	})
	if err != nil {
		return err
	}

	// Wildcard retry for longer queries
	if len(tags) == 0 && len(query) >= constants.MinPatternLength {
		tags, err = repo.GetTags(cmd.Context(), repository.TagSearchCriteria{
			Pattern: "%" + query + "%",
			Limit:   tagsLimit,
		})
		if err != nil {
			return err
		}
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(tags)
	}

	if len(tags) == 0 {
		fmt.Println("No tags found.")
		return nil
	}

	for _, t := range tags {
		fmt.Printf("%-40s %8d posts  (type %d)\n", string(t.Name), int64(t.Count), int64(t.Type))
	}

	return nil
}
