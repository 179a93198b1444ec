package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/models"
	"github.com/dvornik/boorubot/internal/repository"
)

var (
	searchLimit  int
	searchPage   int
	searchRandom bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <tags>...",
	Short: "Search posts by tags",
	Long: `Search posts by tags. Multiple arguments are joined into one query.

Examples:
  boorucli search landscape rating:safe
  boorucli search cat --random --limit 10
  boorucli search sunset --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", constants.DefaultPostLimit, "maximum number of posts to fetch")
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "zero-based upstream result page")
	searchCmd.Flags().BoolVar(&searchRandom, "random", false, "return posts in random order")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	repo, err := newRepository()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	query := strings.Join(args, " ")
	if searchRandom {
		query = constants.RandomSortTag + " " + query
	}

	posts, err := repo.GetPosts(cmd.Context(), repository.PostSearchCriteria{
		Tags:  query,
		Limit: searchLimit,
		Page:  searchPage,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(posts)
	}

	if len(posts) == 0 {
		fmt.Println("No posts found.")
		return nil
	}

	for _, p := range posts {
		printPost(&p)
		fmt.Println()
	}
	fmt.Printf("%d post(s)\n", len(posts))

	return nil
}

func printPost(p *models.Post) {
	fmt.Printf("ID:      %d\n", int64(p.ID))
	fmt.Printf("Type:    %s\n", p.MediaType())
	fmt.Printf("URL:     %s\n", p.DisplayURL())
	if int64(p.Width) > 0 && int64(p.Height) > 0 {
		fmt.Printf("Size:    %dx%d\n", int64(p.Width), int64(p.Height))
	}
	fmt.Printf("Score:   %d\n", int64(p.Score))
	if p.Rating != "" {
		fmt.Printf("Rating:  %s\n", string(p.Rating))
	}
	if tags := p.TagList(); len(tags) > 0 {
		fmt.Printf("Tags:    %s\n", strings.Join(tags, ", "))
	}
	if p.Source != "" {
		fmt.Printf("Source:  %s\n", string(p.Source))
	}
}
