package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
	"github.com/rubiojr/fhsearch/pkg/search"
	"github.com/urfave/cli/v3"
)

var sortKeys = []string{
	funeralhomes.SortByInternalID,
	funeralhomes.SortByName,
	funeralhomes.SortByCity,
	funeralhomes.SortByRegion,
	funeralhomes.SortByPostalCode,
	funeralhomes.SortByClusterSize,
}

// flagName maps a filter field to its command line flag.
func flagName(field funeralhomes.Field) string {
	return strings.ReplaceAll(string(field), "_", "-")
}

// filterFlags declares one string flag per filterable field.
func filterFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(funeralhomes.Fields))
	for _, field := range funeralhomes.Fields {
		flags = append(flags, &cli.StringFlag{
			Name:  flagName(field),
			Usage: "Filter by " + strings.ToLower(field.Label()),
		})
	}
	return flags
}

// filtersFromFlags reads the filter flags declared by filterFlags.
func filtersFromFlags(c *cli.Command) funeralhomes.Filters {
	var f funeralhomes.Filters
	for _, field := range funeralhomes.Fields {
		f.Set(field, c.String(flagName(field)))
	}
	return f
}

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	flags := append(filterFlags(),
		&cli.IntFlag{
			Name:  "page",
			Usage: "Page number, starting at 1",
			Value: 1,
		},
		&cli.StringFlag{
			Name:  "sort-by",
			Usage: "Sort key (" + strings.Join(sortKeys, ", ") + ")",
			Value: funeralhomes.SortByInternalID,
		},
		&cli.StringFlag{
			Name:  "sort-dir",
			Usage: "Sort direction (asc, desc)",
			Value: funeralhomes.SortAsc,
		},
		&cli.BoolFlag{
			Name:  "no-pager",
			Usage: "Disable pager and output directly to terminal",
		},
	)

	return &cli.Command{
		Name:  "search",
		Usage: "Search funeral homes and print one page of results",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			q := search.Query{
				Filters: filtersFromFlags(c),
				Page:    c.Int("page") - 1,
				SortBy:  c.String("sort-by"),
				SortDir: c.String("sort-dir"),
			}
			return searchFuneralHomes(ctx, c.String("config"), q, c.Bool("no-pager"))
		},
	}
}

func validateQuery(q search.Query) error {
	if q.Page < 0 {
		return fmt.Errorf("page must be 1 or greater")
	}
	if !slices.Contains(sortKeys, q.SortBy) {
		return fmt.Errorf("unknown sort key %q, expected one of: %s", q.SortBy, strings.Join(sortKeys, ", "))
	}
	if q.SortDir != funeralhomes.SortAsc && q.SortDir != funeralhomes.SortDesc {
		return fmt.Errorf("unknown sort direction %q, expected asc or desc", q.SortDir)
	}
	return nil
}

// searchFuneralHomes fetches one page and prints it
func searchFuneralHomes(ctx context.Context, configPath string, q search.Query, noPager bool) error {
	if err := validateQuery(q); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	res, err := search.NewFetcher(newClient(cfg)).Fetch(ctx, q)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	return printOutput(formatSearchOutput(q, res), noPager)
}

// CountCommand creates the count command
func CountCommand() *cli.Command {
	return &cli.Command{
		Name:  "count",
		Usage: "Print the number of funeral homes matching the filters",
		Flags: filterFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}

			total, err := newClient(cfg).CountRecords(ctx, filtersFromFlags(c))
			if err != nil {
				return fmt.Errorf("counting: %w", err)
			}
			fmt.Println(total)
			return nil
		},
	}
}
