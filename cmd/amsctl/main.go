// amsctl drives the console's list views from the terminal: mount a view,
// page and search it the way the dashboard would, print the rows, or export
// them to a spreadsheet.
package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"ams-console/internal/auth"
	"ams-console/internal/config"
	"ams-console/internal/listview"
	"ams-console/internal/logger"
	"ams-console/internal/metrics"
	"ams-console/internal/source"
	"ams-console/internal/views"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// page is what every dashboard view exposes to the CLI.
type page interface {
	Mount(ctx context.Context, values url.Values) error
	ActiveTab() string
	ActiveState() listview.State
	SetPage(ctx context.Context, n int) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	CanPrev() bool
	CanNext() bool
	Search(ctx context.Context, q string)
	Query() url.Values
	Table(tab string) ([]string, [][]string, error)
	Export(tab string, w io.Writer) error
	Close()
}

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	app := &cli.App{
		Name:  "amsctl",
		Usage: "asset-management console list views, terminal edition",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "view", Value: "assets", Usage: "assets, maintenance or temporary"},
			&cli.StringFlag{Name: "tab", Usage: "tab id within the view (default: the view's primary tab)"},
			&cli.IntFlag{Name: "page", Value: 1, Usage: "page number"},
			&cli.BoolFlag{Name: "next", Usage: "advance one page past --page"},
			&cli.BoolFlag{Name: "prev", Usage: "go one page back from --page"},
			&cli.StringFlag{Name: "search", Usage: "search text (collapses to a single page)"},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Fetch and print the rows of one tab",
				Action: func(c *cli.Context) error {
					return runList(c, lg)
				},
			},
			{
				Name:  "export",
				Usage: "Fetch one tab and write its rows as .xlsx",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "export.xlsx"},
				},
				Action: func(c *cli.Context) error {
					return runExport(c, lg)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		lg.Fatalw("amsctl failed", "error", err)
	}
}

// mountPage builds the requested view, mounts it as the dashboard would
// from a URL, then applies page/search.
func mountPage(ctx context.Context, c *cli.Context, lg *zap.SugaredLogger) (page, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	opts := []source.Option{
		source.WithLogger(lg),
		source.WithMetrics(metrics.New()),
	}
	if cfg.Token != "" {
		opts = append(opts, source.WithTokenSource(auth.NewStaticTokenSource(cfg.Token)))
	}
	ams := source.NewClient(cfg.AssetBase(), opts...)
	hr := source.NewClient(cfg.HRBase(), opts...)
	lg.Debugw("services resolved", "asset", ams.Base(), "hr", hr.Base())

	vopts := views.Options{PageSize: cfg.PageSize, Debounce: cfg.Debounce, Logger: lg}

	var p page
	switch c.String("view") {
	case "assets":
		p = views.NewAssetsView(ams, vopts)
	case "maintenance":
		p = views.NewMaintenanceView(ams, vopts)
	case "temporary":
		p = views.NewTemporaryView(hr, ams, vopts)
	default:
		return nil, fmt.Errorf("unknown view %q", c.String("view"))
	}

	values := url.Values{}
	if tab := c.String("tab"); tab != "" {
		values.Set("tab", tab)
	}
	if err := p.Mount(ctx, values); err != nil {
		p.Close()
		return nil, err
	}
	if q := c.String("search"); q != "" {
		p.Search(ctx, q)
		return p, nil
	}
	if n := c.Int("page"); n > 1 {
		if err := p.SetPage(ctx, n); err != nil {
			p.Close()
			return nil, err
		}
	}
	switch {
	case c.Bool("next"):
		err = p.NextPage(ctx)
	case c.Bool("prev"):
		err = p.PrevPage(ctx)
	}
	if err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load(), nil
}

func runList(c *cli.Context, lg *zap.SugaredLogger) error {
	ctx := context.Background()
	p, err := mountPage(ctx, c, lg)
	if err != nil {
		return err
	}
	defer p.Close()

	headers, rows, err := p.Table(p.ActiveTab())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	st := p.ActiveState()
	fmt.Printf("\ntab=%s page=%d/%d total=%d prev=%t next=%t",
		st.Tab, st.Page, st.TotalPages, st.TotalCount, p.CanPrev(), p.CanNext())
	if q := p.Query().Encode(); q != "" {
		fmt.Printf(" url=?%s", q)
	}
	fmt.Println()
	return nil
}

func runExport(c *cli.Context, lg *zap.SugaredLogger) error {
	ctx := context.Background()
	p, err := mountPage(ctx, c, lg)
	if err != nil {
		return err
	}
	defer p.Close()

	out := c.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := p.Export(p.ActiveTab(), f); err != nil {
		return err
	}
	lg.Infow("exported", "tab", p.ActiveTab(), "file", out)
	return nil
}
