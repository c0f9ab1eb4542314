package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/limaJavier/admission/internal/logger"
	"github.com/limaJavier/admission/pkg/model"
	"github.com/limaJavier/admission/pkg/record"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"
)

const (
	name    = "admission"
	version = "0.1.0"

	exitFailure      = 1
	exitNoSource     = 2
	exitVerification = 15
)

// flushLogs runs before an exit code ends the process, the After hook is skipped on those exits
var flushLogs = logger.Flush

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		klog.ErrorS(err, "Failed")
		logger.Flush()
		os.Exit(exitFailure)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Version = version
	app.Usage = "Allocate applicants to departments"
	app.Description = "Admit applicants over successive rounds of department choices, ranking them by the mean of the exams each department requires"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Value:   "applicant_list.txt",
			Usage:   "`FILE` holding one applicant record per line",
		},
		&cli.IntFlag{
			Name:    "places",
			Aliases: []string{"n"},
			Usage:   "places per department; if neither this flag nor the catalog sets it, it is read from the standard input",
		},
		&cli.StringFlag{
			Name:    "catalog",
			Aliases: []string{"c"},
			Usage:   "YAML or JSON `FILE` describing departments, required exams and rounds",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   "`DIR` where the roster files are written",
		},
		&cli.BoolFlag{
			Name:  "stdout",
			Usage: "print the rosters to the standard output instead of writing files",
		},
		&cli.BoolFlag{
			Name:  "pending",
			Usage: "print the applicants that were not admitted",
		},
		&cli.IntFlag{
			Name:  "verbosity",
			Value: 0,
			Usage: "klog verbosity `LEVEL`",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "`FILE` to write logs to, besides the standard error",
		},
	}
	app.Before = func(c *cli.Context) error {
		return logger.InitLogger(c.Int("verbosity"), c.String("log-file"))
	}
	app.After = func(c *cli.Context) error {
		flushLogs()
		return nil
	}
	app.ExitErrHandler = exitErrHandler
	app.Action = run

	sort.Sort(cli.FlagsByName(app.Flags))
	return app
}

func run(c *cli.Context) error {
	//** Load catalog
	catalog := model.DefaultCatalog()
	if path := c.String("catalog"); path != "" {
		var err error
		if catalog, err = model.CatalogFromFile(path); err != nil {
			return err
		}
	}

	//** Resolve places
	places, err := resolvePlaces(c, catalog)
	if err != nil {
		return err
	}

	//** Extract applicants
	file := c.String("file")
	applicants, err := record.ParseFile(file)
	if errors.Is(err, record.ErrSourceNotFound) {
		return cli.Exit(fmt.Sprintf("Error! File %v does not exist. Cannot proceed.", file), exitNoSource)
	} else if err != nil {
		return fmt.Errorf("cannot parse applicants: %w", err)
	}
	klog.InfoS("Applicants loaded", "file", file, "applicants", len(applicants))

	//** Allocate
	university, err := model.NewUniversity(catalog)
	if err != nil {
		return err
	}
	if err := university.SetEmptyPlaces(places); err != nil {
		return err
	}
	if err := university.AddApplicants(applicants); err != nil {
		return err
	}
	if err := university.EnrollApplicants(); err != nil {
		return fmt.Errorf("an error occurred during allocation: %w", err)
	}

	// Verify allocation correctness
	if !model.Verify(university, applicants) {
		return cli.Exit("allocation verification failed", exitVerification)
	}
	klog.InfoS("Allocation finished", "admitted", len(applicants)-len(university.Pending()), "pending", len(university.Pending()))

	//** Output
	if c.Bool("stdout") {
		for _, department := range university.Departments() {
			fmt.Fprintln(c.App.Writer, record.Format(department))
		}
	} else if err := record.WriteAll(c.Context, c.String("out"), university.Departments()); err != nil {
		return fmt.Errorf("an error occurred while writing rosters: %w", err)
	}

	if c.Bool("pending") {
		printPending(c.App.Writer, university.Pending())
	}
	return nil
}

func exitErrHandler(c *cli.Context, err error) {
	flushLogs()
	cli.HandleExitCoder(err)
}

func resolvePlaces(c *cli.Context, catalog *model.Catalog) (int, error) {
	if c.IsSet("places") {
		return c.Int("places"), nil
	} else if catalog.Places != nil {
		return *catalog.Places, nil
	}
	return readPlaces(c.App.Reader)
}

// readPlaces reads the capacity prompt: a single integer
func readPlaces(reader io.Reader) (int, error) {
	var places int
	if _, err := fmt.Fscan(reader, &places); err != nil {
		return 0, fmt.Errorf("wrong places input: %w", err)
	}
	if places < 0 {
		return 0, fmt.Errorf("%w: %v", model.ErrNegativePlaces, places)
	}
	return places, nil
}

func printPending(writer io.Writer, pending []model.Applicant) {
	fmt.Fprintln(writer, "Pending")
	for _, applicant := range pending {
		fmt.Fprintln(writer, applicant)
	}
}
