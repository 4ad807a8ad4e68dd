// gradecalc - grade point calculator
//
// Usage:
//
//	gradecalc sgpa 7.5
//	gradecalc ygpa --odd-cp 85 --odd-c 10 --even-cp 92 --even-c 11
//	gradecalc dgpa --program 3l --y2 6 --y3 7 --y4 8
//	gradecalc cgpa --cp 750 --c 100
//	gradecalc fields 3l
//	gradecalc formulas
//
// A rejected calculation prints its reason on stderr and exits with status 1.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/warp/gradepoint/api"
	"github.com/warp/gradepoint/factory"
	"github.com/warp/gradepoint/grading"
)

var version = "dev"

// errRejected marks a calculation the engine refused; the reason is already printed.
var errRejected = errors.New("calculation rejected")

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

type runner struct {
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
	format string
}

func newApp(stdout, stderr io.Writer) *cli.App {
	r := &runner{stdout: stdout, stderr: stderr, logger: zerolog.Nop()}

	return &cli.App{
		Name:      "gradecalc",
		Usage:     "Convert SGPA to percentage and compute YGPA, DGPA and CGPA",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format (text, json)",
				EnvVars: []string{"GRADEPOINT_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"GRADEPOINT_LOG_LEVEL"},
			},
		},
		Before: r.before,

		Commands: []*cli.Command{
			{
				Name:      "sgpa",
				Usage:     "Convert a semester average to a percentage",
				ArgsUsage: "<sgpa>",
				Action: func(c *cli.Context) error {
					return r.calculate(grading.SingleValue{GPA: factory.ParseNumber(c.Args().First())})
				},
			},
			{
				Name:  "ygpa",
				Usage: "Yearly average from odd and even semester totals",
				Flags: []cli.Flag{
					numberFlag("odd-cp", "Odd semester credit points"),
					numberFlag("odd-c", "Odd semester credits"),
					numberFlag("even-cp", "Even semester credit points"),
					numberFlag("even-c", "Even semester credits"),
				},
				Action: func(c *cli.Context) error {
					return r.calculate(grading.SemesterPair{
						OddCreditPoints:  number(c, "odd-cp"),
						OddCredits:       number(c, "odd-c"),
						EvenCreditPoints: number(c, "even-cp"),
						EvenCredits:      number(c, "even-c"),
					})
				},
			},
			{
				Name:  "dgpa",
				Usage: "Degree average from yearly averages",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "program",
						Aliases:  []string{"p"},
						Usage:    "Program type: 1, 2, 3, 3l, 4 or ONE_YEAR..FOUR_YEAR",
						Required: true,
					},
					numberFlag("y1", "First year average"),
					numberFlag("y2", "Second year average"),
					numberFlag("y3", "Third year average"),
					numberFlag("y4", "Fourth year average"),
				},
				Action: func(c *cli.Context) error {
					return r.calculate(grading.DegreeInput{
						Program: grading.ParseProgramType(c.String("program")),
						Years: [grading.YearSlots]float64{
							number(c, "y1"), number(c, "y2"), number(c, "y3"), number(c, "y4"),
						},
					})
				},
			},
			{
				Name:  "cgpa",
				Usage: "Cumulative average from total credit points and credits",
				Flags: []cli.Flag{
					numberFlag("cp", "Total credit points"),
					numberFlag("c", "Total credits"),
				},
				Action: func(c *cli.Context) error {
					return r.calculate(grading.CumulativeTotals{
						CreditPoints: number(c, "cp"),
						Credits:      number(c, "c"),
					})
				},
			},
			{
				Name:      "fields",
				Usage:     "Show which yearly averages a program type uses",
				ArgsUsage: "<program>",
				Action:    r.fields,
			},
			{
				Name:   "formulas",
				Usage:  "Print the formula reference",
				Action: r.formulas,
			},
		},
	}
}

func numberFlag(name, usage string) cli.Flag {
	return &cli.StringFlag{Name: name, Usage: usage}
}

// number reads a flag the way a form field is read: empty or unparseable is NaN.
func number(c *cli.Context, name string) float64 {
	return factory.ParseNumber(c.String(name))
}

func (r *runner) before(c *cli.Context) error {
	r.format = strings.ToLower(c.String("format"))
	if r.format != "text" && r.format != "json" {
		return errors.Errorf("unknown format %q", r.format)
	}

	level, err := zerolog.ParseLevel(c.String("log-level"))
	if err != nil {
		return errors.Wrap(err, "log-level")
	}
	r.logger = zerolog.New(zerolog.ConsoleWriter{Out: r.stderr, NoColor: true}).
		Level(level).With().Timestamp().Logger()
	return nil
}

func (r *runner) calculate(in grading.Input) error {
	res := in.Calculate()
	r.logger.Debug().
		Str("kind", string(res.Kind)).
		Str("status", string(res.Status)).
		Msg("calculated")

	dto := api.Render(res)
	if r.format == "json" {
		if err := r.writeJSON(dto); err != nil {
			return err
		}
	} else if res.OK() {
		fmt.Fprintln(r.stdout, dto.Display)
	} else {
		fmt.Fprintln(r.stderr, dto.Display)
	}

	if !res.OK() {
		return errRejected
	}
	return nil
}

func (r *runner) fields(c *cli.Context) error {
	raw := c.Args().First()
	program := grading.ParseProgramType(raw)
	slots := grading.FieldVisibilityFor(program)

	if r.format == "json" {
		return r.writeJSON(api.FieldsDTO{ProgramType: raw, Recognized: program.Valid(), VisibleFields: slots})
	}

	if !program.Valid() {
		fmt.Fprintf(r.stdout, "%q is not a program type; no yearly fields apply\n", raw)
		return nil
	}
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = fmt.Sprintf("y%d", s+1)
	}
	fmt.Fprintf(r.stdout, "%s: %s\n", program.Name(), strings.Join(names, ", "))
	return nil
}

func (r *runner) formulas(c *cli.Context) error {
	formulas := grading.Formulas()

	if r.format == "json" {
		dtos := make([]api.FormulaDTO, len(formulas))
		for i, f := range formulas {
			dtos[i] = api.FormulaDTO{Kind: string(f.Kind), Title: f.Title, Expression: f.Expression, Notes: f.Notes}
		}
		return r.writeJSON(dtos)
	}

	for _, f := range formulas {
		fmt.Fprintf(r.stdout, "%s\n  %s\n  %s\n", f.Title, f.Expression, f.Notes)
	}
	return nil
}

func (r *runner) writeJSON(v any) error {
	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "write output")
}
