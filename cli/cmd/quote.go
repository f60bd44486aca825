// ABOUTME: Quote command for scripted, non-interactive pricing runs
// ABOUTME: Creates a session, calculates, and optionally saves the agreement

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/beyondskool/pricing-wizard/cli/internal/client"
)

var (
	quoteSchool         string
	quoteRequesterEmail string
	quoteSchoolEmail    string
	quotePrograms       []string
	quoteDaysPerWeek    int
	quoteDiscount       int
	quoteSaveDir        string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price programs without the interactive wizard",
	Long: `Create a pricing session and calculate a quote in one shot.

Programs are given as NAME:STUDENTS:SECTION_SIZE, for example:
  pricing-wizard quote --school "Greenwood High" \
    --requester-email creator@beyondskool.com \
    --school-email principal@greenwood.edu \
    --program Communication:600:30 --program STEM:150:25

With --save DIR the quote is confirmed and the agreement PDF is written
to the directory.

Exit codes:
  0 - Quote calculated (margin passed)
  1 - Margin below floor, no pricing can be offered
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runQuote(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.Flags().StringVar(&quoteSchool, "school", "", "School name (required)")
	quoteCmd.Flags().StringVar(&quoteRequesterEmail, "requester-email", "", "Requester email address (required)")
	quoteCmd.Flags().StringVar(&quoteSchoolEmail, "school-email", "", "School email address (required)")
	quoteCmd.Flags().StringArrayVar(&quotePrograms, "program", nil, "Program as NAME:STUDENTS:SECTION_SIZE (repeatable, required)")
	quoteCmd.Flags().IntVar(&quoteDaysPerWeek, "days-per-week", 5, "School week length (5 or 6)")
	quoteCmd.Flags().IntVar(&quoteDiscount, "discount", 0, "Discount percentage (0-40)")
	quoteCmd.Flags().StringVar(&quoteSaveDir, "save", "", "Confirm the quote and write the agreement PDF to this directory")
	quoteCmd.MarkFlagRequired("school")
	quoteCmd.MarkFlagRequired("requester-email")
	quoteCmd.MarkFlagRequired("school-email")
	quoteCmd.MarkFlagRequired("program")
}

// parseProgramFlag parses NAME:STUDENTS:SECTION_SIZE
func parseProgramFlag(value string) (client.ProgramSelection, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return client.ProgramSelection{}, fmt.Errorf("program %q must be NAME:STUDENTS:SECTION_SIZE", value)
	}
	students, err := strconv.Atoi(parts[1])
	if err != nil {
		return client.ProgramSelection{}, fmt.Errorf("program %q has a non-numeric student count", value)
	}
	sectionSize, err := strconv.Atoi(parts[2])
	if err != nil {
		return client.ProgramSelection{}, fmt.Errorf("program %q has a non-numeric section size", value)
	}
	return client.ProgramSelection{
		Program:     parts[0],
		Students:    students,
		SectionSize: sectionSize,
	}, nil
}

// runQuote executes the non-interactive pricing flow and returns exit code
func runQuote(ctx context.Context, w io.Writer) int {
	selections := make([]client.ProgramSelection, 0, len(quotePrograms))
	for _, p := range quotePrograms {
		sel, err := parseProgramFlag(p)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		selections = append(selections, sel)
	}

	c := client.New(GetAPIURL())

	session, err := c.CreateSession(ctx, &client.CreateSessionInput{
		SchoolName:     quoteSchool,
		RequesterEmail: quoteRequesterEmail,
		SchoolEmail:    quoteSchoolEmail,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	session, err = c.Calculate(ctx, session.ID, &client.CalculateInput{
		Programs:        selections,
		DaysPerWeek:     quoteDaysPerWeek,
		DiscountPercent: quoteDiscount,
	})
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.MarginRefused() {
			if apiErr.GrossMarginPercent != nil {
				fmt.Fprintf(w, "No pricing can be offered: gross margin %.2f%% is below the floor.\n", *apiErr.GrossMarginPercent)
			} else {
				fmt.Fprintf(w, "No pricing can be offered: %v\n", apiErr)
			}
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatSessionJSON(session))
	} else {
		fmt.Fprintln(w, formatSessionHuman(session))
	}

	if quoteSaveDir == "" {
		return 0
	}

	if _, err := c.Confirm(ctx, session.ID); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	filename, pdf, err := c.DownloadDocument(ctx, session.ID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// The filename comes from a server header; keep the write inside the
	// chosen directory.
	path := filepath.Join(quoteSaveDir, filepath.Base(filename))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		fmt.Fprintf(w, "Error: writing agreement: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "\nAgreement saved to %s\n", path)

	return 0
}
