// ABOUTME: Status command for the pricing CLI
// ABOUTME: Shows the lifecycle state and totals of a pricing session

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/beyondskool/pricing-wizard/cli/internal/client"
)

var statusCmd = &cobra.Command{
	Use:   "status <session-id>",
	Short: "Show a pricing session",
	Long:  `Display a pricing session's lifecycle state, selected programs, and computed totals.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runStatus(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus fetches and prints the session and returns exit code
func runStatus(ctx context.Context, w io.Writer, sessionID string) int {
	c := client.New(GetAPIURL())

	session, err := c.GetSession(ctx, sessionID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatSessionJSON(session))
	} else {
		fmt.Fprintln(w, formatSessionHuman(session))
	}

	return 0
}

// formatSessionHuman formats a session for human readability
func formatSessionHuman(session *client.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session:  %s\n", session.ID)
	fmt.Fprintf(&b, "School:   %s\n", session.SchoolName)
	fmt.Fprintf(&b, "State:    %s\n", session.State)

	if session.Summary == nil {
		b.WriteString("\nNo pricing calculated yet.")
		return b.String()
	}

	b.WriteString("\n")
	for _, q := range session.Quotes {
		fmt.Fprintf(&b, "%s\n", q.Selection.Program)
		fmt.Fprintf(&b, "  Students:              %d\n", q.Selection.Students)
		fmt.Fprintf(&b, "  Sections:              %d\n", q.Staffing.Sections)
		fmt.Fprintf(&b, "  Full-Time Teachers:    %d\n", q.Staffing.FullTimeTeachers)
		fmt.Fprintf(&b, "  Variable Teacher Days: %d\n", q.Staffing.VariableTeacherDays)
		fmt.Fprintf(&b, "  Price per Student:     Rs.%.0f\n", q.Breakdown.PricePerStudent)
		fmt.Fprintf(&b, "  Total Program Price:   Rs.%.0f\n", q.Breakdown.FinalPrice)
	}

	fmt.Fprintf(&b, "\nTotal Price:               Rs.%d\n", session.Summary.DisplayTotalFinalPrice)
	fmt.Fprintf(&b, "Average Price per Student: Rs.%d\n", session.Summary.AveragePricePerStudent)
	fmt.Fprintf(&b, "Gross Margin:              %.2f%%", session.Summary.GrossMarginPercent)

	return b.String()
}

// formatSessionJSON formats a session as JSON
func formatSessionJSON(session *client.Session) string {
	data, _ := json.MarshalIndent(session, "", "  ")
	return string(data)
}
