package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List local rental jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectBridge()
		if err != nil {
			return err
		}

		var jobs []models.LocalJob
		if err := client.get("/jobs", &jobs); err != nil {
			return err
		}

		if len(jobs) == 0 {
			fmt.Println("No local jobs")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPROGRESS\tSUBMITTED")
		for _, j := range jobs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\t%s\n",
				j.ID, j.Name, j.Status, j.ProgressPercent, j.SubmittedAt)
		}
		return w.Flush()
	},
}
