package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/store"
)

func (cl *commandline) reviews(cmd *cobra.Command) {
	group := &cobra.Command{
		Use:   "reviews",
		Short: "Read and add performance reviews",
	}

	var employeeID int64
	list := cl.leafCommand(&cobra.Command{
		Use:   "list",
		Short: "List performance reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl.fetchOrCached(cmd, store.Reviews)
			rows := cl.store.Reviews()
			if employeeID > 0 {
				rows = cl.store.ReviewsByEmployee(employeeID)
			}
			renderReviews(cmd.OutOrStdout(), rows)
			return nil
		},
		Args: cobra.NoArgs,
	})
	list.Flags().Int64Var(&employeeID, "employee", 0, "only reviews of this employee")
	group.AddCommand(list)

	var (
		in   domain.ReviewInput
		date string
	)
	add := cl.leafCommand(&cobra.Command{
		Use:   "add",
		Short: "Add a performance review",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			in.Date = day

			created, err := cl.store.AddReview(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "review %d added\n", created.ID)
			return nil
		},
		Args: cobra.NoArgs,
	})
	add.Flags().Int64Var(&in.EmployeeID, "employee", 0, "employee id")
	add.Flags().IntVar(&in.Rating, "rating", 0, "rating from 1 to 5")
	add.Flags().StringVar(&in.Comments, "comments", "", "review comments")
	add.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	_ = add.MarkFlagRequired("employee")
	_ = add.MarkFlagRequired("rating")
	group.AddCommand(add)

	cmd.AddCommand(group)
}
