package command

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/store"
)

func (cl *commandline) employees(cmd *cobra.Command) {
	group := &cobra.Command{
		Use:     "employees",
		Short:   "List, add, delete and search employees",
		Aliases: []string{"emp"},
	}

	group.AddCommand(cl.leafCommand(&cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.store.Fetch(cmd.Context(), store.Employees); err != nil {
				return errors.New(cl.store.Err(store.Employees))
			}
			renderEmployees(cmd.OutOrStdout(), cl.store.Employees())
			return nil
		},
		Args: cobra.NoArgs,
	}))

	var draft domain.EmployeeInput
	add := cl.leafCommand(&cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			res := cl.store.AddEmployee(cmd.Context(), draft)
			if res.State != store.Committed {
				return fmt.Errorf("%s: %w", cl.store.Err(store.Employees), res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "employee %d added\n", res.Record.ID)
			return nil
		},
		Args: cobra.NoArgs,
	})
	add.Flags().StringVar(&draft.Name, "name", "", "full name")
	add.Flags().StringVar(&draft.Position, "position", "", "job title")
	add.Flags().StringVar(&draft.Department, "department", "", "department")
	add.Flags().StringVar(&draft.EmploymentHistory, "history", "", "employment history")
	add.Flags().StringVar(&draft.Contact, "contact", "", "contact details")
	_ = add.MarkFlagRequired("name")
	group.AddCommand(add)

	group.AddCommand(cl.leafCommand(&cobra.Command{
		Use:   "delete id",
		Short: "Delete an employee and every record that references it",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid employee id %q", args[0])
			}

			err = cl.store.DeleteEmployee(cmd.Context(), id)
			var desync *store.DesyncError
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "employee %d deleted\n", id)
				return nil
			case errors.As(err, &desync):
				return fmt.Errorf("delete failed and the employee list could not be reloaded; local data may be stale: %w", err)
			case errors.Is(err, domain.ErrNotFound):
				return fmt.Errorf("employee %d not found", id)
			default:
				return err
			}
		},
		Args: cobra.ExactArgs(1),
	}))

	var limit int
	search := cl.leafCommand(&cobra.Command{
		Use:   "search query",
		Short: "Search employees by name, position or department",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := cl.client.SearchEmployees(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			renderEmployees(cmd.OutOrStdout(), rows)
			return nil
		},
		Args: cobra.ExactArgs(1),
	})
	search.Flags().IntVar(&limit, "limit", 20, "maximum number of matches")
	group.AddCommand(search)

	cmd.AddCommand(group)
}
