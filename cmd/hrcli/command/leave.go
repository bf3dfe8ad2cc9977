package command

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/hrclient"
	"github.com/locvowork/hr_records/internal/store"
)

func parseDay(raw string) (domain.Date, error) {
	if raw == "" {
		return domain.NewDate(time.Now()), nil
	}
	return domain.ParseDate(raw)
}

func parseLeaveID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid leave request id %q", raw)
	}
	return id, nil
}

func (cl *commandline) leave(cmd *cobra.Command) {
	group := &cobra.Command{
		Use:   "leave",
		Short: "Submit and review leave requests",
	}

	group.AddCommand(cl.leafCommand(&cobra.Command{
		Use:   "list",
		Short: "List leave requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl.fetchOrCached(cmd, store.LeaveRequests)
			renderLeave(cmd.OutOrStdout(), cl.store.LeaveRequests())
			return nil
		},
		Args: cobra.NoArgs,
	}))

	var (
		in   domain.LeaveRequestInput
		date string
	)
	submit := cl.leafCommand(&cobra.Command{
		Use:   "submit",
		Short: "Submit a leave request (status defaults to Pending)",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			in.Date = day

			created, err := cl.store.AddLeaveRequest(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "leave request %d submitted (%s)\n", created.ID, created.Status)
			return nil
		},
		Args: cobra.NoArgs,
	})
	submit.Flags().Int64Var(&in.EmployeeID, "employee", 0, "employee id")
	submit.Flags().StringVar(&in.Reason, "reason", "", "reason for leave")
	submit.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	submit.Flags().StringVar((*string)(&in.Status), "status", "", "initial status")
	_ = submit.MarkFlagRequired("employee")
	group.AddCommand(submit)

	group.AddCommand(cl.setStatusCommand("approve id", "Approve a leave request", domain.LeaveApproved))
	group.AddCommand(cl.setStatusCommand("reject id", "Reject a leave request", domain.LeaveRejected))
	group.AddCommand(cl.setStatusCommand("set-status id status", "Set the status of a leave request", ""))

	cmd.AddCommand(group)
}

// setStatusCommand builds a status update command. An empty fixed status
// takes the status from the second argument.
func (cl *commandline) setStatusCommand(use, short string, fixed domain.LeaveStatus) *cobra.Command {
	nargs := 1
	if fixed == "" {
		nargs = 2
	}
	return cl.leafCommand(&cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLeaveID(args[0])
			if err != nil {
				return err
			}
			status := fixed
			if status == "" {
				status = domain.LeaveStatus(args[1])
			}

			updated, err := cl.store.UpdateLeaveStatus(cmd.Context(), id, status)
			if err != nil {
				if hrclient.IsNotFound(err) {
					return fmt.Errorf("leave request %d not found", id)
				}
				if errors.Is(err, domain.ErrValidation) {
					return fmt.Errorf("rejected by the server: %w", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "leave request %d for %s is now %s\n", updated.ID, updated.Name, updated.Status)
			return nil
		},
		Args: cobra.ExactArgs(nargs),
	})
}
