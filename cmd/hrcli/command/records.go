package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/store"
)

// fetchOrCached refreshes a mirrored collection and falls back to the cached
// copy when the API is unreachable.
func (cl *commandline) fetchOrCached(cmd *cobra.Command, r store.Resource) {
	if err := cl.store.Fetch(cmd.Context(), r); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s, showing cached data\n", cl.store.Err(r))
	}
}

func exportCommand(use, short string, export func(ctx context.Context, w io.Writer) (int64, error)) *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			n, err := export(cmd.Context(), f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(out)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, n)
			return nil
		},
		Args: cobra.NoArgs,
	}
	c.Flags().StringVarP(&out, "out", "o", "", "destination .xlsx file")
	_ = c.MarkFlagRequired("out")
	return c
}

func (cl *commandline) payroll(cmd *cobra.Command) {
	group := &cobra.Command{
		Use:   "payroll",
		Short: "Read payroll records",
	}

	group.AddCommand(cl.leafCommand(&cobra.Command{
		Use:   "list",
		Short: "List payroll records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.store.Fetch(cmd.Context(), store.Payroll); err != nil {
				return errors.New(cl.store.Err(store.Payroll))
			}
			renderPayroll(cmd.OutOrStdout(), cl.store.Payroll())
			return nil
		},
		Args: cobra.NoArgs,
	}))

	group.AddCommand(cl.leafCommand(exportCommand("export", "Download payroll as a spreadsheet",
		func(ctx context.Context, w io.Writer) (int64, error) { return cl.client.ExportPayroll(ctx, w) })))

	cmd.AddCommand(group)
}

func (cl *commandline) attendance(cmd *cobra.Command) {
	group := &cobra.Command{
		Use:   "attendance",
		Short: "Read attendance and record it locally",
	}

	group.AddCommand(cl.leafCommand(&cobra.Command{
		Use:   "list",
		Short: "List attendance records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl.fetchOrCached(cmd, store.Attendance)
			renderAttendance(cmd.OutOrStdout(), cl.store.Attendance())
			return nil
		},
		Args: cobra.NoArgs,
	}))

	var (
		employeeID int64
		date       string
		status     string
	)
	add := cl.leafCommand(&cobra.Command{
		Use:   "add",
		Short: "Record attendance in the local mirror only",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			rec, err := cl.store.AddAttendance(cmd.Context(), domain.AttendanceRecord{
				EmployeeID: employeeID,
				Date:       day,
				Status:     domain.AttendanceStatus(status),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "attendance %s recorded locally\n", formatID(rec.ID))
			return nil
		},
		Args: cobra.NoArgs,
	})
	add.Flags().Int64Var(&employeeID, "employee", 0, "employee id")
	add.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	add.Flags().StringVar(&status, "status", string(domain.AttendancePresent), "Present, Absent, Late or Leave")
	_ = add.MarkFlagRequired("employee")
	group.AddCommand(add)

	group.AddCommand(cl.leafCommand(exportCommand("export", "Download attendance as a spreadsheet",
		func(ctx context.Context, w io.Writer) (int64, error) { return cl.client.ExportAttendance(ctx, w) })))

	cmd.AddCommand(group)
}
