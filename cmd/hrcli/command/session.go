package command

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/locvowork/hr_records/internal/mirror"
)

func (cl *commandline) login(cmd *cobra.Command) {
	var password string
	ccmd := cl.leafCommand(&cobra.Command{
		Use:   "login email",
		Short: "Login and keep the session marker in the mirror (password is read from stdin when --password is empty)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if err := cl.store.Login(cmd.Context(), args[0], password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", cl.store.User().Email)
			return nil
		},
		Args: cobra.ExactArgs(1),
	})
	ccmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.AddCommand(ccmd)
}

func (cl *commandline) logout(cmd *cobra.Command) {
	ccmd := cl.leafCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the session marker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl.store.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
		Args: cobra.NoArgs,
	})
	cmd.AddCommand(ccmd)
}

func (cl *commandline) status(cmd *cobra.Command) {
	ccmd := cl.leafCommand(&cobra.Command{
		Use:   "status",
		Short: "Show API health, session and mirror state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			api := "up"
			if err := cl.client.Health(ctx); err != nil {
				api = "down (" + err.Error() + ")"
			}
			fmt.Fprintf(out, "api:           %s %s\n", cl.v.GetString("api-url"), api)
			fmt.Fprintf(out, "authenticated: %t\n", cl.store.Authenticated())
			fmt.Fprintf(out, "mirror:        %s\n", cl.v.GetString("mirror-backend"))

			t := newTable(out, "Key", "Stored", "Updated")
			if cl.datastore != nil {
				entries, err := cl.datastore.ListEntries(ctx)
				if err != nil {
					return err
				}
				keys := make([]string, 0, len(entries))
				for k := range entries {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					t.Append([]string{k, fmt.Sprintf("%d bytes", len(entries[k].Value)), entries[k].UpdatedAt.Format("2006-01-02 15:04:05")})
				}
			} else {
				for _, k := range []string{mirror.KeyLeaveRequests, mirror.KeyAttendance, mirror.KeyReviews, mirror.KeyAuth, mirror.KeyToken} {
					v, ok, err := cl.mirror.Get(ctx, k)
					if err != nil {
						return err
					}
					stored := "-"
					if ok {
						stored = fmt.Sprintf("%d bytes", len(v))
					}
					t.Append([]string{k, stored, ""})
				}
			}
			t.Render()
			return nil
		},
		Args: cobra.NoArgs,
	})
	cmd.AddCommand(ccmd)
}
