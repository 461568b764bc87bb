package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"onepercent/internal/client/api"
	"onepercent/internal/client/form"
	"onepercent/internal/client/otp"
)

var loginSchema = form.Schema{
	{Name: "email", Label: "Email address", Required: true, Email: true},
	{Name: "password", Label: "Password", Required: true},
}

func newAuthCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "auth", Short: "Authentication commands"}
	cmd.AddCommand(newLoginCmd(e))
	cmd.AddCommand(newLogoutCmd(e))
	cmd.AddCommand(newForgotPasswordCmd(e))
	cmd.AddCommand(newResetPasswordCmd(e))
	cmd.AddCommand(newChangePasswordCmd(e))
	return cmd
}

func newLoginCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Login and store token",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			fmt.Fprint(cmd.OutOrStdout(), "Email: ")
			email, _ := reader.ReadString('\n')
			email = strings.TrimSpace(email)
			password, err := promptPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			if errs := loginSchema.Validate(map[string]string{"email": email, "password": string(password)}); errs.Any() {
				return errs
			}
			token, err := e.client().Login(cmd.Context(), email, string(password))
			if err != nil {
				return err
			}
			if err := e.tokens.Save(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
			return nil
		},
	}
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.tokens.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newForgotPasswordCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]
			schema := form.Schema{{Name: "email", Label: "Email address", Required: true, Email: true}}
			if errs := schema.Validate(map[string]string{"email": email}); errs.Any() {
				return errs
			}
			if err := e.client().ForgetPassword(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reset code sent, check your email")
			return nil
		},
	}
}

// newResetPasswordCmd walks the otp -> reset flow: six code digits first
// (with a 30 second resend cooldown), then the new password twice.
func newResetPasswordCmd(e *env) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Verify the reset code and set a new password",
		RunE: func(cmd *cobra.Command, args []string) error {
			flow := otp.NewFlow(email)
			cooldown := otp.NewCooldown(nil)
			cooldown.Start()
			reader := bufio.NewReader(cmd.InOrStdin())

			for flow.Step() == otp.StepOTP {
				fmt.Fprint(cmd.OutOrStdout(), "Code (6 digits, 'r' to resend): ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				line = strings.TrimSpace(line)
				if line == "r" {
					if !cooldown.Ready() {
						fmt.Fprintf(cmd.OutOrStdout(), "Wait %ds to resend\n", cooldown.Remaining())
						continue
					}
					if err := e.client().ForgetPassword(cmd.Context(), flow.Email()); err != nil {
						return err
					}
					cooldown.Start()
					fmt.Fprintln(cmd.OutOrStdout(), "Code resent")
					continue
				}
				var entry otp.Entry
				entry.Paste(line)
				if !entry.Complete() {
					fmt.Fprintln(cmd.OutOrStdout(), otp.ErrBadCode.Error())
					continue
				}
				if err := flow.SubmitCode(entry.Value()); err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), err.Error())
				}
			}

			newPassword, err := promptPassword(cmd, "New password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword(cmd, "Confirm password: ")
			if err != nil {
				return err
			}
			if err := flow.CheckPasswords(string(newPassword), string(confirm)); err != nil {
				return err
			}
			req := api.ResetPasswordRequest{
				OTP:             flow.Code(),
				NewPassword:     string(newPassword),
				ConfirmPassword: string(confirm),
			}
			if err := e.client().ResetPassword(cmd.Context(), req); err != nil {
				return err
			}
			_ = flow.Finish()
			fmt.Fprintln(cmd.OutOrStdout(), "Password reset successful! Redirecting to login...")
			time.Sleep(1300 * time.Millisecond)
			fmt.Fprintln(cmd.OutOrStdout(), "Run `onepercent auth login` to sign in")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email (the one used for forgot-password)")
	return cmd
}

func newChangePasswordCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "change-password",
		Short: "Change the current password",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := promptPassword(cmd, "Current password: ")
			if err != nil {
				return err
			}
			newPassword, err := promptPassword(cmd, "New password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword(cmd, "Confirm password: ")
			if err != nil {
				return err
			}
			if string(newPassword) != string(confirm) {
				return fmt.Errorf("the two passwords do not match")
			}
			req := api.ChangePasswordRequest{
				CurrentPassword: string(current),
				NewPassword:     string(newPassword),
				ConfirmPassword: string(confirm),
			}
			if err := e.client().ChangePassword(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		},
	}
}

func promptPassword(cmd *cobra.Command, prompt string) ([]byte, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pass, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		return pass, err
	}
	// non-terminal input (tests, pipes) falls back to a plain line read
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(line)), nil
}
