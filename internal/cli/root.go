package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hrmsconsole/internal/app/console"
	"hrmsconsole/internal/domain/attendance"
	"hrmsconsole/internal/platform/config"
	"hrmsconsole/internal/platform/logging"
)

// runtime carries what every subcommand needs once flags are parsed.
type runtime struct {
	apiURL   string
	timeout  time.Duration
	verbose  bool
	services *console.Services
	now      func() time.Time
}

// NewRootCmd builds the hrmsctl command tree.
func NewRootCmd() *cobra.Command {
	rt := &runtime{now: time.Now}
	root := &cobra.Command{
		Use:   "hrmsctl",
		Short: "hrmsctl - operator console for the HRMS backend",
		Long: `hrmsctl manages employees, daily attendance and payroll against the HRMS REST API.

The backend is read from API_BASE_URL (or a .env file) unless --api-url is given.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.setup,
	}

	root.PersistentFlags().StringVar(&rt.apiURL, "api-url", "", "REST backend base URL")
	root.PersistentFlags().DurationVar(&rt.timeout, "timeout", 0, "Request timeout (default API_TIMEOUT)")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Log every backend request")

	root.AddCommand(newDashboardCmd(rt))
	root.AddCommand(newEmployeesCmd(rt))
	root.AddCommand(newAttendanceCmd(rt))
	root.AddCommand(newPayrollCmd(rt))
	return root
}

// Execute runs hrmsctl until it finishes or the process is interrupted.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.Version = version
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (rt *runtime) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if rt.apiURL != "" {
		cfg.APIBaseURL = rt.apiURL
	}
	if rt.timeout > 0 {
		cfg.APITimeout = rt.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level := "warn"
	if rt.verbose {
		level = "debug"
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level, "text")
	rt.services = console.NewServices(cfg, logger, nil)
	return nil
}

func (rt *runtime) today() string {
	return rt.now().Format(attendance.DateLayout)
}

// confirm asks on the command's input unless --yes was given.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return false, nil
	}
}

func addYesFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
