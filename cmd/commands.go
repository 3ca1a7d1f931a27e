package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"eyeguard/internal/core/model"
	"eyeguard/internal/platform"
)

var jsonOutput bool

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List the displays overlays will cover",
	Long: `Prints every connected display with its origin and size in device pixels,
its scale factor and the logical size an overlay is given on it.`,
	RunE: runMonitors,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints version, commit, and build time. Use --json for machine-readable output.`,
	Run:   runVersion,
}

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage starting eyeguard at login",
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start eyeguard automatically at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := platform.NewService(configName)
		if err != nil {
			return err
		}
		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("resolve executable: %w", err)
		}
		if err := service.EnableAutostart(execPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "autostart enabled")
		return nil
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting eyeguard at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := platform.NewService(configName)
		if err != nil {
			return err
		}
		if err := service.DisableAutostart(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "autostart disabled")
		return nil
	},
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether autostart is enabled",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := platform.NewService(configName)
		if err != nil {
			return err
		}
		enabled, err := service.AutostartEnabled()
		if err != nil {
			return err
		}
		if enabled {
			fmt.Fprintln(cmd.OutOrStdout(), "autostart: enabled")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "autostart: disabled")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")
	monitorsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output monitors as JSON")

	autostartCmd.AddCommand(autostartEnableCmd)
	autostartCmd.AddCommand(autostartDisableCmd)
	autostartCmd.AddCommand(autostartStatusCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Fprintf(cmd.OutOrStdout(), `{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "eyeguard %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}

func runMonitors(cmd *cobra.Command, args []string) error {
	monitors, err := platform.ProbeMonitors()
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(monitors)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderMonitors(monitors))
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// renderMonitors lays out one row per monitor with aligned columns.
func renderMonitors(monitors []model.Monitor) string {
	rows := [][]string{{"#", "NAME", "ORIGIN", "SIZE (px)", "SCALE", "OVERLAY (logical)"}}
	for index, monitor := range monitors {
		width, height := monitor.LogicalSize()
		rows = append(rows, []string{
			fmt.Sprintf("%d", index+1),
			monitor.Name,
			fmt.Sprintf("%d,%d", monitor.X, monitor.Y),
			fmt.Sprintf("%dx%d", monitor.Width, monitor.Height),
			fmt.Sprintf("%.2f", monitor.Scale()),
			fmt.Sprintf("%.0fx%.0f", width, height),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for column, cell := range row {
			widths[column] = max(widths[column], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	for index, row := range rows {
		cells := make([]string, 0, len(row))
		for column, cell := range row {
			style := cellStyle.Width(widths[column] + 2)
			if index == 0 {
				style = style.Inherit(headerStyle)
			}
			cells = append(cells, style.Render(cell))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	box, _ := model.BoundingBox(monitors)
	lines = append(lines, dimStyle.Render(fmt.Sprintf("virtual desktop: %d,%d %dx%d",
		box.X, box.Y, box.Width, box.Height)))
	return strings.Join(lines, "\n")
}
