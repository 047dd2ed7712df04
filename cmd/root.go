// Package cmd implements the command-line interface for vidmark.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vidmark-cli/vidmark/color"
	"github.com/vidmark-cli/vidmark/console"
	"github.com/vidmark-cli/vidmark/constant"
	"github.com/vidmark-cli/vidmark/icon"
	"github.com/vidmark-cli/vidmark/key"
	"github.com/vidmark-cli/vidmark/log"
	"github.com/vidmark-cli/vidmark/session"
	"github.com/vidmark-cli/vidmark/style"
	"github.com/vidmark-cli/vidmark/util"
	"github.com/vidmark-cli/vidmark/version"
	"github.com/vidmark-cli/vidmark/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
	rootCmd.Flags().BoolP("continue", "c", false, "Resume from the watch history instead of prompting for a URL")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record played videos in the watch history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnPlay, rootCmd.PersistentFlags().Lookup("write-history")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Clean up leftover temporary artifacts from previous runs.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the vidmark application.
var rootCmd = &cobra.Command{
	Use:   constant.Vidmark + " [url]",
	Short: "A single-video playback and chapter annotation console",
	Long: style.Fg(color.Purple)(constant.Vidmark) + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Watch a video, mark its chapters, come back to them later"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		checkPlayer()

		options := console.Options{
			Resume: lo.Must(cmd.Flags().GetBool("continue")),
		}

		if len(args) == 1 {
			videoID, ok := session.ParseVideoRef(args[0])
			if !ok {
				handleErr(fmt.Errorf("no video identifier found in %q", args[0]))
			}
			options.VideoID = videoID
		}

		handleErr(console.Run(&options))
	},
}

// checkPlayer verifies the configured player binary is reachable before the
// console tries to spawn it.
func checkPlayer() {
	binary := viper.GetString(key.PlayerDefault)
	if _, err := exec.LookPath(binary); err != nil {
		handleErr(fmt.Errorf("player %q not found in PATH", binary))
	}
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
