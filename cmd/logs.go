package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"log-journal-system/internal/client"
	"log-journal-system/internal/config"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List, add and delete logs through a running server",
}

var listLogsCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every log, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		logs, err := c.List(cmd.Context())
		if err != nil {
			return err
		}
		return client.Render(cmd.OutOrStdout(), logs)
	},
}

var addLogCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a log, optionally with an image or video",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logType, _ := cmd.Flags().GetString("type")
		mediaPath, _ := cmd.Flags().GetString("media")
		if strings.TrimSpace(logType) == "" {
			return errors.New("log type is required (--type daily|weekly)")
		}

		req := client.CreateRequest{Type: logType}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			req.Title = &title
		}
		if cmd.Flags().Changed("content") {
			content, _ := cmd.Flags().GetString("content")
			req.Content = &content
		}
		if mediaPath != "" {
			f, err := os.Open(mediaPath)
			if err != nil {
				return fmt.Errorf("open media: %w", err)
			}
			defer f.Close()
			req.Media = f
			req.MediaName = mediaPath
		}

		c, err := newAPIClient()
		if err != nil {
			return err
		}
		entry, err := c.Create(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), ">> Log %d processed successfully\n", entry.ID)
		return nil
	},
}

var deleteLogCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a log by id",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid log id %q", args[0])
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd, ">> Are you sure you want to delete this entry?") {
			fmt.Fprintln(cmd.OutOrStdout(), ">> Aborted")
			return nil
		}

		c, err := newAPIClient()
		if err != nil {
			return err
		}
		changes, err := c.Delete(cmd.Context(), uint(id))
		if err != nil {
			return err
		}
		if changes == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), ">> Nothing to delete: log %d does not exist\n", id)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), ">> Log %d deleted\n", id)
		return nil
	},
}

func init() {
	addLogCmd.Flags().StringP("type", "t", "daily", "log type, e.g. daily or weekly")
	addLogCmd.Flags().String("title", "", "log title")
	addLogCmd.Flags().StringP("content", "c", "", "log content")
	addLogCmd.Flags().StringP("media", "m", "", "path to an image or video to attach")

	deleteLogCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	logsCmd.AddCommand(listLogsCmd, addLogCmd, deleteLogCmd)
}

func newAPIClient() (*client.Client, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	return client.New(cfg.APIURL), nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
