package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/miralabs/mira/cli"
	"github.com/miralabs/mira/config"
	"github.com/miralabs/mira/logging"
	"github.com/miralabs/mira/pkg/paths"
	"github.com/miralabs/mira/tui/theme"
)

// TailedLine represents a line of log output from a specific component.
type TailedLine struct {
	Component string
	Line      string
}

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show and follow the Mira log files",
		Long: `Streams the per-component log files from the Mira log directory.

Examples:
  # Follow all logs
  mira logs -f

  # Get the last 100 log lines in JSON format
  mira logs --tail 100 --json

  # Follow logs from specific components
  mira logs -f --components mira-wizard,mira-chat

  # Browse logs interactively
  mira logs --tui
`,
		RunE: runLogsE,
	}

	cmd.Flags().Bool("json", false, "Output logs in JSON Lines format")
	cmd.Flags().BoolP("tui", "i", false, "Launch the interactive log viewer")
	cmd.Flags().StringSlice("components", []string{}, "Filter by component names (comma-separated)")
	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end of the logs (default: all)")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	opts := cli.GetOptions(cmd)

	// Load logging config for component filtering
	var logCfg logging.Config
	if cfg, err := config.LoadDefault(); err == nil {
		_ = cfg.UnmarshalExtension("logging", &logCfg)
	}

	componentFilter, _ := cmd.Flags().GetStringSlice("components")

	files, err := componentLogFiles(componentFilter)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Info("No log files found.")
		return nil
	}

	tuiMode, _ := cmd.Flags().GetBool("tui")
	follow, _ := cmd.Flags().GetBool("follow")
	if tuiMode {
		return runLogsTUI(files)
	}

	tailLines, _ := cmd.Flags().GetInt("tail")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	lineChan := make(chan TailedLine, 100)
	var wg sync.WaitGroup

	for component, path := range files {
		logger.WithFields(logrus.Fields{
			"component": component,
			"log_file":  path,
		}).Debug("Tailing log file")

		wg.Add(1)
		go tailFile(component, path, lineChan, &wg, follow, tailLines)
	}

	// Close channel when all tailing goroutines are done
	go func() {
		wg.Wait()
		close(lineChan)
	}()

	for tailedLine := range lineChan {
		// Filter based on component visibility config
		if len(logCfg.Show) > 0 || len(logCfg.Hide) > 0 {
			if !logging.IsComponentVisible(tailedLine.Component, &logCfg) {
				continue
			}
		}

		if jsonOutput || opts.JSONOutput {
			printLogJSON(tailedLine)
		} else {
			printLogText(tailedLine)
		}
	}

	return nil
}

// componentLogFiles maps each component to its most recent log file under
// the log directory. File names follow "<component>-YYYY-MM-DD.log".
func componentLogFiles(filter []string) (map[string]string, error) {
	logDir := paths.LogDir()
	if logDir == "" {
		return nil, fmt.Errorf("no log directory available")
	}

	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read log directory %s: %w", logDir, err)
	}

	filterSet := make(map[string]bool, len(filter))
	for _, c := range filter {
		filterSet[c] = true
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	latest := make(map[string]candidate)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		component := componentFromFilename(entry.Name())
		if component == "" {
			continue
		}
		if len(filterSet) > 0 && !filterSet[component] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if cur, ok := latest[component]; !ok || info.ModTime().After(cur.mod) {
			latest[component] = candidate{
				path: filepath.Join(logDir, entry.Name()),
				mod:  info.ModTime(),
			}
		}
	}

	files := make(map[string]string, len(latest))
	for component, c := range latest {
		files[component] = c.path
	}
	return files, nil
}

// componentFromFilename strips the date suffix from a log file name,
// e.g. "mira-wizard-2026-09-01.log" yields "mira-wizard".
func componentFromFilename(name string) string {
	base := strings.TrimSuffix(name, ".log")
	if len(base) > 11 {
		datePart := base[len(base)-10:]
		if _, err := time.Parse("2006-01-02", datePart); err == nil {
			return base[:len(base)-11]
		}
	}
	return base
}

// tailFile reads a file and sends new lines to a channel.
func tailFile(component, path string, lineChan chan<- TailedLine, wg *sync.WaitGroup, follow bool, tailLines int) {
	defer wg.Done()

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	reader := bufio.NewReader(f)

	if tailLines >= 0 {
		// This is an inefficient way to tail, but simple for this implementation.
		// A more robust solution would read from the end of the file.
		allLines, _ := io.ReadAll(reader)
		lines := strings.Split(string(allLines), "\n")
		start := len(lines) - tailLines - 1
		if tailLines == 0 { // tail 0 means from start
			start = 0
		}
		if start < 0 {
			start = 0
		}
		for _, line := range lines[start:] {
			if line != "" {
				lineChan <- TailedLine{Component: component, Line: line}
			}
		}
		// If not following, we are done.
		if !follow {
			return
		}
		// To follow, we need to seek to the end. Re-open is easiest.
		f.Close()
		f, _ = os.Open(path)
		f.Seek(0, io.SeekEnd)
		reader = bufio.NewReader(f)
	}

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lineChan <- TailedLine{Component: component, Line: strings.TrimSpace(line)}
		}

		if err == io.EOF {
			if !follow {
				break
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if err != nil {
			break
		}
	}
}

// printLogJSON prints a log line in JSON format, enriched with the component name.
func printLogJSON(tailedLine TailedLine) {
	var logMap map[string]interface{}
	err := json.Unmarshal([]byte(tailedLine.Line), &logMap)
	if err != nil {
		// Fallback for non-JSON lines
		fallback := map[string]interface{}{
			"component": tailedLine.Component,
			"raw_line":  tailedLine.Line,
			"error":     "failed to parse original log line as JSON",
		}
		jsonData, _ := json.Marshal(fallback)
		fmt.Println(string(jsonData))
		return
	}

	if _, ok := logMap["component"]; !ok {
		logMap["component"] = tailedLine.Component
	}
	jsonData, _ := json.Marshal(logMap)
	fmt.Println(string(jsonData))
}

// printLogText pretty-prints a log line for human consumption.
func printLogText(tailedLine TailedLine) {
	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(tailedLine.Line), &logMap); err != nil {
		// Print as a raw line if not JSON
		fmt.Printf("[%s] %s\n",
			theme.DefaultTheme.Accent.Render(tailedLine.Component),
			tailedLine.Line,
		)
		return
	}

	// Extract common fields
	ts, _ := logMap["time"].(string)
	level, _ := logMap["level"].(string)
	msg, _ := logMap["msg"].(string)

	// Parse time for formatting
	parsedTime, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		parsedTime, _ = time.Parse(time.RFC3339, ts)
	}
	timeStr := parsedTime.Format("15:04:05")

	// Style level
	var levelStyle lipgloss.Style
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		levelStyle = theme.DefaultTheme.Error
	case "warning":
		levelStyle = theme.DefaultTheme.Warning
	case "info":
		levelStyle = theme.DefaultTheme.Info
	default:
		levelStyle = theme.DefaultTheme.Muted
	}
	levelStr := levelStyle.Render(strings.ToUpper(level))

	// Get other fields
	otherFields := []string{}
	sortedKeys := []string{}
	for k := range logMap {
		if k != "time" && k != "level" && k != "msg" && k != "component" {
			sortedKeys = append(sortedKeys, k)
		}
	}
	sort.Strings(sortedKeys)

	for _, k := range sortedKeys {
		otherFields = append(otherFields, fmt.Sprintf("%s=%v", theme.DefaultTheme.Muted.Render(k), logMap[k]))
	}

	fieldsStr := strings.Join(otherFields, " ")

	fmt.Printf("%s [%s] %s %s %s\n",
		timeStr,
		theme.DefaultTheme.Accent.Render(tailedLine.Component),
		levelStr,
		msg,
		fieldsStr,
	)
}
