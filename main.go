package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/backend"
	"vincit.fi/image-picker/common"
	"vincit.fi/image-picker/common/logger"
)

var (
	configFlag         string
	logLevelFlag       string
	modeFlag           string
	hostFlag           string
	fileFlag           string
	watchDirFlag       string
	startDirFlag       string
	timeoutFlag        time.Duration
	journalFlag        string
	queueSizeFlag      int
	exifFlag           bool
	silentFailuresFlag bool
	limitFlag          int
	sessionFlag        string
)

var rootCmd = &cobra.Command{
	Use:   "image-picker",
	Short: "Pick an image and deliver it to the runtime event queue",
	Long: `image-picker presents an image selection surface, decodes the selected
image and posts the result as an integer tuple on the event queue.

Examples:
  image-picker pick --host zenity
  image-picker pick --host static --file ./photo.jpg --mode data
  image-picker pick --host watch --watch-dir ./drop --timeout 1m
  image-picker history --journal ~/.image-picker/journal.db`,
	SilenceUsage: true,
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Launch the picker and print the resulting event",
	RunE:  runPick,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the latest picker sessions from the journal",
	RunE:  runHistory,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "TOML or YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", common.DefaultLogLevel, "Log level: ERROR, WARN, INFO, DEBUG, TRACE")
	rootCmd.PersistentFlags().StringVar(&journalFlag, "journal", "", "SQLite file of the pick journal (empty = in-memory)")

	pickCmd.Flags().StringVarP(&modeFlag, "mode", "m", "handle", "Return mode: handle or data")
	pickCmd.Flags().StringVar(&hostFlag, "host", common.DefaultHost, "Picker host: dialog, zenity, watch or static")
	pickCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "File selected by the static host")
	pickCmd.Flags().StringVar(&watchDirFlag, "watch-dir", "", "Drop directory of the watch host")
	pickCmd.Flags().StringVar(&startDirFlag, "start-dir", "", "Directory where native dialogs open")
	pickCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Cancel the pick when nothing is selected in time (0 = wait)")
	pickCmd.Flags().IntVar(&queueSizeFlag, "queue-size", common.DefaultEventQueueSize, "Event queue capacity")
	pickCmd.Flags().BoolVar(&exifFlag, "exif-orientation", true, "Rotate decoded images by their EXIF orientation")
	pickCmd.Flags().BoolVar(&silentFailuresFlag, "silent-failures", false, "Log failures without posting a failed event")

	historyCmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Number of sessions to list (0 = all)")
	historyCmd.Flags().StringVar(&sessionFlag, "session", "", "Show only the given session id")

	rootCmd.AddCommand(pickCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadParams reads the config file and applies the flags the user set
// explicitly on top of it.
func loadParams(cmd *cobra.Command) (*common.Params, error) {
	params, err := common.LoadParams(configFlag)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		params.SetLogLevel(logLevelFlag)
	}
	if flags.Changed("journal") {
		params.SetJournal(journalFlag)
	}
	if flags.Changed("mode") {
		if err := params.SetMode(modeFlag); err != nil {
			return nil, err
		}
	}
	if flags.Changed("host") {
		params.SetHost(hostFlag)
	}
	if flags.Changed("file") {
		params.SetFile(fileFlag)
	}
	if flags.Changed("watch-dir") {
		params.SetWatchDir(watchDirFlag)
	}
	if flags.Changed("start-dir") {
		params.SetStartDir(startDirFlag)
	}
	if flags.Changed("timeout") {
		params.SetTimeout(timeoutFlag)
	}
	if flags.Changed("queue-size") {
		params.SetEventQueueSize(queueSizeFlag)
	}
	if flags.Changed("exif-orientation") {
		params.SetApplyExifOrientation(exifFlag)
	}
	if flags.Changed("silent-failures") {
		params.SetSilentFailures(silentFailuresFlag)
	}

	logger.Initialize(logger.StringToLogLevel(params.LogLevel()))
	return params, nil
}

func runPick(cmd *cobra.Command, args []string) error {
	params, err := loadParams(cmd)
	if err != nil {
		return err
	}

	b, err := backend.New(params)
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := b.Services.Picker.LaunchPicker(ctx); err != nil {
		return err
	}

	tuple, err := waitForEvent(ctx, b, params)
	if err != nil {
		return err
	}
	event, err := apitype.EventFromTuple(tuple)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatTuple(tuple))
	fmt.Fprintln(cmd.ErrOrStderr(), describe(b, event))

	if event.Kind() == apitype.PickerFailed {
		return fmt.Errorf("pick failed: %s", event.Failure())
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	params, err := loadParams(cmd)
	if err != nil {
		return err
	}

	stores, err := backend.InitializeStores(params.Journal())
	if err != nil {
		return err
	}
	defer stores.Close()

	var entries []*apitype.JournalEntry
	if sessionFlag != "" {
		entry, err := stores.JournalStore.FindBySession(sessionFlag)
		if err != nil {
			return fmt.Errorf("session %s: %w", sessionFlag, err)
		}
		entries = append(entries, entry)
	} else if entries, err = stores.JournalStore.Latest(limitFlag); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSESSION\tMODE\tSTATUS\tHANDLE\tENCODING\tFAILURE\tBYTES\tREFERENCE")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			entry.Timestamp.Format(time.RFC3339), entry.SessionId, entry.Mode, entry.Status,
			entry.Handle, entry.Encoding, entry.Failure, entry.ByteSize, entry.Reference)
	}
	return w.Flush()
}

// waitForEvent blocks until the next tuple is queued. Silent failures
// post nothing, so with a configured timeout the wait gives up shortly
// after the host would have.
func waitForEvent(ctx context.Context, b *backend.Backend, params *common.Params) ([]int32, error) {
	if params.SilentFailures() && params.Timeout() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout()+5*time.Second)
		defer cancel()
	}
	tuple, err := b.Brokers.Queue.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("no picker event: %w", err)
	}
	return tuple, nil
}

func formatTuple(tuple []int32) string {
	fields := make([]string, len(tuple))
	for i, value := range tuple {
		fields[i] = fmt.Sprint(value)
	}
	return strings.Join(fields, " ")
}

func describe(b *backend.Backend, event *apitype.PickerEvent) string {
	if event.Kind() != apitype.PickerReady {
		return event.String()
	}
	table := b.Services.ResourceTable
	if entry, found := table.Image(event.Handle()); found {
		return fmt.Sprintf("%s image %s", event, apitype.SizeFromRectangle(entry.Image().Bounds()))
	}
	if data, found := table.Data(event.Handle()); found {
		return fmt.Sprintf("%s data %d bytes", event, len(data))
	}
	return event.String()
}
