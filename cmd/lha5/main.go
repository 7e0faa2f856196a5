// Command lha5 extracts the single LZHUFF5-compressed member of an LHA
// level-1 archive.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/cosnicolaou/lha5"
	"github.com/cosnicolaou/lha5/internal/lhaheader"
	"github.com/cosnicolaou/lha5/internal/lzhuff5"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose, noProgress bool

	root := &cobra.Command{
		Use:           "lha5 <archive>",
		Short:         "extract the LZHUFF5 member of an LHA level-1 archive",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errArchiveNotSpecified{}
			}
			return runExtract(cmd.Context(), args[0], verbose, !noProgress)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace block boundaries during decode")
	root.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	extract := &cobra.Command{
		Use:   "extract <archive>",
		Short: "extract the LZHUFF5 member of an archive (default action)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errArchiveNotSpecified{}
			}
			return runExtract(cmd.Context(), args[0], verbose, !noProgress)
		},
	}
	extract.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	inspect := &cobra.Command{
		Use:   "inspect <archive>",
		Short: "print the parsed header without extracting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0])
		},
	}

	root.AddCommand(extract, inspect)
	return root
}

// errArchiveNotSpecified is returned when no archive path was given on
// the command line.
type errArchiveNotSpecified struct{}

func (errArchiveNotSpecified) Error() string { return "archive file not specified" }

func runExtract(ctx context.Context, path string, verbose, showProgress bool) error {
	src, size, err := lha5.OpenArchive(ctx, path)
	if err != nil {
		return errOpenFailed{path: path, reason: err}
	}
	defer src.Close()

	var progressCh chan lha5.Progress
	var bar *progressbar.ProgressBar
	isTTY := terminal.IsTerminal(int(os.Stdout.Fd()))
	if showProgress && isTTY && size > 0 {
		progressCh = make(chan lha5.Progress, 1)
		bar = progressbar.NewOptions64(size, progressbar.OptionSetWriter(os.Stderr))
		defer func() { fmt.Fprintln(os.Stderr) }()
		go func() {
			for p := range progressCh {
				bar.Set64(p.Written)
			}
		}()
		defer close(progressCh)
	}

	opts := []lha5.Option{lha5.Verbose(verbose)}
	if progressCh != nil {
		opts = append(opts, lha5.SendProgress(progressCh))
	}

	// The output file is named after the member stored in the header,
	// so the header is parsed here rather than inside lha5.Extract.
	hdr, err := lhaheader.Parse(src)
	if err != nil {
		return err
	}

	dst, err := lha5.CreateOutput(ctx, filepath.Base(hdr.Name))
	if err != nil {
		return errOpenFailed{path: hdr.Name, reason: err}
	}
	defer dst.Close()

	_, err = lha5.ExtractBody(hdr, src, dst, opts...)
	var crcErr *lha5.CRCMismatchError
	if errors.As(err, &crcErr) {
		fmt.Fprintf(os.Stderr, "Error: CRC error: %q\n", crcErr.Name)
		return nil
	}
	return err
}

func runInspect(ctx context.Context, path string) error {
	src, _, err := lha5.OpenArchive(ctx, path)
	if err != nil {
		return errOpenFailed{path: path, reason: err}
	}
	defer src.Close()

	hdr, err := lhaheader.Parse(src)
	if err != nil {
		return err
	}
	fmt.Printf("name:          %s\n", hdr.Name)
	fmt.Printf("method:        %s\n", hdr.Method)
	fmt.Printf("packed size:   %d\n", hdr.PackedSize)
	fmt.Printf("original size: %d\n", hdr.OriginalSize)
	fmt.Printf("crc16:         %04x\n", hdr.CRC16)
	return nil
}

type errOpenFailed struct {
	path   string
	reason error
}

func (e errOpenFailed) Error() string {
	return fmt.Sprintf("failed to open %q: %v", e.path, e.reason)
}
func (e errOpenFailed) Unwrap() error { return e.reason }

// renderError maps an internal error onto its stable stderr string.
func renderError(err error) string {
	var notSpecified errArchiveNotSpecified
	if errors.As(err, &notSpecified) {
		return "Error: archive file not specified"
	}
	var openFailed errOpenFailed
	if errors.As(err, &openFailed) {
		return fmt.Sprintf("Error: Failed to open %q: %v", openFailed.path, openFailed.reason)
	}
	var shortHeader lhaheader.ErrShortHeader
	if errors.As(err, &shortHeader) {
		return fmt.Sprintf("Error: Unable to read lha header: %v", shortHeader.Reason)
	}
	if errors.Is(err, lhaheader.ErrBadAttribute) {
		return "Error: Invalid lha header attribute byte."
	}
	var level lhaheader.ErrUnsupportedLevel
	if errors.As(err, &level) {
		return fmt.Sprintf("Error: Header level %d is not supported", level.Level)
	}
	if errors.Is(err, lhaheader.ErrBadMethod) {
		return "Error: Compression method is not LZHUFF5."
	}
	var shortExt lhaheader.ErrShortExtendedHeader
	if errors.As(err, &shortExt) {
		return fmt.Sprintf("Error: Unable to read full lha header: %v", shortExt.Reason)
	}
	if errors.Is(err, lhaheader.ErrBadChecksum) {
		return "Error: Invalid lha header checksum."
	}
	if errors.Is(err, lhaheader.ErrBadExtendedHeader) {
		return "Error: Invalid extended lha header."
	}
	var structural lzhuff5.StructuralError
	if errors.As(err, &structural) {
		return "Error: " + structural.Error()
	}
	return "Error: " + err.Error()
}
