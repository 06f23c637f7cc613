package gitstatus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// OutputFormat enumerates the supported status renderings.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
	OutputFormatCSV   OutputFormat = "csv"
)

const (
	tableHeaderConstant           = "NAME\tBRANCH\tAHEAD\tBEHIND\tFILES\tINSERTIONS\tDELETIONS\tFLAGS"
	tableRowTemplateConstant      = "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n"
	absentCountLabelConstant      = "-"
	cleanFlagLabelConstant        = "clean"
	dirtyFlagLabelConstant        = "dirty"
	unmergedFlagLabelConstant     = "unmerged"
	unsyncedFlagLabelConstant     = "unsynced"
	tooManyChangesFlagLabel       = "too-many-changes"
	flagSeparatorConstant         = ","
	highlightTemplateConstant     = "\x1b[33m%s\x1b[0m"
	jsonIndentConstant            = "  "
	yamlIndentWidthConstant       = 2
	unsupportedFormatTemplate     = "unsupported output format %q"
	csvHeaderNameConstant         = "name"
	csvHeaderPathConstant         = "path"
	csvHeaderBranchConstant       = "branch"
	csvHeaderAheadConstant        = "ahead"
	csvHeaderBehindConstant       = "behind"
	csvHeaderFilesConstant        = "files"
	csvHeaderInsertionsConstant   = "insertions"
	csvHeaderDeletionsConstant    = "deletions"
	csvHeaderDirtyConstant        = "is_dirty"
	csvHeaderUnsavedConstant      = "has_unsaved_changes"
	csvHeaderTooManyConstant      = "too_many_changes"
	csvHeaderUnmergedConstant     = "has_unmerged_commits"
	csvHeaderUnsyncedConstant     = "has_unsynced_commits"
	tableMinimumWidthConstant     = 0
	tableTabWidthConstant         = 4
	tablePaddingConstant          = 2
	tablePaddingCharacterConstant = ' '
)

// SupportedOutputFormats lists the accepted --format values.
func SupportedOutputFormats() []string {
	return []string{string(OutputFormatTable), string(OutputFormatJSON), string(OutputFormatYAML), string(OutputFormatCSV)}
}

// StatusRenderer writes GitStatus records in one output format.
type StatusRenderer struct {
	Format        OutputFormat
	HighlightFlag bool
}

// Render writes statuses to writer.
func (renderer StatusRenderer) Render(writer io.Writer, statuses []GitStatus) error {
	switch renderer.Format {
	case OutputFormatTable:
		return renderer.renderTable(writer, statuses)
	case OutputFormatJSON:
		return renderJSON(writer, statuses)
	case OutputFormatYAML:
		return renderYAML(writer, statuses)
	case OutputFormatCSV:
		return renderCSV(writer, statuses)
	default:
		return fmt.Errorf(unsupportedFormatTemplate, renderer.Format)
	}
}

func (renderer StatusRenderer) renderTable(writer io.Writer, statuses []GitStatus) error {
	tableWriter := tabwriter.NewWriter(writer, tableMinimumWidthConstant, tableTabWidthConstant, tablePaddingConstant, tablePaddingCharacterConstant, 0)
	if _, writeError := fmt.Fprintln(tableWriter, tableHeaderConstant); writeError != nil {
		return writeError
	}
	for _, status := range statuses {
		flagsLabel := describeFlags(status)
		if renderer.HighlightFlag && flagsLabel != cleanFlagLabelConstant {
			flagsLabel = fmt.Sprintf(highlightTemplateConstant, flagsLabel)
		}
		if _, writeError := fmt.Fprintf(tableWriter, tableRowTemplateConstant,
			status.Name,
			status.Branch,
			formatOptionalCount(status.DiffCommitCount.Ahead, absentCountLabelConstant),
			formatOptionalCount(status.DiffCommitCount.Behind, absentCountLabelConstant),
			status.ModifiedCount.Files,
			status.ModifiedCount.Insertions,
			status.ModifiedCount.Deletions,
			flagsLabel,
		); writeError != nil {
			return writeError
		}
	}
	return tableWriter.Flush()
}

func renderJSON(writer io.Writer, statuses []GitStatus) error {
	if statuses == nil {
		statuses = []GitStatus{}
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(statuses)
}

func renderYAML(writer io.Writer, statuses []GitStatus) error {
	if statuses == nil {
		statuses = []GitStatus{}
	}
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentWidthConstant)
	if encodeError := encoder.Encode(statuses); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

func renderCSV(writer io.Writer, statuses []GitStatus) error {
	csvWriter := csv.NewWriter(writer)
	header := []string{
		csvHeaderNameConstant,
		csvHeaderPathConstant,
		csvHeaderBranchConstant,
		csvHeaderAheadConstant,
		csvHeaderBehindConstant,
		csvHeaderFilesConstant,
		csvHeaderInsertionsConstant,
		csvHeaderDeletionsConstant,
		csvHeaderDirtyConstant,
		csvHeaderUnsavedConstant,
		csvHeaderTooManyConstant,
		csvHeaderUnmergedConstant,
		csvHeaderUnsyncedConstant,
	}
	if writeError := csvWriter.Write(header); writeError != nil {
		return writeError
	}

	for _, status := range statuses {
		row := []string{
			status.Name,
			status.Path,
			status.Branch,
			formatOptionalCount(status.DiffCommitCount.Ahead, ""),
			formatOptionalCount(status.DiffCommitCount.Behind, ""),
			strconv.Itoa(status.ModifiedCount.Files),
			strconv.Itoa(status.ModifiedCount.Insertions),
			strconv.Itoa(status.ModifiedCount.Deletions),
			strconv.FormatBool(status.IsDirty),
			strconv.FormatBool(status.HasUnsavedChanges),
			strconv.FormatBool(status.TooManyChanges),
			strconv.FormatBool(status.HasUnmergedCommits),
			strconv.FormatBool(status.HasUnsyncedCommits),
		}
		if writeError := csvWriter.Write(row); writeError != nil {
			return writeError
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func describeFlags(status GitStatus) string {
	labels := make([]string, 0, 4)
	if status.IsDirty {
		labels = append(labels, dirtyFlagLabelConstant)
	}
	if status.HasUnmergedCommits {
		labels = append(labels, unmergedFlagLabelConstant)
	}
	if status.HasUnsyncedCommits {
		labels = append(labels, unsyncedFlagLabelConstant)
	}
	if status.TooManyChanges {
		labels = append(labels, tooManyChangesFlagLabel)
	}
	if len(labels) == 0 {
		return cleanFlagLabelConstant
	}
	return strings.Join(labels, flagSeparatorConstant)
}

func formatOptionalCount(count *int, absentLabel string) string {
	if count == nil {
		return absentLabel
	}
	return strconv.Itoa(*count)
}
