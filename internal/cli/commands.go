package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	datasetapp "github.com/osvaldoandrade/datasetdb/internal/app/dataset"
	"github.com/osvaldoandrade/datasetdb/internal/domain"
	"github.com/osvaldoandrade/datasetdb/internal/infra/canonicaljson"
	"github.com/osvaldoandrade/datasetdb/internal/infra/filesystem"
	"github.com/osvaldoandrade/datasetdb/internal/infra/ident"
	"github.com/osvaldoandrade/datasetdb/internal/infra/jsonpatch"
	"github.com/osvaldoandrade/datasetdb/internal/infra/schema"
	"github.com/osvaldoandrade/datasetdb/internal/infra/sqlitestore"
	"github.com/osvaldoandrade/datasetdb/internal/platform"
)

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

func newCreateCmd(opts *RootOptions) *cobra.Command {
	var document string
	var file string
	var author string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dataset from a JSON document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readJSONInput(cmd, "document", document, file)
			if err != nil {
				return err
			}
			store, service, err := openService(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			id, err := service.Create(cmd.Context(), data, author)
			if err != nil {
				return err
			}
			return writeCreateResult(cmd, id, opts.JSONOutput)
		},
	}
	cmd.Flags().StringVar(&document, "document", "", "Inline JSON dataset document")
	cmd.Flags().StringVar(&file, "file", "", "Path to JSON dataset document")
	cmd.Flags().StringVar(&author, "author", "", "Id of the owning user")
	if err := cmd.MarkFlagRequired("author"); err != nil {
		return cmd
	}
	return cmd
}

func newUpdateCmd(opts *RootOptions) *cobra.Command {
	var document string
	var file string
	var author string
	cmd := &cobra.Command{
		Use:   "update <dataset_id>",
		Short: "Replace a dataset's fields and classes from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readJSONInput(cmd, "document", document, file)
			if err != nil {
				return err
			}
			store, service, err := openService(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			if err := service.Update(cmd.Context(), args[0], data, author); err != nil {
				return err
			}
			return writeStatusLine(cmd, "updated", args[0], opts.JSONOutput)
		},
	}
	cmd.Flags().StringVar(&document, "document", "", "Inline JSON dataset document")
	cmd.Flags().StringVar(&file, "file", "", "Path to JSON dataset document")
	cmd.Flags().StringVar(&author, "author", "", "Id of the owning user")
	if err := cmd.MarkFlagRequired("author"); err != nil {
		return cmd
	}
	return cmd
}

func newPatchCmd(opts *RootOptions) *cobra.Command {
	var ops string
	var file string
	cmd := &cobra.Command{
		Use:   "patch <dataset_id>",
		Short: "Apply a JSON Patch to a dataset document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readJSONInput(cmd, "ops", ops, file)
			if err != nil {
				return err
			}
			store, service, err := openService(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			if err := service.Patch(cmd.Context(), args[0], data); err != nil {
				return err
			}
			return writeStatusLine(cmd, "patched", args[0], opts.JSONOutput)
		},
	}
	cmd.Flags().StringVar(&ops, "ops", "", "Inline JSON Patch operations")
	cmd.Flags().StringVar(&file, "file", "", "Path to JSON Patch operations")
	return cmd
}

func newGetCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <dataset_id>",
		Short: "Show a dataset with its classes and recordings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, service, err := openService(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ds, err := service.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeDataset(cmd, ds, opts.JSONOutput)
		},
	}
}

func newListCmd(opts *RootOptions) *cobra.Command {
	var publicOnly bool
	cmd := &cobra.Command{
		Use:   "list <author_id>",
		Short: "List datasets owned by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, service, err := openService(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			summaries, err := service.ListByAuthor(cmd.Context(), args[0], publicOnly)
			if err != nil {
				return err
			}
			return writeSummaries(cmd, summaries, opts.JSONOutput)
		},
	}
	cmd.Flags().BoolVar(&publicOnly, "public", false, "Only list public datasets")
	return cmd
}

func newDeleteCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <dataset_id>",
		Short: "Delete a dataset and its classes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, service, err := openService(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			if err := service.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeStatusLine(cmd, "deleted", args[0], opts.JSONOutput)
		},
	}
}

func newCheckCmd(opts *RootOptions) *cobra.Command {
	var document string
	var file string
	var complete bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a dataset document without storing it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readJSONInput(cmd, "document", document, file)
			if err != nil {
				return err
			}
			store, service, err := openService(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			if err := service.Check(cmd.Context(), data, complete); err != nil {
				return err
			}
			variant := "base"
			if complete {
				variant = "complete"
			}
			return writeCheckResult(cmd, variant, opts.JSONOutput)
		},
	}
	cmd.Flags().StringVar(&document, "document", "", "Inline JSON dataset document")
	cmd.Flags().StringVar(&file, "file", "", "Path to JSON dataset document")
	cmd.Flags().BoolVar(&complete, "complete", false, "Validate against the complete schema variant")
	return cmd
}

func openService(opts *RootOptions) (*sqlitestore.Store, *datasetapp.Service, error) {
	store, err := sqlitestore.OpenWithOptions(opts.DBPath, sqlitestore.OpenOptions{Fast: opts.FastDB})
	if err != nil {
		return nil, nil, err
	}
	service := datasetapp.NewService(
		store,
		schema.JSONSchemaValidator{},
		canonicaljson.Canonicalizer{},
		jsonpatch.Patcher{},
		platform.RealClock{},
		ident.NewUUIDGenerator(),
		ident.NewULIDGenerator(),
	)
	return store, service, nil
}

type classOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Recordings  []string `json:"recordings"`
}

type datasetOutput struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Public      bool          `json:"public"`
	Author      string        `json:"author"`
	Created     string        `json:"created"`
	Classes     []classOutput `json:"classes"`
}

type summaryOutput struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Author      string  `json:"author"`
	Created     string  `json:"created"`
}

type statusOutput struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

func writeCreateResult(cmd *cobra.Command, id string, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(statusOutput{Status: "created", ID: id})
	}
	ui := newRenderer(out, asJSON)
	return writeKV(out, ui, "Dataset", id)
}

func writeStatusLine(cmd *cobra.Command, status, id string, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(statusOutput{Status: status, ID: id})
	}
	ui := newRenderer(out, asJSON)
	_, err := fmt.Fprintf(out, "%s %s\n", ui.ok(strings.ToUpper(status[:1])+status[1:]), id)
	return err
}

func writeCheckResult(cmd *cobra.Command, variant string, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		payload := struct {
			Valid   bool   `json:"valid"`
			Variant string `json:"variant"`
		}{Valid: true, Variant: variant}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}
	ui := newRenderer(out, asJSON)
	_, err := fmt.Fprintf(out, "%s (%s schema)\n", ui.ok("Valid"), variant)
	return err
}

func writeDataset(cmd *cobra.Command, ds domain.Dataset, asJSON bool) error {
	out := cmd.OutOrStdout()
	output := datasetOutput{
		ID:          ds.ID,
		Name:        ds.Name,
		Description: ds.Description,
		Public:      ds.Public,
		Author:      ds.Author,
		Created:     ds.Created.Format(timeLayout),
		Classes:     make([]classOutput, 0, len(ds.Classes)),
	}
	for _, cls := range ds.Classes {
		output.Classes = append(output.Classes, classOutput{
			ID:          cls.ID,
			Name:        cls.Name,
			Description: cls.Description,
			Recordings:  cls.Recordings,
		})
	}

	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	ui := newRenderer(out, asJSON)
	if err := writeKV(out, ui, "Dataset", ds.ID); err != nil {
		return err
	}
	if err := writeKV(out, ui, "Name", ds.Name); err != nil {
		return err
	}
	if ds.Description != nil {
		if err := writeKV(out, ui, "Description", *ds.Description); err != nil {
			return err
		}
	}
	if err := writeKV(out, ui, "Public", fmt.Sprintf("%t", ds.Public)); err != nil {
		return err
	}
	if err := writeKV(out, ui, "Author", ds.Author); err != nil {
		return err
	}
	if err := writeKV(out, ui, "Created", ds.Created.Format(timeLayout)); err != nil {
		return err
	}
	for _, cls := range ds.Classes {
		label := fmt.Sprintf("%s %s", cls.Name, ui.dim(fmt.Sprintf("(%d recordings)", len(cls.Recordings))))
		if err := writeKV(out, ui, "Class", label); err != nil {
			return err
		}
		for _, mbid := range cls.Recordings {
			if _, err := fmt.Fprintf(out, "  %s\n", mbid); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSummaries(cmd *cobra.Command, summaries []domain.DatasetSummary, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		output := make([]summaryOutput, 0, len(summaries))
		for _, summary := range summaries {
			output = append(output, summaryOutput{
				ID:          summary.ID,
				Name:        summary.Name,
				Description: summary.Description,
				Author:      summary.Author,
				Created:     summary.Created.Format(timeLayout),
			})
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	ui := newRenderer(out, asJSON)
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(out, ui.dim("(no datasets)"))
		return err
	}
	for _, summary := range summaries {
		created := summary.Created.Format(time.DateOnly)
		if _, err := fmt.Fprintf(out, "%s  %s %s\n", summary.ID, summary.Name, ui.dim(created)); err != nil {
			return err
		}
	}
	return nil
}

func writeKV(out io.Writer, ui renderer, key, value string) error {
	_, err := fmt.Fprintf(out, "%s: %s\n", ui.key(key), value)
	return err
}

func readJSONInput(cmd *cobra.Command, label, inline, filePath string) ([]byte, error) {
	inline = strings.TrimSpace(inline)
	filePath = strings.TrimSpace(filePath)
	if inline != "" && filePath != "" {
		return nil, fmt.Errorf("use either --%s or --file, not both", label)
	}
	if inline == "" && filePath == "" {
		return nil, fmt.Errorf("%s is required (use --%s or --file)", label, label)
	}
	if inline != "" {
		return []byte(inline), nil
	}
	return filesystem.DocumentSource{}.ReadDocument(cmd.Context(), filePath)
}
